package social

// User is the internal record behind an externally verified identity.
// Created once by the provisioning collaborator on first sign-in and
// immutable afterwards as far as this core is concerned.
type User struct {
	ID              string `db:"id" json:"id"`
	IdentitySubject string `db:"identity_subject" json:"-"`
	Username        string `db:"username" json:"username"`
	ImageURL        string `db:"image_url" json:"image_url"`
	Email           string `db:"email" json:"email"`
}
