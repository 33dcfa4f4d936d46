package social

import "errors"

// Typed outcomes surfaced by the social core. Callers match with errors.Is;
// the presentation layer decides how each one renders.
var (
	// ErrUnauthenticated means no verified caller identity was supplied.
	ErrUnauthenticated = errors.New("social: unauthenticated")

	// ErrUserNotFound means the verified identity has no backing user record.
	// Distinct from ErrUnauthenticated: the caller is known, just not provisioned.
	ErrUserNotFound = errors.New("social: user not found")

	// ErrNotFound means a referenced entity is absent or not addressable by
	// this caller (e.g. accepting a request the caller does not receive).
	ErrNotFound = errors.New("social: not found")

	// ErrForbidden means the caller lacks membership in the conversation.
	// Used instead of ErrNotFound so non-members cannot probe for existence.
	ErrForbidden = errors.New("social: forbidden")

	// ErrConflict means a uniqueness or business rule was violated:
	// duplicate request, symmetric request, or an existing friendship.
	ErrConflict = errors.New("social: conflict")

	// ErrInvalidArgument covers malformed input, such as a self-targeted request.
	ErrInvalidArgument = errors.New("social: invalid argument")

	// ErrInconsistent signals a referential-integrity violation found on a read
	// join. It is a defect indicator, not a normal business outcome.
	ErrInconsistent = errors.New("social: inconsistent data")
)
