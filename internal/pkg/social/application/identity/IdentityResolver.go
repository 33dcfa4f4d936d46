package identity

import (
	"context"
	"fmt"

	social "go-converse/internal/pkg/social/application/domain"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// Resolver maps an externally verified subject id onto the internal user
// record. Every operation starts here.
type Resolver struct {
	Repo repository.SocialGraphRepository
}

func NewResolver(repo repository.SocialGraphRepository) *Resolver {
	return &Resolver{Repo: repo}
}

// Resolve returns the user backing the verified subject. An empty subject is
// an unauthenticated call; a subject with no user record is a hard stop.
// Provisioning happens out-of-band on first sign-in, never inline here.
func (r *Resolver) Resolve(ctx context.Context, subject string) (*social.User, error) {
	if subject == "" {
		return nil, social.ErrUnauthenticated
	}

	user, err := r.Repo.UserBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("identity: lookup subject: %w", err)
	}
	if user == nil {
		return nil, social.ErrUserNotFound
	}
	return user, nil
}
