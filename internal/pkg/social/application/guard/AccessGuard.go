package guard

import (
	"context"
	"fmt"

	social "go-converse/internal/pkg/social/application/domain"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// AccessGuard decides conversation membership. Every read or write that
// touches conversation data goes through it first.
type AccessGuard struct {
	Repo repository.SocialGraphRepository
}

func NewAccessGuard(repo repository.SocialGraphRepository) *AccessGuard {
	return &AccessGuard{Repo: repo}
}

// RequireMembership returns the caller's membership row for the conversation.
// Absence is ErrForbidden, never ErrNotFound: a non-member must not learn
// whether the conversation exists at all.
func (g *AccessGuard) RequireMembership(ctx context.Context, user *social.User, conversationID string) (*social.ConversationMember, error) {
	return RequireMembership(ctx, g.Repo, user, conversationID)
}

// RequireMembership is the transaction-friendly form: use cases that already
// hold a snapshot pass their Tx so the check shares it.
func RequireMembership(ctx context.Context, tx repository.Tx, user *social.User, conversationID string) (*social.ConversationMember, error) {
	if user == nil {
		return nil, social.ErrUnauthenticated
	}
	if conversationID == "" {
		return nil, social.ErrInvalidArgument
	}

	membership, err := tx.MembershipByUserConversation(ctx, user.ID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("guard: membership lookup: %w", err)
	}
	if membership == nil {
		return nil, social.ErrForbidden
	}
	return membership, nil
}
