package usecase

import (
	"context"
	"fmt"

	social "go-converse/internal/pkg/social/application/domain"
	"go-converse/internal/pkg/social/application/guard"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// MarkConversationReadInput advances the caller's last-seen pointer.
type MarkConversationReadInput struct {
	ConversationID string
	MessageID      string
}

// MarkConversationReadUseCase records the newest message the caller has seen
// in a conversation. The message must exist and belong to that conversation.
type MarkConversationReadUseCase struct {
	Repo repository.SocialGraphRepository
}

func NewMarkConversationReadUseCase(repo repository.SocialGraphRepository) *MarkConversationReadUseCase {
	return &MarkConversationReadUseCase{Repo: repo}
}

func (uc *MarkConversationReadUseCase) Execute(ctx context.Context, currentUser *social.User, in MarkConversationReadInput) error {
	if currentUser == nil {
		return social.ErrUnauthenticated
	}
	if in.MessageID == "" {
		return social.ErrInvalidArgument
	}

	return uc.Repo.WithTx(ctx, func(tx repository.Tx) error {
		membership, err := guard.RequireMembership(ctx, tx, currentUser, in.ConversationID)
		if err != nil {
			return err
		}

		msg, err := tx.MessageByID(ctx, in.MessageID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if msg == nil {
			return social.ErrNotFound
		}
		if msg.ConversationID != in.ConversationID {
			return fmt.Errorf("%w: message belongs to another conversation", social.ErrInvalidArgument)
		}

		if err := tx.SetLastSeenMessage(ctx, membership.ID, msg.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
}
