package usecase

import (
	"context"
	"fmt"

	cacheport "go-converse/internal/infrastructure/cache/port"
	social "go-converse/internal/pkg/social/application/domain"
	"go-converse/internal/pkg/social/application/event"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// AcceptFriendRequestInput identifies the request being accepted.
type AcceptFriendRequestInput struct {
	RequestID string
}

// AcceptFriendRequestUseCase turns a pending request into a friendship. The
// conversation, the friendship edge, both memberships and the request delete
// commit as one transaction: a crash or a concurrent accept leaves either all
// four effects or none. The loser of a concurrent accept sees NotFound once
// the request row is gone from its snapshot.
type AcceptFriendRequestUseCase struct {
	Repo   repository.SocialGraphRepository
	Cache  cacheport.Cache
	Events event.Publisher
}

func NewAcceptFriendRequestUseCase(repo repository.SocialGraphRepository, cache cacheport.Cache, events event.Publisher) *AcceptFriendRequestUseCase {
	if events == nil {
		events = event.NopPublisher{}
	}
	return &AcceptFriendRequestUseCase{Repo: repo, Cache: cache, Events: events}
}

func (uc *AcceptFriendRequestUseCase) Execute(ctx context.Context, currentUser *social.User, in AcceptFriendRequestInput) error {
	if currentUser == nil {
		return social.ErrUnauthenticated
	}
	if in.RequestID == "" {
		return social.ErrInvalidArgument
	}

	var (
		conversationID string
		senderID       string
	)
	err := uc.Repo.WithTx(ctx, func(tx repository.Tx) error {
		request, err := tx.FriendRequestByID(ctx, in.RequestID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if request == nil || request.ReceiverID != currentUser.ID {
			return social.ErrNotFound
		}
		senderID = request.SenderID

		conversationID, err = tx.InsertConversation(ctx, social.Conversation{IsGroup: false})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		_, err = tx.InsertFriendship(ctx, social.Friendship{
			User1ID:        currentUser.ID,
			User2ID:        request.SenderID,
			ConversationID: conversationID,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		for _, memberID := range []string{currentUser.ID, request.SenderID} {
			_, err = tx.InsertMember(ctx, social.ConversationMember{
				MemberID:       memberID,
				ConversationID: conversationID,
			})
			if err != nil {
				return fmt.Errorf("%w: %v", ErrPersistence, err)
			}
		}

		if err := tx.DeleteFriendRequest(ctx, request.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidatePendingCount(ctx, uc.Cache, currentUser.ID)
	uc.Events.ConversationCreated(conversationID, []string{currentUser.ID, senderID})
	return nil
}
