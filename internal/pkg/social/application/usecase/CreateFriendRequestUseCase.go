package usecase

import (
	"context"
	"fmt"

	cacheport "go-converse/internal/infrastructure/cache/port"
	social "go-converse/internal/pkg/social/application/domain"
	"go-converse/internal/pkg/social/application/event"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// CreateFriendRequestInput carries the target of a new friend request.
type CreateFriendRequestInput struct {
	Email string
}

// CreateFriendRequestUseCase creates a pending friend request after the full
// set of duplicate/symmetric/already-friends checks. The checks and the insert
// run inside one transaction so two concurrent identical calls cannot both
// pass the existence checks.
type CreateFriendRequestUseCase struct {
	Repo   repository.SocialGraphRepository
	Cache  cacheport.Cache // optional; pending-count invalidation
	Events event.Publisher
}

func NewCreateFriendRequestUseCase(repo repository.SocialGraphRepository, cache cacheport.Cache, events event.Publisher) *CreateFriendRequestUseCase {
	if events == nil {
		events = event.NopPublisher{}
	}
	return &CreateFriendRequestUseCase{Repo: repo, Cache: cache, Events: events}
}

// Execute validates, checks both request directions and the friendship edge
// against a single snapshot, and inserts the request.
func (uc *CreateFriendRequestUseCase) Execute(ctx context.Context, currentUser *social.User, in CreateFriendRequestInput) (*social.FriendRequest, error) {
	if currentUser == nil {
		return nil, social.ErrUnauthenticated
	}
	if in.Email == "" {
		return nil, social.ErrInvalidArgument
	}
	if in.Email == currentUser.Email {
		// Can't send a request to yourself.
		return nil, social.ErrInvalidArgument
	}

	var created social.FriendRequest
	err := uc.Repo.WithTx(ctx, func(tx repository.Tx) error {
		receiver, err := tx.UserByEmail(ctx, in.Email)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if receiver == nil {
			return social.ErrUserNotFound
		}

		alreadySent, err := tx.FriendRequestByPair(ctx, receiver.ID, currentUser.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if alreadySent != nil {
			return fmt.Errorf("%w: request already sent", social.ErrConflict)
		}

		alreadyReceived, err := tx.FriendRequestByPair(ctx, currentUser.ID, receiver.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if alreadyReceived != nil {
			return fmt.Errorf("%w: this user has already sent you a request", social.ErrConflict)
		}

		friends, err := tx.FriendshipExists(ctx, currentUser.ID, receiver.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if friends {
			return fmt.Errorf("%w: you are already friends with this user", social.ErrConflict)
		}

		created = social.FriendRequest{SenderID: currentUser.ID, ReceiverID: receiver.ID}
		id, err := tx.InsertFriendRequest(ctx, created)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		created.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidatePendingCount(ctx, uc.Cache, created.ReceiverID)
	uc.Events.RequestReceived(created.ReceiverID, social.PendingRequestView{
		Sender:  *currentUser,
		Request: created,
	})
	return &created, nil
}
