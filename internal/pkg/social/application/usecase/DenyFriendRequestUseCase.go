package usecase

import (
	"context"
	"fmt"

	cacheport "go-converse/internal/infrastructure/cache/port"
	social "go-converse/internal/pkg/social/application/domain"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// DenyFriendRequestInput identifies the request being denied.
type DenyFriendRequestInput struct {
	RequestID string
}

// DenyFriendRequestUseCase deletes a pending request addressed to the caller.
// Terminal: no denied history is kept, and a second deny of the same id
// reports NotFound.
type DenyFriendRequestUseCase struct {
	Repo  repository.SocialGraphRepository
	Cache cacheport.Cache
}

func NewDenyFriendRequestUseCase(repo repository.SocialGraphRepository, cache cacheport.Cache) *DenyFriendRequestUseCase {
	return &DenyFriendRequestUseCase{Repo: repo, Cache: cache}
}

func (uc *DenyFriendRequestUseCase) Execute(ctx context.Context, currentUser *social.User, in DenyFriendRequestInput) error {
	if currentUser == nil {
		return social.ErrUnauthenticated
	}
	if in.RequestID == "" {
		return social.ErrInvalidArgument
	}

	err := uc.Repo.WithTx(ctx, func(tx repository.Tx) error {
		request, err := tx.FriendRequestByID(ctx, in.RequestID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		// A request the caller does not receive is indistinguishable from an
		// absent one.
		if request == nil || request.ReceiverID != currentUser.ID {
			return social.ErrNotFound
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
	return nil
}
