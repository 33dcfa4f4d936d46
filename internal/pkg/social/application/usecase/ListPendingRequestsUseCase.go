package usecase

import (
	"context"
	"fmt"

	social "go-converse/internal/pkg/social/application/domain"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// ListPendingRequestsUseCase returns every request addressed to the caller,
// each joined with the sender's user record.
type ListPendingRequestsUseCase struct {
	Repo repository.SocialGraphRepository
}

func NewListPendingRequestsUseCase(repo repository.SocialGraphRepository) *ListPendingRequestsUseCase {
	return &ListPendingRequestsUseCase{Repo: repo}
}

func (uc *ListPendingRequestsUseCase) Execute(ctx context.Context, currentUser *social.User) ([]social.PendingRequestView, error) {
	if currentUser == nil {
		return nil, social.ErrUnauthenticated
	}

	requests, err := uc.Repo.FriendRequestsByReceiver(ctx, currentUser.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	views := make([]social.PendingRequestView, 0, len(requests))
	for _, request := range requests {
		sender, err := uc.Repo.UserByID(ctx, request.SenderID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if sender == nil {
			// A request pointing at a deleted sender is corrupted state.
			return nil, fmt.Errorf("%w: request %s has no sender", social.ErrInconsistent, request.ID)
		}
		views = append(views, social.PendingRequestView{Sender: *sender, Request: request})
	}
	return views, nil
}
