package usecase

import (
	"context"
	"fmt"
	"strconv"

	cacheport "go-converse/internal/infrastructure/cache/port"
	social "go-converse/internal/pkg/social/application/domain"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// CountPendingRequestsUseCase reports how many requests await the caller.
// The count is cached; every mutation that changes a user's inbox drops the
// cached value, so the cache never outlives the write it reflects.
type CountPendingRequestsUseCase struct {
	Repo  repository.SocialGraphRepository
	Cache cacheport.Cache // optional
}

func NewCountPendingRequestsUseCase(repo repository.SocialGraphRepository, cache cacheport.Cache) *CountPendingRequestsUseCase {
	return &CountPendingRequestsUseCase{Repo: repo, Cache: cache}
}

func (uc *CountPendingRequestsUseCase) Execute(ctx context.Context, currentUser *social.User) (int, error) {
	if currentUser == nil {
		return 0, social.ErrUnauthenticated
	}

	key := pendingCountKey(currentUser.ID)
	if uc.Cache != nil {
		if cached, err := uc.Cache.Get(ctx, key); err == nil {
			if n, err := strconv.Atoi(cached); err == nil {
				return n, nil
			}
		}
	}

	count, err := uc.Repo.CountFriendRequestsByReceiver(ctx, currentUser.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		_ = uc.Cache.Set(ctx, key, strconv.Itoa(count), pendingCountTTL)
	}
	return count, nil
}
