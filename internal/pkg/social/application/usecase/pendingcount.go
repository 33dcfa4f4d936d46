package usecase

import (
	"context"
	"time"

	cacheport "go-converse/internal/infrastructure/cache/port"
)

// pendingCountTTL bounds staleness if an invalidation is ever lost.
const pendingCountTTL = 60 * time.Second

func pendingCountKey(userID string) string {
	return "social:requests:count:" + userID
}

// invalidatePendingCount drops the cached pending-request count for a user.
// Best-effort: every mutation that changes the count calls this, and the TTL
// covers the rare failed delete.
func invalidatePendingCount(ctx context.Context, cache cacheport.Cache, userID string) {
	if cache == nil || userID == "" {
		return
	}
	_, _ = cache.Del(ctx, pendingCountKey(userID))
}
