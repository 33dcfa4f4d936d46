package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-converse/internal/infrastructure/cache/port"
	"go-converse/internal/infrastructure/realtime"
	"go-converse/internal/pkg/social/application/event"
	"go-converse/internal/pkg/social/application/task"
	httpHandler "go-converse/internal/pkg/social/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, cache cacheport.Cache, events event.Publisher, alerts task.IntegrityAlerter, hub *realtime.Hub) {
	v1 := r.Group("/api/v1")
	httpHandler.RegisterRoutes(v1, pool, cache, events, alerts, hub)
}
