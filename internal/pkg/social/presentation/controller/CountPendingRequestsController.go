package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-converse/internal/infrastructure/cache/port"
	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/usecase"
	"go-converse/internal/pkg/social/persistence/repository/adapter"
)

// CountPendingRequestsController handles the request-count endpoint only (one controller per endpoint)
type CountPendingRequestsController struct {
	resolver *identity.Resolver
	UC       *usecase.CountPendingRequestsUseCase
}

func NewCountPendingRequestsController(pool *pgxpool.Pool, cache cacheport.Cache) *CountPendingRequestsController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &CountPendingRequestsController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewCountPendingRequestsUseCase(repo, cache),
	}
}

// Handle returns a gin handler that reports how many requests await the caller
func (h *CountPendingRequestsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := opContext(c)
		defer cancel()

		current, ok := resolveCurrent(ctx, c, h.resolver)
		if !ok {
			return
		}

		count, err := h.UC.Execute(ctx, current)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}
