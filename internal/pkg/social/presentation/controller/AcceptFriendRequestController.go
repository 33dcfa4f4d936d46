package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-converse/internal/infrastructure/cache/port"
	"go-converse/internal/pkg/social/application/event"
	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/usecase"
	"go-converse/internal/pkg/social/persistence/repository/adapter"
)

// AcceptFriendRequestController handles the accept-request endpoint only (one controller per endpoint)
type AcceptFriendRequestController struct {
	resolver *identity.Resolver
	UC       *usecase.AcceptFriendRequestUseCase
}

func NewAcceptFriendRequestController(pool *pgxpool.Pool, cache cacheport.Cache, events event.Publisher) *AcceptFriendRequestController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &AcceptFriendRequestController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewAcceptFriendRequestUseCase(repo, cache, events),
	}
}

// Handle returns a gin handler that accepts a pending request addressed to the caller
func (h *AcceptFriendRequestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("requestId")
		if requestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "requestId is required"})
			return
		}

		ctx, cancel := opContext(c)
		defer cancel()

		current, ok := resolveCurrent(ctx, c, h.resolver)
		if !ok {
			return
		}

		if err := h.UC.Execute(ctx, current, usecase.AcceptFriendRequestInput{RequestID: requestID}); err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
