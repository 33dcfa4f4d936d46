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

// DenyFriendRequestController handles the deny-request endpoint only (one controller per endpoint)
type DenyFriendRequestController struct {
	resolver *identity.Resolver
	UC       *usecase.DenyFriendRequestUseCase
}

func NewDenyFriendRequestController(pool *pgxpool.Pool, cache cacheport.Cache) *DenyFriendRequestController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &DenyFriendRequestController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewDenyFriendRequestUseCase(repo, cache),
	}
}

// Handle returns a gin handler that removes a pending request addressed to the caller
func (h *DenyFriendRequestController) Handle() gin.HandlerFunc {
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

		if err := h.UC.Execute(ctx, current, usecase.DenyFriendRequestInput{RequestID: requestID}); err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
