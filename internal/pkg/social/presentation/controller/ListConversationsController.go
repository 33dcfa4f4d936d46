package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/usecase"
	"go-converse/internal/pkg/social/persistence/repository/adapter"
)

// ListConversationsController handles the conversation-list endpoint only (one controller per endpoint)
type ListConversationsController struct {
	resolver *identity.Resolver
	UC       *usecase.ListConversationsUseCase
}

func NewListConversationsController(pool *pgxpool.Pool) *ListConversationsController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &ListConversationsController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewListConversationsUseCase(repo),
	}
}

// Handle returns a gin handler that lists the caller's conversations with last-message previews
func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := opContext(c)
		defer cancel()

		current, ok := resolveCurrent(ctx, c, h.resolver)
		if !ok {
			return
		}

		items, err := h.UC.Execute(ctx, current)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"conversations": items})
	}
}
