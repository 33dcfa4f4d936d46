package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/usecase"
	"go-converse/internal/pkg/social/persistence/repository/adapter"
)

// GetConversationController handles the get-conversation endpoint only (one controller per endpoint)
type GetConversationController struct {
	resolver *identity.Resolver
	UC       *usecase.GetConversationUseCase
}

func NewGetConversationController(pool *pgxpool.Pool) *GetConversationController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &GetConversationController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewGetConversationUseCase(repo),
	}
}

// Handle returns a gin handler that resolves one conversation for a member
func (h *GetConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		ctx, cancel := opContext(c)
		defer cancel()

		current, ok := resolveCurrent(ctx, c, h.resolver)
		if !ok {
			return
		}

		view, err := h.UC.Execute(ctx, current, usecase.GetConversationInput{ConversationID: conversationID})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, view)
	}
}
