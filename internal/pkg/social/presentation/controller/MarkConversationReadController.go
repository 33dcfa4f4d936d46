package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/usecase"
	"go-converse/internal/pkg/social/persistence/repository/adapter"
)

// MarkConversationReadController handles the mark-read endpoint only (one controller per endpoint)
type MarkConversationReadController struct {
	resolver *identity.Resolver
	UC       *usecase.MarkConversationReadUseCase
}

func NewMarkConversationReadController(pool *pgxpool.Pool) *MarkConversationReadController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &MarkConversationReadController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewMarkConversationReadUseCase(repo),
	}
}

// markReadBody is the DTO for the HTTP request body
type markReadBody struct {
	MessageID string `json:"message_id" binding:"required"`
}

// Handle returns a gin handler that records the newest message the caller has seen
func (h *MarkConversationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		var body markReadBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := opContext(c)
		defer cancel()

		current, ok := resolveCurrent(ctx, c, h.resolver)
		if !ok {
			return
		}

		err := h.UC.Execute(ctx, current, usecase.MarkConversationReadInput{
			ConversationID: conversationID,
			MessageID:      body.MessageID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
