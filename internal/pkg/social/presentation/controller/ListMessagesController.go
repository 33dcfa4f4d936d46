package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/task"
	"go-converse/internal/pkg/social/application/usecase"
	"go-converse/internal/pkg/social/persistence/repository/adapter"
)

// ListMessagesController handles the list-messages endpoint only (one controller per endpoint)
type ListMessagesController struct {
	resolver *identity.Resolver
	UC       *usecase.ListMessagesUseCase
}

func NewListMessagesController(pool *pgxpool.Pool, alerts task.IntegrityAlerter) *ListMessagesController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &ListMessagesController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewListMessagesUseCase(repo, alerts),
	}
}

// Handle returns a gin handler that lists a conversation's messages, newest first
func (h *ListMessagesController) Handle() gin.HandlerFunc {
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

		views, err := h.UC.Execute(ctx, current, usecase.ListMessagesInput{ConversationID: conversationID})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"messages": views})
	}
}
