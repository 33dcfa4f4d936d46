package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-converse/internal/pkg/social/application/event"
	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/usecase"
	"go-converse/internal/pkg/social/persistence/repository/adapter"
)

// CreateMessageController handles the create-message endpoint only (one controller per endpoint)
type CreateMessageController struct {
	resolver *identity.Resolver
	UC       *usecase.CreateMessageUseCase
}

func NewCreateMessageController(pool *pgxpool.Pool, events event.Publisher) *CreateMessageController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &CreateMessageController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewCreateMessageUseCase(repo, events),
	}
}

// createMessageBody is the DTO for the HTTP request body
type createMessageBody struct {
	Type    string   `json:"type"`
	Content []string `json:"content" binding:"required"`
}

// Handle returns a gin handler that appends a message to a conversation the caller belongs to
func (h *CreateMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		var body createMessageBody
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

		msg, err := h.UC.Execute(ctx, current, usecase.CreateMessageInput{
			ConversationID: conversationID,
			Type:           body.Type,
			Content:        body.Content,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, msg)
	}
}
