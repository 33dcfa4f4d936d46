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

// CreateFriendRequestController handles the create-request endpoint only (one controller per endpoint)
type CreateFriendRequestController struct {
	resolver *identity.Resolver
	UC       *usecase.CreateFriendRequestUseCase
}

func NewCreateFriendRequestController(pool *pgxpool.Pool, cache cacheport.Cache, events event.Publisher) *CreateFriendRequestController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &CreateFriendRequestController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewCreateFriendRequestUseCase(repo, cache, events),
	}
}

// createFriendRequestBody is the DTO for the HTTP request body
type createFriendRequestBody struct {
	Email string `json:"email" binding:"required"`
}

// Handle returns a gin handler that sends a friend request to the user behind an email
func (h *CreateFriendRequestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body createFriendRequestBody
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

		req, err := h.UC.Execute(ctx, current, usecase.CreateFriendRequestInput{Email: body.Email})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":          req.ID,
			"sender_id":   req.SenderID,
			"receiver_id": req.ReceiverID,
		})
	}
}
