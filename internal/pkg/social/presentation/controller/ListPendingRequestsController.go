package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/usecase"
	"go-converse/internal/pkg/social/persistence/repository/adapter"
)

// ListPendingRequestsController handles the list-requests endpoint only (one controller per endpoint)
type ListPendingRequestsController struct {
	resolver *identity.Resolver
	UC       *usecase.ListPendingRequestsUseCase
}

func NewListPendingRequestsController(pool *pgxpool.Pool) *ListPendingRequestsController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &ListPendingRequestsController{
		resolver: identity.NewResolver(repo),
		UC:       usecase.NewListPendingRequestsUseCase(repo),
	}
}

// Handle returns a gin handler that lists the caller's inbound friend requests
func (h *ListPendingRequestsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := opContext(c)
		defer cancel()

		current, ok := resolveCurrent(ctx, c, h.resolver)
		if !ok {
			return
		}

		views, err := h.UC.Execute(ctx, current)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"requests": views})
	}
}
