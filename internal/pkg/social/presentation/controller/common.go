package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/usecase"

	social "go-converse/internal/pkg/social/application/domain"
)

// identityHeader carries the subject asserted by the identity proxy in front
// of this service. The proxy strips the header from inbound traffic, so its
// presence is trusted here.
const identityHeader = "X-Identity-Subject"

const requestTimeout = 3 * time.Second

// opContext derives a bounded context for one use case execution.
func opContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// resolveCurrent maps the asserted identity header to the backing user record.
// On failure it writes the error response and reports false.
func resolveCurrent(ctx context.Context, c *gin.Context, resolver *identity.Resolver) (*social.User, bool) {
	user, err := resolver.Resolve(ctx, c.GetHeader(identityHeader))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return user, true
}

// respondError renders a use case error with the status its kind maps to.
// Integrity violations and persistence failures are both server faults and
// deliberately render without detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, social.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, social.ErrUserNotFound), errors.Is(err, social.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, social.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, social.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, social.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrPersistence), errors.Is(err, social.ErrInconsistent):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
