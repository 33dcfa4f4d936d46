package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-converse/internal/infrastructure/cache/port"
	"go-converse/internal/infrastructure/realtime"
	"go-converse/internal/pkg/social/application/event"
	"go-converse/internal/pkg/social/application/task"
	"go-converse/internal/pkg/social/presentation/controller"
)

// RegisterRoutes registers social HTTP endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, events event.Publisher, alerts task.IntegrityAlerter, hub *realtime.Hub) {
	createRequestCtl := controller.NewCreateFriendRequestController(pool, cache, events)
	listRequestsCtl := controller.NewListPendingRequestsController(pool)
	countRequestsCtl := controller.NewCountPendingRequestsController(pool, cache)
	denyRequestCtl := controller.NewDenyFriendRequestController(pool, cache)
	acceptRequestCtl := controller.NewAcceptFriendRequestController(pool, cache, events)
	listConversationsCtl := controller.NewListConversationsController(pool)
	getConversationCtl := controller.NewGetConversationController(pool)
	createMessageCtl := controller.NewCreateMessageController(pool, events)
	listMessagesCtl := controller.NewListMessagesController(pool, alerts)
	markReadCtl := controller.NewMarkConversationReadController(pool)
	socketCtl := controller.NewSocialSocketController(pool, hub, events)

	// POST /api/v1/requests -> send a friend request by email
	g.POST("/requests", createRequestCtl.Handle())

	// GET /api/v1/requests -> list inbound pending requests
	g.GET("/requests", listRequestsCtl.Handle())

	// GET /api/v1/requests/count -> count inbound pending requests
	g.GET("/requests/count", countRequestsCtl.Handle())

	// DELETE /api/v1/requests/:requestId -> deny a pending request
	g.DELETE("/requests/:requestId", denyRequestCtl.Handle())

	// POST /api/v1/requests/:requestId/accept -> accept a pending request
	g.POST("/requests/:requestId/accept", acceptRequestCtl.Handle())

	// GET /api/v1/conversations -> list the caller's conversations
	g.GET("/conversations", listConversationsCtl.Handle())

	// GET /api/v1/conversations/:conversationId -> fetch one conversation view
	g.GET("/conversations/:conversationId", getConversationCtl.Handle())

	// POST /api/v1/conversations/:conversationId/messages -> append a message
	g.POST("/conversations/:conversationId/messages", createMessageCtl.Handle())

	// GET /api/v1/conversations/:conversationId/messages -> list messages, newest first
	g.GET("/conversations/:conversationId/messages", listMessagesCtl.Handle())

	// POST /api/v1/conversations/:conversationId/read -> advance the last-seen pointer
	g.POST("/conversations/:conversationId/read", markReadCtl.Handle())

	// GET /api/v1/ws -> websocket endpoint for realtime updates
	g.GET("/ws", socketCtl.Handle())
}
