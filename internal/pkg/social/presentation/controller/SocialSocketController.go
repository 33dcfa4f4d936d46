package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-converse/internal/infrastructure/realtime"
	"go-converse/internal/pkg/social/application/event"
	"go-converse/internal/pkg/social/application/guard"
	"go-converse/internal/pkg/social/application/identity"
	"go-converse/internal/pkg/social/application/usecase"
	"go-converse/internal/pkg/social/persistence/repository/adapter"

	social "go-converse/internal/pkg/social/application/domain"
)

// SocialSocketController handles the websocket endpoint for realtime updates.
// Clients subscribe to conversations they belong to and receive committed
// events; they can also append messages over the same socket.
type SocialSocketController struct {
	hub             *realtime.Hub
	resolver        *identity.Resolver
	guard           *guard.AccessGuard
	createMessageUC *usecase.CreateMessageUseCase
	inflightTimeout time.Duration
}

func NewSocialSocketController(pool *pgxpool.Pool, hub *realtime.Hub, events event.Publisher) *SocialSocketController {
	repo := adapter.NewPgSocialGraphRepository(pool)
	return &SocialSocketController{
		hub:             hub,
		resolver:        identity.NewResolver(repo),
		guard:           guard.NewAccessGuard(repo),
		createMessageUC: usecase.NewCreateMessageUseCase(repo, events),
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The identity proxy terminates cross-origin concerns upstream.
		return true
	},
}

type inboundFrame struct {
	Type           string   `json:"type"`
	ConversationID string   `json:"conversation_id,omitempty"`
	MsgType        string   `json:"msg_type,omitempty"`
	Content        []string `json:"content,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames until the client disconnects.
func (ctl *SocialSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
		current, err := ctl.resolver.Resolve(ctx, c.GetHeader(identityHeader))
		cancel()
		if err != nil {
			respondError(c, err)
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(current.ID, ws)
		ctl.hub.Register(conn)
		defer func() {
			ctl.hub.Unregister(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", err.Error())
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "subscribe":
				ctl.handleSubscribe(c, conn, current, frame)
			case "unsubscribe":
				ctl.handleUnsubscribe(conn, frame)
			case "message":
				ctl.handleMessage(c, conn, current, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *SocialSocketController) handleSubscribe(c *gin.Context, conn *realtime.Connection, current *social.User, frame inboundFrame) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversation_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	if _, err := ctl.guard.RequireMembership(ctx, current, frame.ConversationID); err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	ctl.hub.Subscribe(frame.ConversationID, conn)

	if payload, err := json.Marshal(ackFrame{Type: "subscribed", ConversationID: frame.ConversationID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *SocialSocketController) handleUnsubscribe(conn *realtime.Connection, frame inboundFrame) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversation_id is required")
		return
	}
	ctl.hub.Unsubscribe(frame.ConversationID, conn)

	if payload, err := json.Marshal(ackFrame{Type: "unsubscribed", ConversationID: frame.ConversationID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *SocialSocketController) handleMessage(c *gin.Context, conn *realtime.Connection, current *social.User, frame inboundFrame) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversation_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	// Fan-out to subscribers happens through the publisher after commit;
	// the sender only gets an ack here.
	msg, err := ctl.createMessageUC.Execute(ctx, current, usecase.CreateMessageInput{
		ConversationID: frame.ConversationID,
		Type:           frame.MsgType,
		Content:        frame.Content,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	ack := struct {
		Type      string `json:"type"`
		MessageID string `json:"message_id"`
	}{Type: "accepted", MessageID: msg.ID}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *SocialSocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, social.ErrForbidden):
		ctl.replyError(conn, "forbidden", "not a member of this conversation")
	case errors.Is(err, social.ErrNotFound):
		ctl.replyError(conn, "not_found", "no such entity")
	case errors.Is(err, social.ErrInvalidArgument):
		ctl.replyError(conn, "bad_request", err.Error())
	case errors.Is(err, usecase.ErrPersistence), errors.Is(err, social.ErrInconsistent):
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
	default:
		ctl.replyError(conn, "bad_request", err.Error())
	}
}

func (ctl *SocialSocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{Type: "error", Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
