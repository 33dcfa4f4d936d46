package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	social "go-converse/internal/pkg/social/application/domain"
)

// eventsChannel is the redis pub/sub channel relaying committed events across
// API instances so fan-out reaches sockets attached elsewhere.
const eventsChannel = "social:events"

// Client-facing event names.
const (
	EventMessageCreated      = "message.created"
	EventRequestReceived     = "request.received"
	EventConversationCreated = "conversation.created"
)

// envelope is the cross-instance wire format. Origin identifies the
// publishing instance so the bridge can drop its own echoes.
type envelope struct {
	Origin  string          `json:"origin"`
	Scope   string          `json:"scope"` // "conversation" or "user"
	Target  string          `json:"target,omitempty"`
	Targets []string        `json:"targets,omitempty"`
	Frame   json.RawMessage `json:"frame"`
}

// frame is what subscribed clients receive.
type frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Notifier delivers post-commit events to local sockets through the Hub and
// relays them to sibling instances over redis pub/sub. A nil redis client
// disables the relay and keeps delivery instance-local.
type Notifier struct {
	hub      *Hub
	rdb      *redis.Client
	log      *zap.Logger
	instance string
}

// NewNotifier constructs a Notifier. rdb may be nil.
func NewNotifier(hub *Hub, rdb *redis.Client, log *zap.Logger) *Notifier {
	return &Notifier{
		hub:      hub,
		rdb:      rdb,
		log:      log,
		instance: uuid.NewString(),
	}
}

func (n *Notifier) MessageCreated(conversationID string, view social.MessageView) {
	n.publish("conversation", conversationID, nil, frame{Event: EventMessageCreated, Data: view})
}

func (n *Notifier) RequestReceived(receiverID string, view social.PendingRequestView) {
	n.publish("user", receiverID, nil, frame{Event: EventRequestReceived, Data: view})
}

func (n *Notifier) ConversationCreated(conversationID string, memberIDs []string) {
	data := map[string]string{"conversationId": conversationID}
	n.publish("user", "", memberIDs, frame{Event: EventConversationCreated, Data: data})
}

// RunBridge consumes the relay channel until ctx is canceled. Envelopes
// published by this instance are skipped; everything else is delivered to
// local sockets.
func (n *Notifier) RunBridge(ctx context.Context) {
	if n.rdb == nil {
		return
	}
	sub := n.rdb.Subscribe(ctx, eventsChannel)
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				n.log.Warn("malformed relay envelope", zap.Error(err))
				continue
			}
			if env.Origin == n.instance {
				continue
			}
			n.deliver(env.Scope, env.Target, env.Targets, []byte(env.Frame))
		}
	}
}

func (n *Notifier) publish(scope, target string, targets []string, f frame) {
	payload, err := json.Marshal(f)
	if err != nil {
		n.log.Error("encode event frame", zap.String("event", f.Event), zap.Error(err))
		return
	}

	n.deliver(scope, target, targets, payload)

	if n.rdb == nil {
		return
	}
	env, err := json.Marshal(envelope{
		Origin:  n.instance,
		Scope:   scope,
		Target:  target,
		Targets: targets,
		Frame:   payload,
	})
	if err != nil {
		return
	}
	if err := n.rdb.Publish(context.Background(), eventsChannel, env).Err(); err != nil {
		n.log.Warn("relay publish failed", zap.String("event", f.Event), zap.Error(err))
	}
}

func (n *Notifier) deliver(scope, target string, targets []string, payload []byte) {
	switch scope {
	case "conversation":
		n.hub.Fanout(target, payload, "")
	case "user":
		if target != "" {
			n.hub.Push(target, payload)
		}
		for _, t := range targets {
			n.hub.Push(t, payload)
		}
	}
}
