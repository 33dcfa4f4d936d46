package task

import (
	"context"
	"encoding/json"
	"time"

	qport "go-converse/internal/infrastructure/queue/port"

	"go.uber.org/zap"
)

// IntegrityAlertTaskType is the queue task name for referential-integrity
// violations found by read joins. These indicate corrupted state, so they go
// to an operational channel instead of only surfacing as a caller error.
const IntegrityAlertTaskType = "social:integrity_alert"

// IntegrityAlertPayload is the JSON payload transported via the queue.
type IntegrityAlertPayload struct {
	Kind           string `json:"kind"`
	ConversationID string `json:"conversationId,omitempty"`
	MessageID      string `json:"messageId,omitempty"`
	MissingUserID  string `json:"missingUserId,omitempty"`
}

// IntegrityAlerter is the narrow slice of the queue client the read path
// needs. qport.Client satisfies it.
type IntegrityAlerter interface {
	Enqueue(ctx context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error)
}

// ReportMissingSender enqueues an alert for a message whose sender no longer
// resolves. Best-effort: the caller is already failing with a typed error and
// must not fail differently because the queue is down.
func ReportMissingSender(ctx context.Context, alerts IntegrityAlerter, conversationID, messageID, senderID string) {
	if alerts == nil {
		return
	}
	payload, err := json.Marshal(IntegrityAlertPayload{
		Kind:           "missing_sender",
		ConversationID: conversationID,
		MessageID:      messageID,
		MissingUserID:  senderID,
	})
	if err != nil {
		return
	}
	_, _ = alerts.Enqueue(ctx, qport.Task{Type: IntegrityAlertTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "ops", MaxRetry: 5, UniqueTTL: time.Hour})
}

// RegisterIntegrityAlertTask binds the alert handler to the provided server.
// The handler raises the violation at error level where operational tooling
// picks it up.
func RegisterIntegrityAlertTask(srv qport.Server, log *zap.Logger) {
	srv.Register(IntegrityAlertTaskType, func(ctx context.Context, t qport.Task) error {
		var p IntegrityAlertPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}
		log.Error("referential integrity violation",
			zap.String("kind", p.Kind),
			zap.String("conversation_id", p.ConversationID),
			zap.String("message_id", p.MessageID),
			zap.String("missing_user_id", p.MissingUserID),
		)
		return nil
	})
}
