package social

import (
	"errors"
	"strings"
	"time"
)

// Message is an immutable log entry in a conversation. Content is an ordered
// sequence of parts so multipart payloads keep their order.
type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	SenderID       string    `db:"sender_id" json:"sender_id"`
	Type           string    `db:"msg_type" json:"type"`
	Content        []string  `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// NewMessage validates and normalizes a message before it is persisted.
// Content parts are trimmed; a message with no non-empty part is rejected.
func NewMessage(m Message) (*Message, error) {
	if m.ConversationID == "" || m.SenderID == "" {
		return nil, errors.New("conversation_id and sender_id are required")
	}
	if m.Type == "" {
		m.Type = "text"
	}

	parts := make([]string, 0, len(m.Content))
	for _, p := range m.Content {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return nil, errors.New("message content must contain at least one part")
	}
	m.Content = parts

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return &m, nil
}
