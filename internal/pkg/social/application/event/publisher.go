package event

import (
	social "go-converse/internal/pkg/social/application/domain"
)

// Publisher receives post-commit notifications so subscribed callers can be
// pushed fresh data. Delivery is best-effort and happens strictly after the
// transaction commits; read consistency never depends on it.
type Publisher interface {
	// MessageCreated fans a committed message out to the conversation's room.
	MessageCreated(conversationID string, view social.MessageView)

	// RequestReceived notifies the receiver that a friend request arrived.
	RequestReceived(receiverID string, view social.PendingRequestView)

	// ConversationCreated notifies both members of a freshly accepted
	// friendship that a conversation now exists.
	ConversationCreated(conversationID string, memberIDs []string)
}

// NopPublisher discards all notifications. Used in tests and anywhere the
// realtime transport is not wired.
type NopPublisher struct{}

func (NopPublisher) MessageCreated(string, social.MessageView)         {}
func (NopPublisher) RequestReceived(string, social.PendingRequestView) {}
func (NopPublisher) ConversationCreated(string, []string)              {}
