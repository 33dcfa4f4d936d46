package social

import "time"

// CounterpartView is the denormalized other member of a direct conversation:
// their public fields plus their last-seen pointer into the thread.
type CounterpartView struct {
	UserID            string  `json:"user_id"`
	Username          string  `json:"username"`
	ImageURL          string  `json:"image_url"`
	LastSeenMessageID *string `json:"last_seen_message_id"`
}

// ConversationView is a tagged variant: exactly one of Direct or Group is set,
// keyed by Conversation.IsGroup. Keeping the two shapes separate avoids
// optional-field soup on the read contract.
type ConversationView struct {
	Conversation Conversation     `json:"conversation"`
	Direct       *CounterpartView `json:"direct,omitempty"`
	Group        *GroupView       `json:"group,omitempty"`
}

// GroupView carries the group-only fields of a conversation view.
// Counterpart resolution does not apply to groups.
type GroupView struct {
	Name string `json:"name"`
}

// MessageView joins a message with its sender's public fields for rendering.
type MessageView struct {
	Message       Message `json:"message"`
	SenderName    string  `json:"sender_name"`
	SenderImage   string  `json:"sender_image"`
	IsCurrentUser bool    `json:"is_current_user"`
}

// PendingRequestView pairs an inbound friend request with its sender.
type PendingRequestView struct {
	Sender  User          `json:"sender"`
	Request FriendRequest `json:"request"`
}

// MessagePreview is the sidebar preview of a conversation's latest message.
type MessagePreview struct {
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversationListItem is one entry of the caller's conversation list: the
// conversation, the direct counterpart when applicable, and a preview of the
// last message derived from the last-message pointer.
type ConversationListItem struct {
	Conversation Conversation     `json:"conversation"`
	Direct       *CounterpartView `json:"direct,omitempty"`
	Group        *GroupView       `json:"group,omitempty"`
	LastMessage  *MessagePreview  `json:"last_message,omitempty"`
}
