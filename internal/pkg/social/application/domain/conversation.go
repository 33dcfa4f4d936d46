package social

// Conversation is a direct or group thread. Direct conversations are created
// only by accepting a friend request and carry no name. The only mutation this
// core performs is advancing LastMessageID.
type Conversation struct {
	ID            string  `db:"id" json:"id"`
	IsGroup       bool    `db:"is_group" json:"is_group"`
	Name          *string `db:"name" json:"name"`
	LastMessageID *string `db:"last_message_id" json:"last_message_id"`
}

// ConversationMember asserts that a user belongs to a conversation and gates
// every read and write that touches it. Unique per (MemberID, ConversationID).
type ConversationMember struct {
	ID                string  `db:"id"`
	MemberID          string  `db:"member_id"`
	ConversationID    string  `db:"conversation_id"`
	LastSeenMessageID *string `db:"last_seen_message_id"`
}
