package social

// FriendRequest is a directed, pending proposal from sender to receiver.
// At most one exists per ordered (sender, receiver) pair. It is terminal:
// accept and deny both delete the row, no history is kept.
type FriendRequest struct {
	ID         string `db:"id" json:"id"`
	SenderID   string `db:"sender_id" json:"sender_id"`
	ReceiverID string `db:"receiver_id" json:"receiver_id"`
}
