package social

// Friendship is an undirected edge between two users, stored in the order the
// accept happened (user1 = accepter). The unordered pair {User1ID, User2ID} is
// unique and every friendship is backed by exactly one direct conversation.
type Friendship struct {
	ID             string `db:"id"`
	User1ID        string `db:"user1_id"`
	User2ID        string `db:"user2_id"`
	ConversationID string `db:"conversation_id"`
}
