package repository

import (
	"context"

	social "go-converse/internal/pkg/social/application/domain"
)

// Tx is the set of indexed lookups and writes the social core needs from the
// store, all evaluated against one consistent snapshot.
//
// Point and pair lookups return (nil, nil) when no row matches; a non-nil
// error always means an infrastructure failure, never absence. Deciding what
// absence means (NotFound vs Forbidden vs Conflict) is the use cases' job.
type Tx interface {
	UserByID(ctx context.Context, id string) (*social.User, error)
	UserBySubject(ctx context.Context, subject string) (*social.User, error)
	UserByEmail(ctx context.Context, email string) (*social.User, error)
	InsertUser(ctx context.Context, u social.User) (string, error)

	FriendRequestByID(ctx context.Context, id string) (*social.FriendRequest, error)
	FriendRequestByPair(ctx context.Context, receiverID, senderID string) (*social.FriendRequest, error)
	FriendRequestsByReceiver(ctx context.Context, receiverID string) ([]social.FriendRequest, error)
	CountFriendRequestsByReceiver(ctx context.Context, receiverID string) (int, error)
	InsertFriendRequest(ctx context.Context, r social.FriendRequest) (string, error)
	DeleteFriendRequest(ctx context.Context, id string) error

	FriendshipExists(ctx context.Context, userA, userB string) (bool, error)
	InsertFriendship(ctx context.Context, f social.Friendship) (string, error)

	ConversationByID(ctx context.Context, id string) (*social.Conversation, error)
	InsertConversation(ctx context.Context, c social.Conversation) (string, error)
	SetLastMessage(ctx context.Context, conversationID, messageID string) error

	MembershipByUserConversation(ctx context.Context, memberID, conversationID string) (*social.ConversationMember, error)
	MembershipsByConversation(ctx context.Context, conversationID string) ([]social.ConversationMember, error)
	MembershipsByUser(ctx context.Context, memberID string) ([]social.ConversationMember, error)
	InsertMember(ctx context.Context, m social.ConversationMember) (string, error)
	SetLastSeenMessage(ctx context.Context, membershipID, messageID string) error

	MessageByID(ctx context.Context, id string) (*social.Message, error)
	InsertMessage(ctx context.Context, m social.Message) (string, error)
	MessagesByConversation(ctx context.Context, conversationID string) ([]social.Message, error)
}

// SocialGraphRepository is the persistence port for the social graph.
//
// Methods called directly run against the shared pool and see the latest
// committed state. WithTx runs fn against a single serializable transaction:
// every read inside fn observes one snapshot and every write commits together,
// or the whole transaction fails and nothing is visible to other readers.
// Check-then-insert sequences (duplicate requests, symmetric edges, concurrent
// accepts) rely on this, not on in-process locking.
type SocialGraphRepository interface {
	Tx
	WithTx(ctx context.Context, fn func(Tx) error) error
}
