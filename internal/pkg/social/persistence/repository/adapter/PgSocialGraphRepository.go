package adapter

import (
	"context"
	"errors"

	social "go-converse/internal/pkg/social/application/domain"
	port "go-converse/internal/pkg/social/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the same
// query methods serve both pooled reads and transactional snapshots.
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgSocialGraphRepository implements the social graph port on PostgreSQL.
type PgSocialGraphRepository struct {
	pgQueries
	pool *pgxpool.Pool
}

func NewPgSocialGraphRepository(pool *pgxpool.Pool) *PgSocialGraphRepository {
	return &PgSocialGraphRepository{pgQueries: pgQueries{db: pool}, pool: pool}
}

var _ port.SocialGraphRepository = (*PgSocialGraphRepository)(nil)

// WithTx runs fn inside one serializable transaction. The closure's reads and
// writes share a snapshot; a serialization failure surfaces to the caller
// unretried, the same as any other conflicting outcome.
func (r *PgSocialGraphRepository) WithTx(ctx context.Context, fn func(port.Tx) error) error {
	if r == nil || r.pool == nil {
		return errors.New("PgSocialGraphRepository: nil pool")
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgQueries{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// pgQueries implements port.Tx over either the pool or an open transaction.
type pgQueries struct {
	db dbtx
}

var _ port.Tx = (*pgQueries)(nil)

// ===================== users =====================

const userColumns = "id::text, identity_subject, username, image_url, email"

func (q *pgQueries) scanUser(row pgx.Row) (*social.User, error) {
	var u social.User
	err := row.Scan(&u.ID, &u.IdentitySubject, &u.Username, &u.ImageURL, &u.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (q *pgQueries) UserByID(ctx context.Context, id string) (*social.User, error) {
	return q.scanUser(q.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM social.users WHERE id = $1::uuid", id))
}

func (q *pgQueries) UserBySubject(ctx context.Context, subject string) (*social.User, error) {
	return q.scanUser(q.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM social.users WHERE identity_subject = $1", subject))
}

func (q *pgQueries) UserByEmail(ctx context.Context, email string) (*social.User, error) {
	return q.scanUser(q.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM social.users WHERE email = $1", email))
}

func (q *pgQueries) InsertUser(ctx context.Context, u social.User) (string, error) {
	var id string
	err := q.db.QueryRow(ctx, `
		INSERT INTO social.users (identity_subject, username, image_url, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`, u.IdentitySubject, u.Username, u.ImageURL, u.Email).Scan(&id)
	return id, err
}

// ===================== friend requests =====================

func (q *pgQueries) scanFriendRequest(row pgx.Row) (*social.FriendRequest, error) {
	var r social.FriendRequest
	err := row.Scan(&r.ID, &r.SenderID, &r.ReceiverID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (q *pgQueries) FriendRequestByID(ctx context.Context, id string) (*social.FriendRequest, error) {
	return q.scanFriendRequest(q.db.QueryRow(ctx, `
		SELECT id::text, sender_id::text, receiver_id::text
		FROM social.friend_requests WHERE id = $1::uuid
	`, id))
}

func (q *pgQueries) FriendRequestByPair(ctx context.Context, receiverID, senderID string) (*social.FriendRequest, error) {
	return q.scanFriendRequest(q.db.QueryRow(ctx, `
		SELECT id::text, sender_id::text, receiver_id::text
		FROM social.friend_requests WHERE receiver_id = $1::uuid AND sender_id = $2::uuid
	`, receiverID, senderID))
}

func (q *pgQueries) FriendRequestsByReceiver(ctx context.Context, receiverID string) ([]social.FriendRequest, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id::text, sender_id::text, receiver_id::text
		FROM social.friend_requests WHERE receiver_id = $1::uuid
	`, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []social.FriendRequest
	for rows.Next() {
		var r social.FriendRequest
		if err := rows.Scan(&r.ID, &r.SenderID, &r.ReceiverID); err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

func (q *pgQueries) CountFriendRequestsByReceiver(ctx context.Context, receiverID string) (int, error) {
	var n int
	err := q.db.QueryRow(ctx,
		"SELECT count(*) FROM social.friend_requests WHERE receiver_id = $1::uuid", receiverID).Scan(&n)
	return n, err
}

func (q *pgQueries) InsertFriendRequest(ctx context.Context, r social.FriendRequest) (string, error) {
	var id string
	err := q.db.QueryRow(ctx, `
		INSERT INTO social.friend_requests (sender_id, receiver_id)
		VALUES ($1::uuid, $2::uuid)
		RETURNING id::text
	`, r.SenderID, r.ReceiverID).Scan(&id)
	return id, err
}

func (q *pgQueries) DeleteFriendRequest(ctx context.Context, id string) error {
	ct, err := q.db.Exec(ctx, "DELETE FROM social.friend_requests WHERE id = $1::uuid", id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ===================== friendships =====================

func (q *pgQueries) FriendshipExists(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM social.friendships
			WHERE (user1_id = $1::uuid AND user2_id = $2::uuid)
			   OR (user1_id = $2::uuid AND user2_id = $1::uuid)
		)
	`, userA, userB).Scan(&exists)
	return exists, err
}

func (q *pgQueries) InsertFriendship(ctx context.Context, f social.Friendship) (string, error) {
	var id string
	err := q.db.QueryRow(ctx, `
		INSERT INTO social.friendships (user1_id, user2_id, conversation_id)
		VALUES ($1::uuid, $2::uuid, $3::uuid)
		RETURNING id::text
	`, f.User1ID, f.User2ID, f.ConversationID).Scan(&id)
	return id, err
}

// ===================== conversations =====================

func (q *pgQueries) ConversationByID(ctx context.Context, id string) (*social.Conversation, error) {
	var c social.Conversation
	err := q.db.QueryRow(ctx, `
		SELECT id::text, is_group, name, last_message_id::text
		FROM social.conversations WHERE id = $1::uuid
	`, id).Scan(&c.ID, &c.IsGroup, &c.Name, &c.LastMessageID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *pgQueries) InsertConversation(ctx context.Context, c social.Conversation) (string, error) {
	var id string
	err := q.db.QueryRow(ctx, `
		INSERT INTO social.conversations (is_group, name)
		VALUES ($1, $2)
		RETURNING id::text
	`, c.IsGroup, c.Name).Scan(&id)
	return id, err
}

func (q *pgQueries) SetLastMessage(ctx context.Context, conversationID, messageID string) error {
	ct, err := q.db.Exec(ctx, `
		UPDATE social.conversations SET last_message_id = $2::uuid WHERE id = $1::uuid
	`, conversationID, messageID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ===================== memberships =====================

const memberColumns = "id::text, member_id::text, conversation_id::text, last_seen_message_id::text"

func (q *pgQueries) scanMember(row pgx.Row) (*social.ConversationMember, error) {
	var m social.ConversationMember
	err := row.Scan(&m.ID, &m.MemberID, &m.ConversationID, &m.LastSeenMessageID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (q *pgQueries) MembershipByUserConversation(ctx context.Context, memberID, conversationID string) (*social.ConversationMember, error) {
	return q.scanMember(q.db.QueryRow(ctx, `
		SELECT `+memberColumns+` FROM social.conversation_members
		WHERE member_id = $1::uuid AND conversation_id = $2::uuid
	`, memberID, conversationID))
}

func (q *pgQueries) membershipRows(ctx context.Context, sql string, arg string) ([]social.ConversationMember, error) {
	rows, err := q.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []social.ConversationMember
	for rows.Next() {
		var m social.ConversationMember
		if err := rows.Scan(&m.ID, &m.MemberID, &m.ConversationID, &m.LastSeenMessageID); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (q *pgQueries) MembershipsByConversation(ctx context.Context, conversationID string) ([]social.ConversationMember, error) {
	return q.membershipRows(ctx,
		"SELECT "+memberColumns+" FROM social.conversation_members WHERE conversation_id = $1::uuid",
		conversationID)
}

func (q *pgQueries) MembershipsByUser(ctx context.Context, memberID string) ([]social.ConversationMember, error) {
	return q.membershipRows(ctx,
		"SELECT "+memberColumns+" FROM social.conversation_members WHERE member_id = $1::uuid",
		memberID)
}

func (q *pgQueries) InsertMember(ctx context.Context, m social.ConversationMember) (string, error) {
	var id string
	err := q.db.QueryRow(ctx, `
		INSERT INTO social.conversation_members (member_id, conversation_id)
		VALUES ($1::uuid, $2::uuid)
		RETURNING id::text
	`, m.MemberID, m.ConversationID).Scan(&id)
	return id, err
}

func (q *pgQueries) SetLastSeenMessage(ctx context.Context, membershipID, messageID string) error {
	ct, err := q.db.Exec(ctx, `
		UPDATE social.conversation_members SET last_seen_message_id = $2::uuid WHERE id = $1::uuid
	`, membershipID, messageID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ===================== messages =====================

const messageColumns = "id::text, conversation_id::text, sender_id::text, msg_type, content, created_at"

func (q *pgQueries) MessageByID(ctx context.Context, id string) (*social.Message, error) {
	var m social.Message
	err := q.db.QueryRow(ctx,
		"SELECT "+messageColumns+" FROM social.messages WHERE id = $1::uuid", id,
	).Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Type, &m.Content, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (q *pgQueries) InsertMessage(ctx context.Context, m social.Message) (string, error) {
	var id string
	err := q.db.QueryRow(ctx, `
		INSERT INTO social.messages (conversation_id, sender_id, msg_type, content, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		RETURNING id::text
	`, m.ConversationID, m.SenderID, m.Type, m.Content, m.CreatedAt).Scan(&id)
	return id, err
}

func (q *pgQueries) MessagesByConversation(ctx context.Context, conversationID string) ([]social.Message, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+messageColumns+` FROM social.messages
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC, id DESC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []social.Message
	for rows.Next() {
		var m social.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Type, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
