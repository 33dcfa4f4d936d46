package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL is the authoritative shape of the social graph. Every uniqueness
// invariant the application checks transactionally is also backed by an index
// here, so a bug above this layer cannot corrupt the graph.
const schemaDDL = `
CREATE SCHEMA IF NOT EXISTS social;

CREATE TABLE IF NOT EXISTS social.users (
	id               uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	identity_subject text NOT NULL,
	username         text NOT NULL,
	image_url        text NOT NULL DEFAULT '',
	email            text NOT NULL,
	CONSTRAINT users_identity_subject_unique UNIQUE (identity_subject),
	CONSTRAINT users_email_unique UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS social.conversations (
	id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	is_group        boolean NOT NULL DEFAULT false,
	name            text,
	last_message_id uuid,
	CONSTRAINT conversations_group_named CHECK (NOT is_group OR name IS NOT NULL)
);

CREATE TABLE IF NOT EXISTS social.friend_requests (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	sender_id   uuid NOT NULL REFERENCES social.users (id),
	receiver_id uuid NOT NULL REFERENCES social.users (id),
	CONSTRAINT friend_requests_no_self CHECK (sender_id <> receiver_id),
	CONSTRAINT friend_requests_pair_unique UNIQUE (receiver_id, sender_id)
);

CREATE TABLE IF NOT EXISTS social.friendships (
	id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	user1_id        uuid NOT NULL REFERENCES social.users (id),
	user2_id        uuid NOT NULL REFERENCES social.users (id),
	conversation_id uuid NOT NULL REFERENCES social.conversations (id),
	CONSTRAINT friendships_no_self CHECK (user1_id <> user2_id)
);

-- Friendship is symmetric: the unordered pair is unique regardless of which
-- side accepted.
CREATE UNIQUE INDEX IF NOT EXISTS friendships_pair_unique
	ON social.friendships (LEAST(user1_id, user2_id), GREATEST(user1_id, user2_id));

CREATE TABLE IF NOT EXISTS social.conversation_members (
	id                   uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	member_id            uuid NOT NULL REFERENCES social.users (id),
	conversation_id      uuid NOT NULL REFERENCES social.conversations (id),
	last_seen_message_id uuid,
	CONSTRAINT conversation_members_unique UNIQUE (member_id, conversation_id)
);

CREATE INDEX IF NOT EXISTS conversation_members_by_conversation
	ON social.conversation_members (conversation_id);

CREATE TABLE IF NOT EXISTS social.messages (
	id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	conversation_id uuid NOT NULL REFERENCES social.conversations (id),
	sender_id       uuid NOT NULL REFERENCES social.users (id),
	msg_type        text NOT NULL DEFAULT 'text',
	content         text[] NOT NULL,
	created_at      timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS messages_by_conversation
	ON social.messages (conversation_id, created_at DESC);
`

// EnsureSchema applies the DDL. All statements are idempotent, so running it
// on every startup is safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}
