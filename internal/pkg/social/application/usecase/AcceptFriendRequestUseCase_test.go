package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	social "go-converse/internal/pkg/social/application/domain"
)

func TestAcceptFriendRequest(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*memRepo, social.User, social.User, string) {
		repo := newMemRepo()
		alice := repo.addUser("alice", "alice@example.com")
		bob := repo.addUser("bob", "bob@example.com")
		id, err := repo.InsertFriendRequest(ctx, social.FriendRequest{SenderID: alice.ID, ReceiverID: bob.ID})
		require.NoError(t, err)
		return repo, alice, bob, id
	}

	t.Run("materializes conversation, friendship and both memberships", func(t *testing.T) {
		repo, alice, bob, requestID := setup(t)
		cache := newMemCache()
		events := &capturePublisher{}
		uc := NewAcceptFriendRequestUseCase(repo, cache, events)

		require.NoError(t, uc.Execute(ctx, &bob, AcceptFriendRequestInput{RequestID: requestID}))

		// the request is gone
		gone, err := repo.FriendRequestByID(ctx, requestID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		// one friendship edge, in either order
		friends, err := repo.FriendshipExists(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, friends)

		// both users share exactly one conversation
		aliceMemberships, err := repo.MembershipsByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, aliceMemberships, 1)
		bobMemberships, err := repo.MembershipsByUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, bobMemberships, 1)
		assert.Equal(t, aliceMemberships[0].ConversationID, bobMemberships[0].ConversationID)

		conv, err := repo.ConversationByID(ctx, aliceMemberships[0].ConversationID)
		require.NoError(t, err)
		require.NotNil(t, conv)
		assert.False(t, conv.IsGroup)

		assert.Contains(t, cache.deleted, pendingCountKey(bob.ID))
		require.Len(t, events.conversationsFor, 1)
		assert.ElementsMatch(t, []string{alice.ID, bob.ID}, events.conversationsFor[0])
	})

	t.Run("only the receiver can accept", func(t *testing.T) {
		repo, alice, _, requestID := setup(t)
		uc := NewAcceptFriendRequestUseCase(repo, nil, nil)

		err := uc.Execute(ctx, &alice, AcceptFriendRequestInput{RequestID: requestID})
		assert.ErrorIs(t, err, social.ErrNotFound)
	})

	t.Run("accepting an unknown id reports not found", func(t *testing.T) {
		repo, _, bob, _ := setup(t)
		uc := NewAcceptFriendRequestUseCase(repo, nil, nil)

		err := uc.Execute(ctx, &bob, AcceptFriendRequestInput{RequestID: "missing"})
		assert.ErrorIs(t, err, social.ErrNotFound)
	})

	t.Run("a second accept of the same request reports not found", func(t *testing.T) {
		repo, _, bob, requestID := setup(t)
		uc := NewAcceptFriendRequestUseCase(repo, nil, nil)

		require.NoError(t, uc.Execute(ctx, &bob, AcceptFriendRequestInput{RequestID: requestID}))
		err := uc.Execute(ctx, &bob, AcceptFriendRequestInput{RequestID: requestID})
		assert.ErrorIs(t, err, social.ErrNotFound)
	})

	t.Run("a new request between fresh friends conflicts", func(t *testing.T) {
		repo, alice, bob, requestID := setup(t)
		accept := NewAcceptFriendRequestUseCase(repo, nil, nil)
		require.NoError(t, accept.Execute(ctx, &bob, AcceptFriendRequestInput{RequestID: requestID}))

		create := NewCreateFriendRequestUseCase(repo, nil, nil)
		_, err := create.Execute(ctx, &alice, CreateFriendRequestInput{Email: bob.Email})
		assert.ErrorIs(t, err, social.ErrConflict)
	})
}
