package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	social "go-converse/internal/pkg/social/application/domain"
)

func TestDenyFriendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the request and invalidates the count", func(t *testing.T) {
		repo := newMemRepo()
		alice := repo.addUser("alice", "alice@example.com")
		bob := repo.addUser("bob", "bob@example.com")
		requestID, err := repo.InsertFriendRequest(ctx, social.FriendRequest{SenderID: alice.ID, ReceiverID: bob.ID})
		require.NoError(t, err)
		cache := newMemCache()
		uc := NewDenyFriendRequestUseCase(repo, cache)

		require.NoError(t, uc.Execute(ctx, &bob, DenyFriendRequestInput{RequestID: requestID}))

		gone, err := repo.FriendRequestByID(ctx, requestID)
		require.NoError(t, err)
		assert.Nil(t, gone)
		assert.Contains(t, cache.deleted, pendingCountKey(bob.ID))
	})

	t.Run("denying someone else's request is indistinguishable from absence", func(t *testing.T) {
		repo := newMemRepo()
		alice := repo.addUser("alice", "alice@example.com")
		bob := repo.addUser("bob", "bob@example.com")
		requestID, err := repo.InsertFriendRequest(ctx, social.FriendRequest{SenderID: alice.ID, ReceiverID: bob.ID})
		require.NoError(t, err)
		uc := NewDenyFriendRequestUseCase(repo, nil)

		err = uc.Execute(ctx, &alice, DenyFriendRequestInput{RequestID: requestID})
		assert.ErrorIs(t, err, social.ErrNotFound)
	})

	t.Run("deny is terminal: a later accept or deny reports not found", func(t *testing.T) {
		repo := newMemRepo()
		alice := repo.addUser("alice", "alice@example.com")
		bob := repo.addUser("bob", "bob@example.com")
		requestID, err := repo.InsertFriendRequest(ctx, social.FriendRequest{SenderID: alice.ID, ReceiverID: bob.ID})
		require.NoError(t, err)
		deny := NewDenyFriendRequestUseCase(repo, nil)
		accept := NewAcceptFriendRequestUseCase(repo, nil, nil)

		require.NoError(t, deny.Execute(ctx, &bob, DenyFriendRequestInput{RequestID: requestID}))
		assert.ErrorIs(t, deny.Execute(ctx, &bob, DenyFriendRequestInput{RequestID: requestID}), social.ErrNotFound)
		assert.ErrorIs(t, accept.Execute(ctx, &bob, AcceptFriendRequestInput{RequestID: requestID}), social.ErrNotFound)
	})
}
