package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	social "go-converse/internal/pkg/social/application/domain"
)

func TestCreateMessage(t *testing.T) {
	ctx := context.Background()

	setup := func() (*memRepo, social.User, social.User, string) {
		repo := newMemRepo()
		alice := repo.addUser("alice", "alice@example.com")
		bob := repo.addUser("bob", "bob@example.com")
		convID := repo.befriend(alice, bob)
		return repo, alice, bob, convID
	}

	t.Run("appends the message and advances the last-message pointer", func(t *testing.T) {
		repo, alice, _, convID := setup()
		events := &capturePublisher{}
		uc := NewCreateMessageUseCase(repo, events)

		msg, err := uc.Execute(ctx, &alice, CreateMessageInput{
			ConversationID: convID,
			Content:        []string{"hello"},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, msg.ID)
		assert.Equal(t, "text", msg.Type)
		assert.Equal(t, alice.ID, msg.SenderID)

		conv, err := repo.ConversationByID(ctx, convID)
		require.NoError(t, err)
		require.NotNil(t, conv.LastMessageID)
		assert.Equal(t, msg.ID, *conv.LastMessageID)

		require.Len(t, events.messages, 1)
		assert.Equal(t, msg.ID, events.messages[0].Message.ID)
		assert.Equal(t, "alice", events.messages[0].SenderName)
	})

	t.Run("the pointer follows the newest append", func(t *testing.T) {
		repo, alice, bob, convID := setup()
		uc := NewCreateMessageUseCase(repo, nil)

		_, err := uc.Execute(ctx, &alice, CreateMessageInput{ConversationID: convID, Content: []string{"first"}})
		require.NoError(t, err)
		second, err := uc.Execute(ctx, &bob, CreateMessageInput{ConversationID: convID, Content: []string{"second"}})
		require.NoError(t, err)

		conv, err := repo.ConversationByID(ctx, convID)
		require.NoError(t, err)
		require.NotNil(t, conv.LastMessageID)
		assert.Equal(t, second.ID, *conv.LastMessageID)
	})

	t.Run("non-members are forbidden", func(t *testing.T) {
		repo, _, _, convID := setup()
		mallory := repo.addUser("mallory", "mallory@example.com")
		uc := NewCreateMessageUseCase(repo, nil)

		_, err := uc.Execute(ctx, &mallory, CreateMessageInput{ConversationID: convID, Content: []string{"hi"}})
		assert.ErrorIs(t, err, social.ErrForbidden)
	})

	t.Run("blank content is rejected before any write", func(t *testing.T) {
		repo, alice, _, convID := setup()
		uc := NewCreateMessageUseCase(repo, nil)

		_, err := uc.Execute(ctx, &alice, CreateMessageInput{ConversationID: convID, Content: []string{"  ", ""}})
		assert.ErrorIs(t, err, social.ErrInvalidArgument)

		conv, err := repo.ConversationByID(ctx, convID)
		require.NoError(t, err)
		assert.Nil(t, conv.LastMessageID)
	})
}
