package usecase

import (
	"context"
	"fmt"

	social "go-converse/internal/pkg/social/application/domain"
	"go-converse/internal/pkg/social/application/event"
	"go-converse/internal/pkg/social/application/guard"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// CreateMessageInput carries the data needed to append a message.
type CreateMessageInput struct {
	ConversationID string
	Type           string
	Content        []string
}

// CreateMessageUseCase appends a message to a conversation the caller belongs
// to and advances the conversation's last-message pointer. Insert and pointer
// update are one transaction, so no reader ever observes a pointer at a
// message that is not durably inserted.
type CreateMessageUseCase struct {
	Repo   repository.SocialGraphRepository
	Events event.Publisher
}

func NewCreateMessageUseCase(repo repository.SocialGraphRepository, events event.Publisher) *CreateMessageUseCase {
	if events == nil {
		events = event.NopPublisher{}
	}
	return &CreateMessageUseCase{Repo: repo, Events: events}
}

func (uc *CreateMessageUseCase) Execute(ctx context.Context, currentUser *social.User, in CreateMessageInput) (*social.Message, error) {
	if currentUser == nil {
		return nil, social.ErrUnauthenticated
	}

	msg, err := social.NewMessage(social.Message{
		ConversationID: in.ConversationID,
		SenderID:       currentUser.ID,
		Type:           in.Type,
		Content:        in.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", social.ErrInvalidArgument, err)
	}

	err = uc.Repo.WithTx(ctx, func(tx repository.Tx) error {
		if _, err := guard.RequireMembership(ctx, tx, currentUser, in.ConversationID); err != nil {
			return err
		}

		id, err := tx.InsertMessage(ctx, *msg)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		msg.ID = id

		if err := tx.SetLastMessage(ctx, in.ConversationID, id); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Events.MessageCreated(in.ConversationID, social.MessageView{
		Message:     *msg,
		SenderName:  currentUser.Username,
		SenderImage: currentUser.ImageURL,
	})
	return msg, nil
}
