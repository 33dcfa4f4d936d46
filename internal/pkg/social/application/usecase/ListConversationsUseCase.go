package usecase

import (
	"context"
	"fmt"

	social "go-converse/internal/pkg/social/application/domain"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// ListConversationsUseCase returns every conversation the caller belongs to,
// with the direct counterpart and a preview of the last message when the
// last-message pointer is set. The pointer makes the preview a point lookup
// instead of a scan over the conversation's messages.
type ListConversationsUseCase struct {
	Repo repository.SocialGraphRepository
}

func NewListConversationsUseCase(repo repository.SocialGraphRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, currentUser *social.User) ([]social.ConversationListItem, error) {
	if currentUser == nil {
		return nil, social.ErrUnauthenticated
	}

	memberships, err := uc.Repo.MembershipsByUser(ctx, currentUser.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	items := make([]social.ConversationListItem, 0, len(memberships))
	for _, membership := range memberships {
		conversation, err := uc.Repo.ConversationByID(ctx, membership.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if conversation == nil {
			return nil, fmt.Errorf("%w: membership %s has no conversation", social.ErrInconsistent, membership.ID)
		}

		item := social.ConversationListItem{Conversation: *conversation}

		if conversation.IsGroup {
			name := ""
			if conversation.Name != nil {
				name = *conversation.Name
			}
			item.Group = &social.GroupView{Name: name}
		} else {
			counterpart, err := resolveCounterpart(ctx, uc.Repo, currentUser.ID, conversation.ID)
			if err != nil {
				return nil, err
			}
			item.Direct = counterpart
		}

		if conversation.LastMessageID != nil {
			preview, err := uc.lastMessagePreview(ctx, *conversation.LastMessageID)
			if err != nil {
				return nil, err
			}
			item.LastMessage = preview
		}

		items = append(items, item)
	}
	return items, nil
}

func (uc *ListConversationsUseCase) lastMessagePreview(ctx context.Context, messageID string) (*social.MessagePreview, error) {
	msg, err := uc.Repo.MessageByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: last-message pointer at missing message %s", social.ErrInconsistent, messageID)
	}

	sender, err := uc.Repo.UserByID(ctx, msg.SenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if sender == nil {
		return nil, fmt.Errorf("%w: message %s has no sender", social.ErrInconsistent, msg.ID)
	}

	body := ""
	if len(msg.Content) > 0 {
		body = msg.Content[0]
	}
	return &social.MessagePreview{
		SenderName: sender.Username,
		Body:       body,
		CreatedAt:  msg.CreatedAt,
	}, nil
}
