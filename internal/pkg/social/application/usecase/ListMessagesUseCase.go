package usecase

import (
	"context"
	"fmt"

	social "go-converse/internal/pkg/social/application/domain"
	"go-converse/internal/pkg/social/application/guard"
	"go-converse/internal/pkg/social/application/task"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// ListMessagesInput identifies the conversation whose messages are listed.
type ListMessagesInput struct {
	ConversationID string
}

// ListMessagesUseCase returns a member's view of a conversation's messages,
// newest first, each joined with the sender's public fields. A message whose
// sender no longer resolves is a referential-integrity violation: the read
// fails with Inconsistent and an alert task is enqueued for operations, it is
// never silently skipped.
type ListMessagesUseCase struct {
	Repo   repository.SocialGraphRepository
	Guard  *guard.AccessGuard
	Alerts task.IntegrityAlerter // optional
}

func NewListMessagesUseCase(repo repository.SocialGraphRepository, alerts task.IntegrityAlerter) *ListMessagesUseCase {
	return &ListMessagesUseCase{Repo: repo, Guard: guard.NewAccessGuard(repo), Alerts: alerts}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, currentUser *social.User, in ListMessagesInput) ([]social.MessageView, error) {
	if _, err := uc.Guard.RequireMembership(ctx, currentUser, in.ConversationID); err != nil {
		return nil, err
	}

	messages, err := uc.Repo.MessagesByConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	senders := make(map[string]*social.User)
	views := make([]social.MessageView, 0, len(messages))
	for _, msg := range messages {
		sender, seen := senders[msg.SenderID]
		if !seen {
			sender, err = uc.Repo.UserByID(ctx, msg.SenderID)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
			}
			senders[msg.SenderID] = sender
		}
		if sender == nil {
			task.ReportMissingSender(ctx, uc.Alerts, in.ConversationID, msg.ID, msg.SenderID)
			return nil, fmt.Errorf("%w: message %s has no sender", social.ErrInconsistent, msg.ID)
		}

		views = append(views, social.MessageView{
			Message:       msg,
			SenderName:    sender.Username,
			SenderImage:   sender.ImageURL,
			IsCurrentUser: sender.ID == currentUser.ID,
		})
	}
	return views, nil
}
