package usecase

import (
	"context"
	"fmt"

	social "go-converse/internal/pkg/social/application/domain"
	"go-converse/internal/pkg/social/application/guard"
	repository "go-converse/internal/pkg/social/persistence/repository/port"
)

// GetConversationInput identifies the conversation to resolve.
type GetConversationInput struct {
	ConversationID string
}

// GetConversationUseCase resolves one conversation for a member. Membership is
// checked before the conversation is loaded so a non-member always gets
// Forbidden and never learns whether the id exists. Direct conversations are
// returned with the counterpart inlined; groups with their name.
type GetConversationUseCase struct {
	Repo  repository.SocialGraphRepository
	Guard *guard.AccessGuard
}

func NewGetConversationUseCase(repo repository.SocialGraphRepository) *GetConversationUseCase {
	return &GetConversationUseCase{Repo: repo, Guard: guard.NewAccessGuard(repo)}
}

func (uc *GetConversationUseCase) Execute(ctx context.Context, currentUser *social.User, in GetConversationInput) (*social.ConversationView, error) {
	if _, err := uc.Guard.RequireMembership(ctx, currentUser, in.ConversationID); err != nil {
		return nil, err
	}

	conversation, err := uc.Repo.ConversationByID(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conversation == nil {
		return nil, social.ErrNotFound
	}

	view := &social.ConversationView{Conversation: *conversation}

	if conversation.IsGroup {
		name := ""
		if conversation.Name != nil {
			name = *conversation.Name
		}
		view.Group = &social.GroupView{Name: name}
		return view, nil
	}

	counterpart, err := resolveCounterpart(ctx, uc.Repo, currentUser.ID, conversation.ID)
	if err != nil {
		return nil, err
	}
	view.Direct = counterpart
	return view, nil
}

// resolveCounterpart finds the unique other membership of a direct
// conversation and inlines that user's public fields. A direct conversation
// without exactly one other member, or a membership pointing at a missing
// user, is corrupted state.
func resolveCounterpart(ctx context.Context, tx repository.Tx, currentUserID, conversationID string) (*social.CounterpartView, error) {
	memberships, err := tx.MembershipsByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var other *social.ConversationMember
	for i := range memberships {
		if memberships[i].MemberID != currentUserID {
			other = &memberships[i]
			break
		}
	}
	if other == nil {
		return nil, fmt.Errorf("%w: direct conversation %s has no counterpart", social.ErrInconsistent, conversationID)
	}

	user, err := tx.UserByID(ctx, other.MemberID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: membership %s has no user", social.ErrInconsistent, other.ID)
	}

	return &social.CounterpartView{
		UserID:            user.ID,
		Username:          user.Username,
		ImageURL:          user.ImageURL,
		LastSeenMessageID: other.LastSeenMessageID,
	}, nil
}
