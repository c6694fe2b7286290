package usecase

import (
	"context"

	"github.com/florianilch/linkedin-mcp/internal/domain"
)

type Messaging struct {
	repo MessagingRepository
}

func NewMessaging(repo MessagingRepository) *Messaging {
	return &Messaging{repo: repo}
}

func (m *Messaging) Conversations(ctx context.Context, limit int) ([]domain.Message, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return m.repo.GetConversations(ctx, limit)
}

func (m *Messaging) Messages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	if err := requireField("conversation id", conversationID); err != nil {
		return nil, err
	}
	return m.repo.GetConversationMessages(ctx, conversationID)
}

// Send validates the message like a post, then delegates.
func (m *Messaging) Send(ctx context.Context, in domain.SendMessageInput) (*domain.Message, error) {
	if err := requireField("recipient id", in.RecipientID); err != nil {
		return nil, err
	}
	if err := validateText(in.Text); err != nil {
		return nil, err
	}
	return m.repo.SendMessage(ctx, in)
}
