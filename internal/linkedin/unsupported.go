package linkedin

import (
	"context"
	"log/slog"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
	"github.com/florianilch/linkedin-mcp/internal/domain"
)

// The operations below need LinkedIn partner program access that standard
// applications are not granted. List operations answer with an empty result;
// single-entity lookups and writes fail with an Unsupported error. None of
// them performs a remote call.

// GetCompanyAnalytics returns no analytics; the organization statistics API
// requires Marketing Developer Platform access.
func (c *Client) GetCompanyAnalytics(ctx context.Context, companyID string) ([]domain.PostAnalytics, error) {
	slog.WarnContext(ctx, "company analytics require marketing developer platform access",
		"op", OpGetCompanyAnalytics, "company_id", companyID)
	return []domain.PostAnalytics{}, nil
}

// SearchJobs returns no postings; the jobs API requires Talent Solutions access.
func (c *Client) SearchJobs(ctx context.Context, criteria domain.SearchJobsCriteria) ([]domain.JobPosting, error) {
	slog.WarnContext(ctx, "job search requires talent solutions partner access",
		"op", OpSearchJobs, "keywords", criteria.Keywords, "location", criteria.Location)
	return []domain.JobPosting{}, nil
}

// GetJob always fails with an Unsupported error.
func (c *Client) GetJob(ctx context.Context, jobID string) (*domain.JobPosting, error) {
	return nil, apperrors.Unsupported(OpGetJob, "job details require LinkedIn Talent Solutions partner access")
}

// GetConversations returns no conversations; the messaging API is restricted
// to approved partners.
func (c *Client) GetConversations(ctx context.Context, limit int) ([]domain.Message, error) {
	slog.WarnContext(ctx, "messaging requires partner access", "op", OpGetConversations, "limit", limit)
	return []domain.Message{}, nil
}

// GetConversationMessages returns no messages for the same reason as
// GetConversations.
func (c *Client) GetConversationMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	slog.WarnContext(ctx, "messaging requires partner access",
		"op", OpGetConversationMessages, "conversation_id", conversationID)
	return []domain.Message{}, nil
}

// SendMessage always fails with an Unsupported error.
func (c *Client) SendMessage(ctx context.Context, in domain.SendMessageInput) (*domain.Message, error) {
	return nil, apperrors.Unsupported(OpSendMessage, "sending messages requires LinkedIn messaging partner access")
}
