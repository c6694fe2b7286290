package usecase

import (
	"context"

	"github.com/florianilch/linkedin-mcp/internal/domain"
)

// ProfileRepository reads the authenticated member's identity.
type ProfileRepository interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
}

// PostRepository manages posts authored by the authenticated member.
type PostRepository interface {
	CreatePost(ctx context.Context, in domain.CreatePostInput) (*domain.Post, error)
	GetMyPosts(ctx context.Context, limit int) ([]domain.Post, error)
	GetPost(ctx context.Context, postID string) (*domain.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

// CompanyRepository manages organization pages and their posts.
type CompanyRepository interface {
	GetCompanyPage(ctx context.Context, companyID string) (*domain.CompanyPage, error)
	CreateCompanyPost(ctx context.Context, in domain.CreateCompanyPostInput) (*domain.CompanyPost, error)
	GetCompanyPosts(ctx context.Context, companyID string, limit int) ([]domain.CompanyPost, error)
	GetAdministeredCompanies(ctx context.Context) ([]domain.AdministeredCompany, error)
	GetCompanyAnalytics(ctx context.Context, companyID string) ([]domain.PostAnalytics, error)
}

// JobRepository searches job postings.
type JobRepository interface {
	SearchJobs(ctx context.Context, criteria domain.SearchJobsCriteria) ([]domain.JobPosting, error)
	GetJob(ctx context.Context, jobID string) (*domain.JobPosting, error)
}

// MessagingRepository reads and sends member messages.
type MessagingRepository interface {
	GetConversations(ctx context.Context, limit int) ([]domain.Message, error)
	GetConversationMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	SendMessage(ctx context.Context, in domain.SendMessageInput) (*domain.Message, error)
}

// Repository is the full surface of the LinkedIn client.
type Repository interface {
	ProfileRepository
	PostRepository
	CompanyRepository
	JobRepository
	MessagingRepository
}
