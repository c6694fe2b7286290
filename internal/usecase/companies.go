package usecase

import (
	"context"

	"github.com/florianilch/linkedin-mcp/internal/domain"
)

// Companies manages organization pages the member has access to.
type Companies struct {
	repo CompanyRepository
}

func NewCompanies(repo CompanyRepository) *Companies {
	return &Companies{repo: repo}
}

// GetPage looks up an organization page.
func (c *Companies) GetPage(ctx context.Context, companyID string) (*domain.CompanyPage, error) {
	if err := requireField("company id", companyID); err != nil {
		return nil, err
	}
	return c.repo.GetCompanyPage(ctx, companyID)
}

// CreatePost publishes a post on behalf of an organization.
func (c *Companies) CreatePost(ctx context.Context, in domain.CreateCompanyPostInput) (*domain.CompanyPost, error) {
	if err := requireField("company id", in.CompanyID); err != nil {
		return nil, err
	}
	if err := validateText(in.Text); err != nil {
		return nil, err
	}
	if err := validateVisibility(in.Visibility); err != nil {
		return nil, err
	}

	in.Visibility = in.Visibility.OrDefault()
	return c.repo.CreateCompanyPost(ctx, in)
}

// ListPosts returns up to limit of an organization's recent posts.
func (c *Companies) ListPosts(ctx context.Context, companyID string, limit int) ([]domain.CompanyPost, error) {
	if err := requireField("company id", companyID); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return c.repo.GetCompanyPosts(ctx, companyID, limit)
}

// Administered lists organizations the member administers.
func (c *Companies) Administered(ctx context.Context) ([]domain.AdministeredCompany, error) {
	return c.repo.GetAdministeredCompanies(ctx)
}

// Analytics returns post analytics for an organization.
func (c *Companies) Analytics(ctx context.Context, companyID string) ([]domain.PostAnalytics, error) {
	if err := requireField("company id", companyID); err != nil {
		return nil, err
	}
	return c.repo.GetCompanyAnalytics(ctx, companyID)
}
