package usecase

import (
	"context"

	"github.com/florianilch/linkedin-mcp/internal/domain"
)

// Profiles serves the authenticated member's profile.
type Profiles struct {
	repo ProfileRepository
}

func NewProfiles(repo ProfileRepository) *Profiles {
	return &Profiles{repo: repo}
}

// Get fetches the profile. It has no inputs to validate.
func (p *Profiles) Get(ctx context.Context) (*domain.Profile, error) {
	return p.repo.GetProfile(ctx)
}
