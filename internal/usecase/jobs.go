package usecase

import (
	"context"

	"github.com/florianilch/linkedin-mcp/internal/domain"
)

type Jobs struct {
	repo JobRepository
}

func NewJobs(repo JobRepository) *Jobs {
	return &Jobs{repo: repo}
}

func (j *Jobs) Search(ctx context.Context, criteria domain.SearchJobsCriteria) ([]domain.JobPosting, error) {
	if err := validateLimit(criteria.Limit); err != nil {
		return nil, err
	}
	return j.repo.SearchJobs(ctx, criteria)
}

func (j *Jobs) Get(ctx context.Context, jobID string) (*domain.JobPosting, error) {
	if err := requireField("job id", jobID); err != nil {
		return nil, err
	}
	return j.repo.GetJob(ctx, jobID)
}
