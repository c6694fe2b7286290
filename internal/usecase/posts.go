package usecase

import (
	"context"

	"github.com/florianilch/linkedin-mcp/internal/domain"
)

// Posts manages the authenticated member's own posts.
type Posts struct {
	repo PostRepository
}

func NewPosts(repo PostRepository) *Posts {
	return &Posts{repo: repo}
}

// Create publishes a post. Visibility defaults to PUBLIC.
func (p *Posts) Create(ctx context.Context, in domain.CreatePostInput) (*domain.Post, error) {
	if err := validateText(in.Text); err != nil {
		return nil, err
	}
	if err := validateVisibility(in.Visibility); err != nil {
		return nil, err
	}

	in.Visibility = in.Visibility.OrDefault()
	return p.repo.CreatePost(ctx, in)
}

// List returns up to limit of the member's recent posts.
func (p *Posts) List(ctx context.Context, limit int) ([]domain.Post, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return p.repo.GetMyPosts(ctx, limit)
}

// Get fetches a single post.
func (p *Posts) Get(ctx context.Context, postID string) (*domain.Post, error) {
	if err := requireField("post id", postID); err != nil {
		return nil, err
	}
	return p.repo.GetPost(ctx, postID)
}

// Delete removes a post and returns an acknowledgement.
func (p *Posts) Delete(ctx context.Context, postID string) (*domain.DeleteResult, error) {
	if err := requireField("post id", postID); err != nil {
		return nil, err
	}
	if err := p.repo.DeletePost(ctx, postID); err != nil {
		return nil, err
	}
	return &domain.DeleteResult{Success: true, Message: "post " + postID + " deleted successfully"}, nil
}
