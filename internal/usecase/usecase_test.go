package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
	"github.com/florianilch/linkedin-mcp/internal/domain"
	"github.com/florianilch/linkedin-mcp/internal/usecase"
)

// fakeRepo records every call that reaches it.
type fakeRepo struct {
	calls []string

	createdPost        domain.CreatePostInput
	createdCompanyPost domain.CreateCompanyPostInput
	limit              int
}

func (f *fakeRepo) GetProfile(ctx context.Context) (*domain.Profile, error) {
	f.calls = append(f.calls, "GetProfile")
	return &domain.Profile{ID: "abc"}, nil
}

func (f *fakeRepo) CreatePost(ctx context.Context, in domain.CreatePostInput) (*domain.Post, error) {
	f.calls = append(f.calls, "CreatePost")
	f.createdPost = in
	return &domain.Post{ID: "urn:li:share:1", Text: in.Text, Visibility: in.Visibility}, nil
}

func (f *fakeRepo) GetMyPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	f.calls = append(f.calls, "GetMyPosts")
	f.limit = limit
	return []domain.Post{}, nil
}

func (f *fakeRepo) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	f.calls = append(f.calls, "GetPost")
	return &domain.Post{ID: postID}, nil
}

func (f *fakeRepo) DeletePost(ctx context.Context, postID string) error {
	f.calls = append(f.calls, "DeletePost")
	return nil
}

func (f *fakeRepo) GetCompanyPage(ctx context.Context, companyID string) (*domain.CompanyPage, error) {
	f.calls = append(f.calls, "GetCompanyPage")
	return &domain.CompanyPage{ID: companyID}, nil
}

func (f *fakeRepo) CreateCompanyPost(ctx context.Context, in domain.CreateCompanyPostInput) (*domain.CompanyPost, error) {
	f.calls = append(f.calls, "CreateCompanyPost")
	f.createdCompanyPost = in
	return &domain.CompanyPost{CompanyID: in.CompanyID}, nil
}

func (f *fakeRepo) GetCompanyPosts(ctx context.Context, companyID string, limit int) ([]domain.CompanyPost, error) {
	f.calls = append(f.calls, "GetCompanyPosts")
	f.limit = limit
	return []domain.CompanyPost{}, nil
}

func (f *fakeRepo) GetAdministeredCompanies(ctx context.Context) ([]domain.AdministeredCompany, error) {
	f.calls = append(f.calls, "GetAdministeredCompanies")
	return []domain.AdministeredCompany{}, nil
}

func (f *fakeRepo) GetCompanyAnalytics(ctx context.Context, companyID string) ([]domain.PostAnalytics, error) {
	f.calls = append(f.calls, "GetCompanyAnalytics")
	return []domain.PostAnalytics{}, nil
}

func (f *fakeRepo) SearchJobs(ctx context.Context, criteria domain.SearchJobsCriteria) ([]domain.JobPosting, error) {
	f.calls = append(f.calls, "SearchJobs")
	return []domain.JobPosting{}, nil
}

func (f *fakeRepo) GetJob(ctx context.Context, jobID string) (*domain.JobPosting, error) {
	f.calls = append(f.calls, "GetJob")
	return nil, apperrors.Unsupported("get_job", "unsupported")
}

func (f *fakeRepo) GetConversations(ctx context.Context, limit int) ([]domain.Message, error) {
	f.calls = append(f.calls, "GetConversations")
	return []domain.Message{}, nil
}

func (f *fakeRepo) GetConversationMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	f.calls = append(f.calls, "GetConversationMessages")
	return []domain.Message{}, nil
}

func (f *fakeRepo) SendMessage(ctx context.Context, in domain.SendMessageInput) (*domain.Message, error) {
	f.calls = append(f.calls, "SendMessage")
	return nil, apperrors.Unsupported("send_message", "unsupported")
}

var _ usecase.Repository = (*fakeRepo)(nil)

func TestCreatePostTextBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "empty", text: "", wantErr: true},
		{name: "whitespace only", text: "  \n\t ", wantErr: true},
		{name: "single character", text: "a"},
		{name: "at limit", text: strings.Repeat("a", 3000)},
		{name: "over limit", text: strings.Repeat("a", 3001), wantErr: true},
		{name: "surrounding whitespace not counted", text: "  " + strings.Repeat("a", 3000) + "  "},
		{name: "multibyte at limit", text: strings.Repeat("ü", 3000)},
		{name: "multibyte over limit", text: strings.Repeat("ü", 3001), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			post, err := usecase.NewPosts(repo).Create(context.Background(), domain.CreatePostInput{Text: tt.text})

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Empty(t, repo.calls, "no remote call on invalid input")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.text, post.Text, "text is sent unmodified")
			assert.Equal(t, []string{"CreatePost"}, repo.calls)
		})
	}
}

func TestCreatePostVisibility(t *testing.T) {
	repo := &fakeRepo{}
	posts := usecase.NewPosts(repo)

	_, err := posts.Create(context.Background(), domain.CreatePostInput{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityPublic, repo.createdPost.Visibility)

	_, err = posts.Create(context.Background(), domain.CreatePostInput{Text: "hi", Visibility: domain.VisibilityLoggedIn})
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityLoggedIn, repo.createdPost.Visibility)

	_, err = posts.Create(context.Background(), domain.CreatePostInput{Text: "hi", Visibility: "FRIENDS"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Len(t, repo.calls, 2)
}

func TestLimitBoundaries(t *testing.T) {
	tests := []struct {
		limit   int
		wantErr bool
	}{
		{limit: -1, wantErr: true},
		{limit: 0, wantErr: true},
		{limit: 1},
		{limit: 50},
		{limit: 100},
		{limit: 101, wantErr: true},
	}

	for _, tt := range tests {
		repo := &fakeRepo{}
		_, postsErr := usecase.NewPosts(repo).List(context.Background(), tt.limit)
		_, companyErr := usecase.NewCompanies(repo).ListPosts(context.Background(), "123", tt.limit)

		if tt.wantErr {
			assert.ErrorIs(t, postsErr, apperrors.ErrValidation, "limit %d", tt.limit)
			assert.ErrorIs(t, companyErr, apperrors.ErrValidation, "limit %d", tt.limit)
			assert.Empty(t, repo.calls, "limit %d", tt.limit)
			continue
		}
		assert.NoError(t, postsErr, "limit %d", tt.limit)
		assert.NoError(t, companyErr, "limit %d", tt.limit)
		assert.Equal(t, tt.limit, repo.limit)
		assert.Equal(t, []string{"GetMyPosts", "GetCompanyPosts"}, repo.calls)
	}
}

func TestDeletePost(t *testing.T) {
	repo := &fakeRepo{}
	posts := usecase.NewPosts(repo)

	_, err := posts.Delete(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, repo.calls)

	ack, err := posts.Delete(context.Background(), "urn:li:share:1")
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Contains(t, ack.Message, "urn:li:share:1")
	assert.Equal(t, []string{"DeletePost"}, repo.calls)
}

func TestCompanyOperationsRequireID(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	companies := usecase.NewCompanies(repo)

	_, err := companies.GetPage(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = companies.GetPage(ctx, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = companies.CreatePost(ctx, domain.CreateCompanyPostInput{Text: "hello"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = companies.ListPosts(ctx, "", 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = companies.Analytics(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.Empty(t, repo.calls)
}

func TestCreateCompanyPost(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	companies := usecase.NewCompanies(repo)

	_, err := companies.CreatePost(ctx, domain.CreateCompanyPostInput{CompanyID: "123", Text: strings.Repeat("x", 3001)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, repo.calls)

	post, err := companies.CreatePost(ctx, domain.CreateCompanyPostInput{CompanyID: "123", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "123", post.CompanyID)
	assert.Equal(t, domain.VisibilityPublic, repo.createdCompanyPost.Visibility)
}

func TestUnsupportedOperationsValidateFirst(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}

	_, err := usecase.NewJobs(repo).Get(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = usecase.NewMessaging(repo).Send(ctx, domain.SendMessageInput{RecipientID: "r"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, repo.calls)

	_, err = usecase.NewJobs(repo).Get(ctx, "j1")
	assert.ErrorIs(t, err, apperrors.ErrUnsupported)

	_, err = usecase.NewMessaging(repo).Send(ctx, domain.SendMessageInput{RecipientID: "r", Text: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrUnsupported)

	jobs, err := usecase.NewJobs(repo).Search(ctx, domain.SearchJobsCriteria{Keywords: "go", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
