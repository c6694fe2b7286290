package tools_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
	"github.com/florianilch/linkedin-mcp/internal/domain"
	"github.com/florianilch/linkedin-mcp/internal/tokenstore"
	"github.com/florianilch/linkedin-mcp/internal/tools"
	"github.com/florianilch/linkedin-mcp/internal/usecase"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type call struct {
	method string
	args   []any
}

// recordingRepo answers every repository method and records its arguments.
type recordingRepo struct {
	calls []call
}

func (r *recordingRepo) record(method string, args ...any) {
	r.calls = append(r.calls, call{method: method, args: args})
}

func (r *recordingRepo) GetProfile(ctx context.Context) (*domain.Profile, error) {
	r.record("GetProfile")
	return &domain.Profile{ID: "abc", FirstName: "Ada", LastName: "Lovelace"}, nil
}

func (r *recordingRepo) CreatePost(ctx context.Context, in domain.CreatePostInput) (*domain.Post, error) {
	r.record("CreatePost", in)
	return &domain.Post{ID: "urn:li:share:1", Text: in.Text, Visibility: in.Visibility, CreatedAt: now}, nil
}

func (r *recordingRepo) GetMyPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	r.record("GetMyPosts", limit)
	return []domain.Post{}, nil
}

func (r *recordingRepo) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	r.record("GetPost", postID)
	return &domain.Post{ID: postID}, nil
}

func (r *recordingRepo) DeletePost(ctx context.Context, postID string) error {
	r.record("DeletePost", postID)
	return nil
}

func (r *recordingRepo) GetCompanyPage(ctx context.Context, companyID string) (*domain.CompanyPage, error) {
	r.record("GetCompanyPage", companyID)
	return &domain.CompanyPage{ID: companyID, Name: "Acme"}, nil
}

func (r *recordingRepo) CreateCompanyPost(ctx context.Context, in domain.CreateCompanyPostInput) (*domain.CompanyPost, error) {
	r.record("CreateCompanyPost", in)
	return &domain.CompanyPost{CompanyID: in.CompanyID, Post: domain.Post{Text: in.Text}}, nil
}

func (r *recordingRepo) GetCompanyPosts(ctx context.Context, companyID string, limit int) ([]domain.CompanyPost, error) {
	r.record("GetCompanyPosts", companyID, limit)
	return []domain.CompanyPost{}, nil
}

func (r *recordingRepo) GetAdministeredCompanies(ctx context.Context) ([]domain.AdministeredCompany, error) {
	r.record("GetAdministeredCompanies")
	return []domain.AdministeredCompany{{CompanyID: "1", URN: "urn:li:organization:1"}}, nil
}

func (r *recordingRepo) GetCompanyAnalytics(ctx context.Context, companyID string) ([]domain.PostAnalytics, error) {
	r.record("GetCompanyAnalytics", companyID)
	return []domain.PostAnalytics{}, nil
}

func (r *recordingRepo) SearchJobs(ctx context.Context, criteria domain.SearchJobsCriteria) ([]domain.JobPosting, error) {
	r.record("SearchJobs", criteria)
	return []domain.JobPosting{}, nil
}

func (r *recordingRepo) GetJob(ctx context.Context, jobID string) (*domain.JobPosting, error) {
	r.record("GetJob", jobID)
	return nil, apperrors.Unsupported("get_job", "job details require partner access")
}

func (r *recordingRepo) GetConversations(ctx context.Context, limit int) ([]domain.Message, error) {
	r.record("GetConversations", limit)
	return []domain.Message{}, nil
}

func (r *recordingRepo) GetConversationMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	r.record("GetConversationMessages", conversationID)
	return []domain.Message{}, nil
}

func (r *recordingRepo) SendMessage(ctx context.Context, in domain.SendMessageInput) (*domain.Message, error) {
	r.record("SendMessage", in)
	return nil, apperrors.Unsupported("send_message", "messaging requires partner access")
}

type staticTokens struct {
	token *tokenstore.Token
	err   error
}

func (s staticTokens) CurrentToken(ctx context.Context) (*tokenstore.Token, error) {
	return s.token, s.err
}

func newRegistry(repo *recordingRepo, defaultCompany string, tokens tools.TokenReader) *tools.Registry {
	if tokens == nil {
		tokens = staticTokens{}
	}
	return tools.NewRegistry(tools.Dependencies{
		Profiles:         usecase.NewProfiles(repo),
		Posts:            usecase.NewPosts(repo),
		Companies:        usecase.NewCompanies(repo),
		Jobs:             usecase.NewJobs(repo),
		Messaging:        usecase.NewMessaging(repo),
		Tokens:           tokens,
		DefaultCompanyID: defaultCompany,
		Now:              func() time.Time { return now },
	})
}

func TestToolsAreDeclared(t *testing.T) {
	registry := newRegistry(&recordingRepo{}, "", nil)

	var names []string
	for _, tool := range registry.Tools() {
		names = append(names, tool.Name)
		assert.True(t, strings.HasPrefix(tool.Name, tools.Prefix), tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		require.NotNil(t, tool.InputSchema, tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type, tool.Name)
	}

	for _, want := range []string{
		"linkedin_get_profile",
		"linkedin_create_post",
		"linkedin_get_my_posts",
		"linkedin_delete_post",
		"linkedin_get_company_page",
		"linkedin_create_company_post",
		"linkedin_get_company_posts",
	} {
		assert.Contains(t, names, want)
	}

	for _, name := range names {
		assert.True(t, registry.Has(name), name)
	}
	assert.False(t, registry.Has("linkedin_nope"))
	assert.False(t, registry.Has("get_profile"))
}

func TestCompanySchemaRequiresIDWithoutDefault(t *testing.T) {
	find := func(r *tools.Registry, name string) tools.Tool {
		for _, tool := range r.Tools() {
			if tool.Name == name {
				return tool
			}
		}
		t.Fatalf("tool %s not registered", name)
		return tools.Tool{}
	}

	withoutDefault := find(newRegistry(&recordingRepo{}, "", nil), "linkedin_get_company_page")
	assert.Contains(t, withoutDefault.InputSchema.Required, "companyId")

	withDefault := find(newRegistry(&recordingRepo{}, "999", nil), "linkedin_get_company_page")
	assert.NotContains(t, withDefault.InputSchema.Required, "companyId")
	assert.Contains(t, withDefault.InputSchema.Properties, "companyId")
}

func TestCallDispatch(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     string
		wantCall call
	}{
		{
			name:     "get profile without arguments",
			tool:     "linkedin_get_profile",
			wantCall: call{method: "GetProfile"},
		},
		{
			name:     "create post defaults visibility",
			tool:     "linkedin_create_post",
			args:     `{"text":"Hello"}`,
			wantCall: call{method: "CreatePost", args: []any{domain.CreatePostInput{Text: "Hello", Visibility: domain.VisibilityPublic}}},
		},
		{
			name:     "create post with visibility",
			tool:     "linkedin_create_post",
			args:     `{"text":"Hello","visibility":"CONNECTIONS"}`,
			wantCall: call{method: "CreatePost", args: []any{domain.CreatePostInput{Text: "Hello", Visibility: domain.VisibilityConnections}}},
		},
		{
			name:     "list posts defaults limit",
			tool:     "linkedin_get_my_posts",
			args:     `null`,
			wantCall: call{method: "GetMyPosts", args: []any{10}},
		},
		{
			name:     "list posts with limit",
			tool:     "linkedin_get_my_posts",
			args:     `{"limit":100}`,
			wantCall: call{method: "GetMyPosts", args: []any{100}},
		},
		{
			name:     "delete post",
			tool:     "linkedin_delete_post",
			args:     `{"postId":"urn:li:share:1"}`,
			wantCall: call{method: "DeletePost", args: []any{"urn:li:share:1"}},
		},
		{
			name:     "company page",
			tool:     "linkedin_get_company_page",
			args:     `{"companyId":"123"}`,
			wantCall: call{method: "GetCompanyPage", args: []any{"123"}},
		},
		{
			name: "company post",
			tool: "linkedin_create_company_post",
			args: `{"companyId":"123","text":"Hiring","visibility":"LOGGED_IN"}`,
			wantCall: call{method: "CreateCompanyPost", args: []any{domain.CreateCompanyPostInput{
				CompanyID: "123", Text: "Hiring", Visibility: domain.VisibilityLoggedIn,
			}}},
		},
		{
			name:     "company posts",
			tool:     "linkedin_get_company_posts",
			args:     `{"companyId":"123","limit":1}`,
			wantCall: call{method: "GetCompanyPosts", args: []any{"123", 1}},
		},
		{
			name: "search jobs",
			tool: "linkedin_search_jobs",
			args: `{"keywords":"golang","jobType":"CONTRACT"}`,
			wantCall: call{method: "SearchJobs", args: []any{domain.SearchJobsCriteria{
				Keywords: "golang", JobType: "CONTRACT", Limit: 10,
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingRepo{}
			result, err := newRegistry(repo, "", nil).Call(context.Background(), tt.tool, json.RawMessage(tt.args))
			require.NoError(t, err)
			assert.NotNil(t, result)
			assert.Equal(t, []call{tt.wantCall}, repo.calls)
		})
	}
}

func TestDeleteReturnsAcknowledgement(t *testing.T) {
	result, err := newRegistry(&recordingRepo{}, "", nil).
		Call(context.Background(), "linkedin_delete_post", json.RawMessage(`{"postId":"urn:li:share:1"}`))
	require.NoError(t, err)

	ack, ok := result.(*domain.DeleteResult)
	require.True(t, ok)
	assert.True(t, ack.Success)
}

func TestDefaultCompanyFallback(t *testing.T) {
	repo := &recordingRepo{}
	registry := newRegistry(repo, "999", nil)

	_, err := registry.Call(context.Background(), "linkedin_get_company_page", nil)
	require.NoError(t, err)
	_, err = registry.Call(context.Background(), "linkedin_get_company_posts", json.RawMessage(`{"limit":5}`))
	require.NoError(t, err)
	_, err = registry.Call(context.Background(), "linkedin_get_company_page", json.RawMessage(`{"companyId":"123"}`))
	require.NoError(t, err)

	assert.Equal(t, []call{
		{method: "GetCompanyPage", args: []any{"999"}},
		{method: "GetCompanyPosts", args: []any{"999", 5}},
		{method: "GetCompanyPage", args: []any{"123"}},
	}, repo.calls)
}

func TestCallFailures(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     string
		wantKind apperrors.Kind
		wantMsg  string
	}{
		{name: "unknown tool", tool: "linkedin_nope", args: `{}`, wantKind: apperrors.KindUnknownOperation, wantMsg: "unknown tool: linkedin_nope"},
		{name: "unprefixed name", tool: "get_profile", args: `{}`, wantKind: apperrors.KindUnknownOperation},
		{name: "text wrong type", tool: "linkedin_create_post", args: `{"text":42}`, wantKind: apperrors.KindTypeMismatch, wantMsg: "argument text must be of type string"},
		{name: "limit wrong type", tool: "linkedin_get_my_posts", args: `{"limit":"ten"}`, wantKind: apperrors.KindTypeMismatch, wantMsg: "argument limit must be of type integer"},
		{name: "limit fractional", tool: "linkedin_get_my_posts", args: `{"limit":2.5}`, wantKind: apperrors.KindTypeMismatch},
		{name: "arguments not an object", tool: "linkedin_create_post", args: `["Hello"]`, wantKind: apperrors.KindTypeMismatch, wantMsg: "arguments must be an object"},
		{name: "malformed json", tool: "linkedin_create_post", args: `{"text":`, wantKind: apperrors.KindTypeMismatch},
		{name: "missing text", tool: "linkedin_create_post", args: `{}`, wantKind: apperrors.KindValidation, wantMsg: "post text cannot be empty"},
		{name: "text too long", tool: "linkedin_create_post", args: `{"text":"` + strings.Repeat("a", 3001) + `"}`, wantKind: apperrors.KindValidation},
		{name: "bad visibility", tool: "linkedin_create_post", args: `{"text":"hi","visibility":"FRIENDS"}`, wantKind: apperrors.KindValidation, wantMsg: "visibility must be one of PUBLIC, CONNECTIONS, LOGGED_IN"},
		{name: "limit zero", tool: "linkedin_get_my_posts", args: `{"limit":0}`, wantKind: apperrors.KindValidation},
		{name: "limit too high", tool: "linkedin_get_company_posts", args: `{"companyId":"1","limit":101}`, wantKind: apperrors.KindValidation},
		{name: "missing post id", tool: "linkedin_delete_post", args: `{}`, wantKind: apperrors.KindValidation, wantMsg: "postId is required"},
		{name: "missing company id", tool: "linkedin_get_company_page", args: `{}`, wantKind: apperrors.KindValidation, wantMsg: "company id is required"},
		{name: "unsupported job lookup", tool: "linkedin_get_job", args: `{"jobId":"1"}`, wantKind: apperrors.KindUnsupported},
		{name: "unsupported send", tool: "linkedin_send_message", args: `{"recipientId":"r","text":"hi"}`, wantKind: apperrors.KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingRepo{}
			result, err := newRegistry(repo, "", nil).Call(context.Background(), tt.tool, json.RawMessage(tt.args))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			if tt.wantKind != apperrors.KindUnsupported {
				assert.Empty(t, repo.calls, "rejected calls must not reach the client")
			}
		})
	}
}

func TestAuthStatus(t *testing.T) {
	tests := []struct {
		name              string
		token             *tokenstore.Token
		wantAuthenticated bool
		wantMsg           string
	}{
		{name: "no token", wantMsg: "not authenticated, run the auth command"},
		{
			name:              "valid token",
			token:             &tokenstore.Token{AccessToken: "secret-access", ExpiresAt: now.Add(time.Hour).UnixMilli(), Scope: []string{"openid"}},
			wantAuthenticated: true,
			wantMsg:           "authenticated",
		},
		{
			name:    "expired with refresh token",
			token:   &tokenstore.Token{AccessToken: "secret-access", RefreshToken: "secret-refresh", ExpiresAt: now.UnixMilli()},
			wantMsg: "token expired, it will be refreshed on the next call",
		},
		{
			name:    "expired without refresh token",
			token:   &tokenstore.Token{AccessToken: "secret-access", ExpiresAt: now.Add(-time.Minute).UnixMilli()},
			wantMsg: "token expired, run the auth command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := newRegistry(&recordingRepo{}, "", staticTokens{token: tt.token})
			result, err := registry.Call(context.Background(), "linkedin_auth_status", nil)
			require.NoError(t, err)

			status, ok := result.(*tools.AuthStatus)
			require.True(t, ok)
			assert.Equal(t, tt.wantAuthenticated, status.Authenticated)
			assert.Equal(t, tt.wantMsg, status.Message)

			// The status payload never carries token material
			data, err := json.Marshal(status)
			require.NoError(t, err)
			assert.NotContains(t, string(data), "secret")
		})
	}
}

func TestAuthStatusStorageError(t *testing.T) {
	registry := newRegistry(&recordingRepo{}, "", staticTokens{err: apperrors.Storage("token loading error", nil)})
	_, err := registry.Call(context.Background(), "linkedin_auth_status", nil)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}
