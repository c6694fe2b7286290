package tools

import (
	"context"
	"strings"
	"time"

	"github.com/florianilch/linkedin-mcp/internal/domain"
	"github.com/florianilch/linkedin-mcp/internal/tokenstore"
	"github.com/florianilch/linkedin-mcp/internal/usecase"
)

// Prefix namespaces every tool name.
const Prefix = "linkedin_"

// TokenReader exposes the stored credential without refreshing it.
type TokenReader interface {
	CurrentToken(ctx context.Context) (*tokenstore.Token, error)
}

// Dependencies are the use cases the tools dispatch to.
type Dependencies struct {
	Profiles  *usecase.Profiles
	Posts     *usecase.Posts
	Companies *usecase.Companies
	Jobs      *usecase.Jobs
	Messaging *usecase.Messaging
	Tokens    TokenReader

	// DefaultCompanyID is used when a company tool is called without companyId.
	DefaultCompanyID string
	// Now defaults to time.Now.
	Now func() time.Time
}

// AuthStatus reports the local state of the stored credential.
type AuthStatus struct {
	Authenticated   bool       `json:"authenticated"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	HasRefreshToken bool       `json:"hasRefreshToken"`
	Scope           []string   `json:"scope,omitempty"`
	Message         string     `json:"message"`
}

type noArgs struct{}

type createPostArgs struct {
	Text       string            `json:"text"`
	Visibility domain.Visibility `json:"visibility" validate:"omitempty,oneof=PUBLIC CONNECTIONS LOGGED_IN"`
}

type listArgs struct {
	Limit *int `json:"limit"`
}

type postArgs struct {
	PostID string `json:"postId" validate:"required"`
}

type companyArgs struct {
	CompanyID string `json:"companyId"`
}

type createCompanyPostArgs struct {
	CompanyID  string            `json:"companyId"`
	Text       string            `json:"text"`
	Visibility domain.Visibility `json:"visibility" validate:"omitempty,oneof=PUBLIC CONNECTIONS LOGGED_IN"`
}

type companyPostsArgs struct {
	CompanyID string `json:"companyId"`
	Limit     *int   `json:"limit"`
}

type searchJobsArgs struct {
	Keywords        string `json:"keywords"`
	Location        string `json:"location"`
	JobType         string `json:"jobType" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT TEMPORARY INTERNSHIP"`
	ExperienceLevel string `json:"experienceLevel" validate:"omitempty,oneof=ENTRY_LEVEL ASSOCIATE MID_SENIOR DIRECTOR EXECUTIVE"`
	Limit           *int   `json:"limit"`
}

type jobArgs struct {
	JobID string `json:"jobId" validate:"required"`
}

type conversationArgs struct {
	ConversationID string `json:"conversationId" validate:"required"`
}

type sendMessageArgs struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Text        string `json:"text" validate:"required"`
}

func definitions(deps Dependencies) []Tool {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	companyID := func(id string) string {
		if strings.TrimSpace(id) == "" {
			return deps.DefaultCompanyID
		}
		return id
	}

	companyIDSchema := stringSchema("LinkedIn organization id")
	if deps.DefaultCompanyID != "" {
		companyIDSchema = stringSchema("LinkedIn organization id, defaults to the configured company")
	}
	// Without a configured default the id must be supplied.
	withCompany := func(b schemaBuilder) schemaBuilder {
		if deps.DefaultCompanyID != "" {
			return b.prop("companyId", companyIDSchema)
		}
		return b.requiredProp("companyId", companyIDSchema)
	}

	return []Tool{
		define(Prefix+"get_profile",
			"Get the authenticated user's LinkedIn profile",
			object(),
			func(ctx context.Context, _ noArgs) (any, error) {
				return deps.Profiles.Get(ctx)
			}),

		define(Prefix+"create_post",
			"Create a LinkedIn post as the authenticated user",
			object().
				requiredProp("text", textSchema("Post content, up to 3000 characters")).
				prop("visibility", visibilitySchema()),
			func(ctx context.Context, args createPostArgs) (any, error) {
				return deps.Posts.Create(ctx, domain.CreatePostInput{Text: args.Text, Visibility: args.Visibility})
			}),

		define(Prefix+"get_my_posts",
			"List the authenticated user's recent LinkedIn posts",
			object().prop("limit", limitSchema("Maximum number of posts to return")),
			func(ctx context.Context, args listArgs) (any, error) {
				return deps.Posts.List(ctx, limitOrDefault(args.Limit, usecase.DefaultLimit))
			}),

		define(Prefix+"get_post",
			"Get a single LinkedIn post by id",
			object().requiredProp("postId", stringSchema("Post id or URN")),
			func(ctx context.Context, args postArgs) (any, error) {
				return deps.Posts.Get(ctx, args.PostID)
			}),

		define(Prefix+"delete_post",
			"Delete a LinkedIn post",
			object().requiredProp("postId", stringSchema("Post id or URN")),
			func(ctx context.Context, args postArgs) (any, error) {
				return deps.Posts.Delete(ctx, args.PostID)
			}),

		define(Prefix+"get_company_page",
			"Get a LinkedIn company page",
			withCompany(object()),
			func(ctx context.Context, args companyArgs) (any, error) {
				return deps.Companies.GetPage(ctx, companyID(args.CompanyID))
			}),

		define(Prefix+"create_company_post",
			"Create a post on behalf of a LinkedIn company page",
			withCompany(object()).
				requiredProp("text", textSchema("Post content, up to 3000 characters")).
				prop("visibility", visibilitySchema()),
			func(ctx context.Context, args createCompanyPostArgs) (any, error) {
				return deps.Companies.CreatePost(ctx, domain.CreateCompanyPostInput{
					CompanyID:  companyID(args.CompanyID),
					Text:       args.Text,
					Visibility: args.Visibility,
				})
			}),

		define(Prefix+"get_company_posts",
			"List recent posts of a LinkedIn company page",
			withCompany(object()).prop("limit", limitSchema("Maximum number of posts to return")),
			func(ctx context.Context, args companyPostsArgs) (any, error) {
				return deps.Companies.ListPosts(ctx, companyID(args.CompanyID), limitOrDefault(args.Limit, usecase.DefaultLimit))
			}),

		define(Prefix+"get_admin_companies",
			"List the company pages the authenticated user administers",
			object(),
			func(ctx context.Context, _ noArgs) (any, error) {
				return deps.Companies.Administered(ctx)
			}),

		define(Prefix+"get_company_analytics",
			"Get post analytics for a company page (requires Marketing Developer Platform access)",
			withCompany(object()),
			func(ctx context.Context, args companyArgs) (any, error) {
				return deps.Companies.Analytics(ctx, companyID(args.CompanyID))
			}),

		define(Prefix+"search_jobs",
			"Search LinkedIn job postings (requires Talent Solutions partner access)",
			object().
				prop("keywords", stringSchema("Search keywords")).
				prop("location", stringSchema("Job location")).
				prop("jobType", enumSchema("Employment type",
					domain.JobTypeFullTime, domain.JobTypePartTime, domain.JobTypeContract,
					domain.JobTypeTemporary, domain.JobTypeInternship)).
				prop("experienceLevel", enumSchema("Seniority",
					domain.ExperienceEntryLevel, domain.ExperienceAssociate, domain.ExperienceMidSenior,
					domain.ExperienceDirector, domain.ExperienceExecutive)).
				prop("limit", limitSchema("Maximum number of jobs to return")),
			func(ctx context.Context, args searchJobsArgs) (any, error) {
				return deps.Jobs.Search(ctx, domain.SearchJobsCriteria{
					Keywords:        args.Keywords,
					Location:        args.Location,
					JobType:         args.JobType,
					ExperienceLevel: args.ExperienceLevel,
					Limit:           limitOrDefault(args.Limit, usecase.DefaultLimit),
				})
			}),

		define(Prefix+"get_job",
			"Get a LinkedIn job posting (requires Talent Solutions partner access)",
			object().requiredProp("jobId", stringSchema("Job posting id")),
			func(ctx context.Context, args jobArgs) (any, error) {
				return deps.Jobs.Get(ctx, args.JobID)
			}),

		define(Prefix+"get_conversations",
			"List messaging conversations (requires messaging partner access)",
			object().prop("limit", limitSchema("Maximum number of conversations to return")),
			func(ctx context.Context, args listArgs) (any, error) {
				return deps.Messaging.Conversations(ctx, limitOrDefault(args.Limit, usecase.DefaultLimit))
			}),

		define(Prefix+"get_conversation_messages",
			"List messages of a conversation (requires messaging partner access)",
			object().requiredProp("conversationId", stringSchema("Conversation id")),
			func(ctx context.Context, args conversationArgs) (any, error) {
				return deps.Messaging.Messages(ctx, args.ConversationID)
			}),

		define(Prefix+"send_message",
			"Send a LinkedIn message (requires messaging partner access)",
			object().
				requiredProp("recipientId", stringSchema("Recipient member id")).
				requiredProp("text", textSchema("Message text")),
			func(ctx context.Context, args sendMessageArgs) (any, error) {
				return deps.Messaging.Send(ctx, domain.SendMessageInput{RecipientID: args.RecipientID, Text: args.Text})
			}),

		define(Prefix+"auth_status",
			"Report whether a valid LinkedIn token is stored",
			object(),
			func(ctx context.Context, _ noArgs) (any, error) {
				return CheckAuth(ctx, deps.Tokens, now())
			}),
	}
}

// CheckAuth inspects the stored token without refreshing it.
func CheckAuth(ctx context.Context, tokens TokenReader, now time.Time) (*AuthStatus, error) {
	token, err := tokens.CurrentToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return &AuthStatus{Message: "not authenticated, run the auth command"}, nil
	}

	expiresAt := token.Expiry()
	status := &AuthStatus{
		Authenticated:   token.Valid(now),
		ExpiresAt:       &expiresAt,
		HasRefreshToken: token.RefreshToken != "",
		Scope:           token.Scope,
	}
	switch {
	case status.Authenticated:
		status.Message = "authenticated"
	case status.HasRefreshToken:
		status.Message = "token expired, it will be refreshed on the next call"
	default:
		status.Message = "token expired, run the auth command"
	}
	return status, nil
}
