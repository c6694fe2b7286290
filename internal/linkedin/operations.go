package linkedin

import "github.com/florianilch/linkedin-mcp/internal/apperrors"

// Operation names carried by OperationFailed errors.
const (
	OpGetProfile              = "get_profile"
	OpCreatePost              = "create_post"
	OpGetMyPosts              = "get_my_posts"
	OpGetPost                 = "get_post"
	OpDeletePost              = "delete_post"
	OpGetCompanyPage          = "get_company_page"
	OpCreateCompanyPost       = "create_company_post"
	OpGetCompanyPosts         = "get_company_posts"
	OpGetAdminCompanies       = "get_admin_companies"
	OpGetCompanyAnalytics     = "get_company_analytics"
	OpSearchJobs              = "search_jobs"
	OpGetJob                  = "get_job"
	OpGetConversations        = "get_conversations"
	OpGetConversationMessages = "get_conversation_messages"
	OpSendMessage             = "send_message"
)

var failureMessages = map[string]string{
	OpGetProfile:        "failed to retrieve LinkedIn profile",
	OpCreatePost:        "failed to create LinkedIn post",
	OpGetMyPosts:        "failed to retrieve LinkedIn posts",
	OpGetPost:           "failed to retrieve LinkedIn post",
	OpDeletePost:        "failed to delete LinkedIn post",
	OpGetCompanyPage:    "failed to retrieve company page",
	OpCreateCompanyPost: "failed to create company post",
	OpGetCompanyPosts:   "failed to retrieve company posts",
	OpGetAdminCompanies: "failed to retrieve administered companies",
}

func operationFailed(op string) error {
	msg, ok := failureMessages[op]
	if !ok {
		msg = op + " failed"
	}
	return apperrors.OperationFailed(op, msg)
}
