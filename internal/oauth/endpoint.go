package oauth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

// Endpoint defines the OAuth2 endpoints for LinkedIn authentication.
// LinkedIn expects client credentials in the form body rather than Basic auth.
var Endpoint = oauth2.Endpoint{
	AuthURL:   linkedin.Endpoint.AuthURL,
	TokenURL:  linkedin.Endpoint.TokenURL,
	AuthStyle: oauth2.AuthStyleInParams,
}

// DefaultScopes defines the OAuth scopes requested from LinkedIn.
// Also reported as the granted scope when the token response omits one.
var DefaultScopes = []string{"openid", "profile", "email", "w_member_social"}
