package tokenstore

import (
	"time"

	"golang.org/x/oauth2"
)

// Token is the persisted OAuth credential record.
// ExpiresAt is an absolute Unix timestamp in milliseconds.
type Token struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	ExpiresAt    int64    `json:"expiresAt"`
	Scope        []string `json:"scope"`
}

// Valid reports whether the token is unexpired at now.
// A token expiring exactly at now is expired.
func (t *Token) Valid(now time.Time) bool {
	return t != nil && now.UnixMilli() < t.ExpiresAt
}

// Expiry returns ExpiresAt as a time.
func (t *Token) Expiry() time.Time {
	return time.UnixMilli(t.ExpiresAt)
}

// OAuth2 converts the record for use with golang.org/x/oauth2.
func (t *Token) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry(),
	}
}
