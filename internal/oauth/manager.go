package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
	"github.com/florianilch/linkedin-mcp/internal/tokenstore"
)

// Credentials identify the LinkedIn application.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Scopes defaults to DefaultScopes when empty.
	Scopes []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithEndpoint overrides the LinkedIn OAuth endpoints.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(m *Manager) {
		m.config.Endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for token endpoint requests.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		m.httpClient = client
	}
}

// WithClock overrides the time source for expiry computation.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithStateGenerator overrides the generator of the anti-replay state parameter.
func WithStateGenerator(newState func() string) Option {
	return func(m *Manager) {
		m.newState = newState
	}
}

// Manager drives the OAuth token lifecycle against a TokenStore.
type Manager struct {
	config     *oauth2.Config
	store      tokenstore.TokenStore
	httpClient *http.Client
	now        func() time.Time
	newState   func() string

	refreshGroup singleflight.Group
}

// Compile-time check to ensure Manager implements oauth2.TokenSource
var _ oauth2.TokenSource = (*Manager)(nil)

// NewManager creates a Manager. No I/O is performed until a token is requested.
func NewManager(creds Credentials, store tokenstore.TokenStore, opts ...Option) (*Manager, error) {
	if creds.ClientID == "" {
		return nil, fmt.Errorf("missing client id")
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("missing client secret")
	}
	if creds.RedirectURL == "" {
		return nil, fmt.Errorf("missing redirect url")
	}
	if store == nil {
		return nil, fmt.Errorf("missing token store")
	}

	scopes := creds.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	m := &Manager{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.RedirectURL,
			Scopes:       slices.Clone(scopes),
			Endpoint:     Endpoint,
		},
		store: store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // Bounds token requests; oauth2 may run them on a background context
		},
		now:      time.Now,
		newState: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// AuthorizationURL returns the URL the operator visits to grant access.
// Each call embeds a fresh random state value. The state is not persisted or
// verified on callback.
func (m *Manager) AuthorizationURL() string {
	return m.config.AuthCodeURL(m.newState())
}

// ExchangeCodeForToken trades an authorization code for a token and stores it.
// Nothing is persisted when the token endpoint rejects the code.
func (m *Manager) ExchangeCodeForToken(ctx context.Context, code string) (*tokenstore.Token, error) {
	if code == "" {
		return nil, apperrors.Auth("no authorization code received", nil)
	}

	oauthToken, err := m.config.Exchange(m.clientContext(ctx), code)
	if err != nil {
		slog.ErrorContext(ctx, "token exchange failed", "error", err)
		return nil, apperrors.Auth("failed to exchange authorization code for token", err)
	}

	token, err := m.toRecord(oauthToken, "")
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, token); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "token acquired", "expires_at", token.Expiry(), "scope", token.Scope)
	return token, nil
}

// RefreshToken obtains a new token with refreshToken and stores it.
// The previous refresh token is kept when the response omits a new one.
func (m *Manager) RefreshToken(ctx context.Context, refreshToken string) (*tokenstore.Token, error) {
	if refreshToken == "" {
		return nil, apperrors.Auth("reauthentication required: no refresh token available", nil)
	}

	// An empty access token forces the refresher to hit the token endpoint.
	source := m.config.TokenSource(m.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	oauthToken, err := source.Token()
	if err != nil {
		slog.ErrorContext(ctx, "token refresh failed", "error", err)
		return nil, apperrors.Auth("failed to refresh access token", err)
	}

	token, err := m.toRecord(oauthToken, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, token); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "token refreshed", "expires_at", token.Expiry())
	return token, nil
}

// ValidAccessToken returns an unexpired access token, refreshing the stored
// token if it has expired and carries a refresh token.
func (m *Manager) ValidAccessToken(ctx context.Context) (string, error) {
	token, err := m.validToken(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func (m *Manager) validToken(ctx context.Context) (*tokenstore.Token, error) {
	token, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, apperrors.Auth("not authenticated: no token found, run the auth command first", nil)
	}

	if token.Valid(m.now()) {
		return token, nil
	}

	if token.RefreshToken == "" {
		return nil, apperrors.Auth("reauthentication required: token expired and no refresh token available", nil)
	}

	// Callers observing the same expired token share one refresh request.
	// The shared call must not be canceled by whichever caller started it.
	refreshCtx := context.WithoutCancel(ctx)
	result, err, shared := m.refreshGroup.Do(token.RefreshToken, func() (any, error) {
		// A refresh may have completed between our load and joining the group.
		if current, err := m.store.Load(refreshCtx); err == nil && current.Valid(m.now()) {
			return current, nil
		}

		slog.InfoContext(refreshCtx, "access token expired, refreshing")
		return m.RefreshToken(refreshCtx, token.RefreshToken)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.DebugContext(ctx, "joined in-flight token refresh")
	}

	return result.(*tokenstore.Token), nil
}

// IsAuthenticated reports whether a stored token exists and is unexpired.
func (m *Manager) IsAuthenticated(ctx context.Context) (bool, error) {
	return m.store.IsValid(ctx)
}

// CurrentToken returns the stored token without refreshing it, or nil.
func (m *Manager) CurrentToken(ctx context.Context) (*tokenstore.Token, error) {
	return m.store.Load(ctx)
}

// Logout deletes the stored token.
func (m *Manager) Logout(ctx context.Context) error {
	return m.store.Delete(ctx)
}

// Token implements oauth2.TokenSource.
func (m *Manager) Token() (*oauth2.Token, error) {
	// oauth2.TokenSource.Token() has no context parameter (legacy interface limitation)
	token, err := m.validToken(context.Background())
	if err != nil {
		return nil, err
	}
	return token.OAuth2(), nil
}

// clientContext injects the configured HTTP client per oauth2's documented API.
func (m *Manager) clientContext(ctx context.Context) context.Context {
	if m.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
}

// toRecord converts a token endpoint response into the persisted record.
func (m *Manager) toRecord(oauthToken *oauth2.Token, fallbackRefreshToken string) (*tokenstore.Token, error) {
	var expiresAt int64
	if seconds, ok := expiresIn(oauthToken); ok {
		expiresAt = m.now().UnixMilli() + seconds*1000
	} else if !oauthToken.Expiry.IsZero() {
		expiresAt = oauthToken.Expiry.UnixMilli()
	} else {
		return nil, apperrors.Auth("token response missing expires_in", nil)
	}

	refreshToken := oauthToken.RefreshToken
	if refreshToken == "" {
		refreshToken = fallbackRefreshToken
	}

	scope := parseScope(oauthToken.Extra("scope"))
	if len(scope) == 0 {
		scope = slices.Clone(m.config.Scopes)
	}

	return &tokenstore.Token{
		AccessToken:  oauthToken.AccessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		Scope:        scope,
	}, nil
}

// expiresIn extracts the relative lifetime in seconds from a token response.
// JSON responses surface numbers as float64, form-encoded ones as strings.
func expiresIn(t *oauth2.Token) (int64, bool) {
	if t.ExpiresIn > 0 {
		return t.ExpiresIn, true
	}

	switch v := t.Extra("expires_in").(type) {
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// parseScope splits a granted scope string. LinkedIn has used both space and
// comma separators.
func parseScope(raw any) []string {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})
}
