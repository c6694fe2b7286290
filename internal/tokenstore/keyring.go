package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
)

// KeyringStore provides OS-native secure credential storage for tokens.
// Uses macOS Keychain, Windows Credential Manager, or Linux Secret Service.
// The record is stored as the same JSON document the FileStore writes.
type KeyringStore struct {
	service string
	user    string
	now     func() time.Time
}

// Compile-time check to ensure KeyringStore implements TokenStore
var _ TokenStore = (*KeyringStore)(nil)

// NewKeyringStore creates a KeyringStore for the OS-native credential storage
// using the given service and user identifiers.
func NewKeyringStore(service, user string, opts ...Option) (*KeyringStore, error) {
	if service == "" {
		return nil, fmt.Errorf("service cannot be empty")
	}
	if user == "" {
		return nil, fmt.Errorf("user cannot be empty")
	}

	o := newOptions(opts)
	return &KeyringStore{
		service: service,
		user:    user,
		now:     o.now,
	}, nil
}

// Load returns the token from the system keyring, or nil if no entry exists.
func (k *KeyringStore) Load(ctx context.Context) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	secret, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("token loading error", err)
	}

	var token Token
	if err := json.Unmarshal([]byte(secret), &token); err != nil {
		return nil, apperrors.Storage("token loading error",
			fmt.Errorf("parsing keyring entry for service %s, user %s: %w", k.service, k.user, err))
	}
	return &token, nil
}

// Save persists the token to the system keyring, overwriting any existing value.
func (k *KeyringStore) Save(ctx context.Context, token *Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == nil {
		return apperrors.Storage("token storage error", errors.New("nil token"))
	}

	data, err := json.Marshal(token)
	if err != nil {
		return apperrors.Storage("token storage error", err)
	}
	if err := keyring.Set(k.service, k.user, string(data)); err != nil {
		return apperrors.Storage("token storage error", err)
	}
	return nil
}

// Delete removes the keyring entry. A missing entry is not an error.
func (k *KeyringStore) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := keyring.Delete(k.service, k.user)
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return apperrors.Storage("token deletion error", err)
}

// IsValid reports whether a stored token exists and has not expired.
func (k *KeyringStore) IsValid(ctx context.Context) (bool, error) {
	return isValid(ctx, k.Load, k.now)
}
