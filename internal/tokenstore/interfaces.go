package tokenstore

import (
	"context"
	"time"
)

// TokenStore persists the single OAuth token record of the process.
//
// Backends must distinguish "no token stored" from failure: Load returns
// (nil, nil) when nothing is stored, while unreadable or corrupt content is an
// apperrors.KindStorage error.
type TokenStore interface {
	// Save persists token, replacing any previous record.
	Save(ctx context.Context, token *Token) error

	// Load returns the stored token, or nil if none exists.
	Load(ctx context.Context) (*Token, error)

	// Delete removes the stored token. Deleting a missing token succeeds.
	Delete(ctx context.Context) error

	// IsValid reports whether a token exists and is unexpired.
	IsValid(ctx context.Context) (bool, error)
}

// Option configures a TokenStore backend.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used by IsValid.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// isValid loads the token through load and checks it against now.
func isValid(ctx context.Context, load func(context.Context) (*Token, error), now func() time.Time) (bool, error) {
	token, err := load(ctx)
	if err != nil {
		return false, err
	}
	return token.Valid(now()), nil
}
