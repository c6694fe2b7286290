package tokenstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
	"github.com/florianilch/linkedin-mcp/internal/tokenstore"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newFileStore(t *testing.T, opts ...tokenstore.Option) *tokenstore.FileStore {
	t.Helper()
	store, err := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "nested", "tokens.json"), opts...)
	require.NoError(t, err)
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	want := &tokenstore.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    1_700_000_000_000,
		Scope:        []string{"openid", "profile"},
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	require.NoError(t, store.Save(ctx, &tokenstore.Token{AccessToken: "first", RefreshToken: "r1", ExpiresAt: 1}))
	require.NoError(t, store.Save(ctx, &tokenstore.Token{AccessToken: "second", ExpiresAt: 2}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got.AccessToken)
	assert.Empty(t, got.RefreshToken)

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := newFileStore(t)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		perm    os.FileMode
	}{
		{"corrupt content", "{not json", 0600},
		{"empty file", "", 0600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFileStore(t)
			require.NoError(t, os.WriteFile(store.Path(), []byte(tt.content), tt.perm))
			require.NoError(t, os.Chmod(store.Path(), tt.perm))

			got, err := store.Load(context.Background())
			assert.Nil(t, got)
			assert.ErrorIs(t, err, apperrors.ErrStorage)
		})
	}
}

func TestFileStoreLoadTightensPermissions(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"accessToken":"a","expiresAt":1,"scope":["openid"]}`), 0644))
	require.NoError(t, os.Chmod(store.Path(), 0644))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &tokenstore.Token{AccessToken: "a", ExpiresAt: 1, Scope: []string{"openid"}}, got)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	// Missing file
	require.NoError(t, store.Delete(ctx))

	require.NoError(t, store.Save(ctx, &tokenstore.Token{AccessToken: "a", ExpiresAt: 1}))
	require.NoError(t, store.Delete(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreIsValid(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name      string
		expiresAt *int64
		want      bool
	}{
		{"no token", nil, false},
		{"expired", ptr(now.UnixMilli() - 1), false},
		{"expires exactly now", ptr(now.UnixMilli()), false},
		{"valid", ptr(now.UnixMilli() + 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newFileStore(t, tokenstore.WithClock(fixedClock(now)))
			if tt.expiresAt != nil {
				require.NoError(t, store.Save(ctx, &tokenstore.Token{AccessToken: "a", ExpiresAt: *tt.expiresAt}))
			}

			got, err := store.IsValid(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileStoreCanceledContext(t *testing.T) {
	store := newFileStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, &tokenstore.Token{}), context.Canceled)
	assert.ErrorIs(t, store.Delete(ctx), context.Canceled)
}

func TestNewFileStoreEmptyPath(t *testing.T) {
	_, err := tokenstore.NewFileStore("")
	assert.Error(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
