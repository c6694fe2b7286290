package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
)

// FileStore provides atomic file-based token storage with secure permissions.
// Writes use temp file + rename for crash safety.
type FileStore struct {
	filePath string
	now      func() time.Time
}

// Compile-time check to ensure FileStore implements TokenStore
var _ TokenStore = (*FileStore)(nil)

// NewFileStore creates a FileStore for the given path, creating parent directories
// with 0700 permissions if they don't exist.
func NewFileStore(filePath string, opts ...Option) (*FileStore, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, apperrors.Storage("creating token directory", err)
	}

	o := newOptions(opts)
	return &FileStore{
		filePath: filePath,
		now:      o.now,
	}, nil
}

// Path returns the token file location.
func (f *FileStore) Path() string {
	return f.filePath
}

// Load returns the stored token, or nil if the file doesn't exist.
// A file readable by others is reset to 0600. Unparseable content is a
// storage error.
func (f *FileStore) Load(ctx context.Context) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Check file permissions before reading
	info, err := os.Stat(f.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("token loading error", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		slog.WarnContext(ctx, "tightening token file permissions", "path", f.filePath, "mode", fmt.Sprintf("%04o", perm))
		if err := os.Chmod(f.filePath, 0600); err != nil {
			slog.WarnContext(ctx, "failed to tighten token file permissions", "path", f.filePath, "error", err)
		}
	}

	data, err := os.ReadFile(f.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		// Removed between Stat and ReadFile
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("token loading error", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, apperrors.Storage("token loading error", fmt.Errorf("parsing %s: %w", f.filePath, err))
	}
	return &token, nil
}

// Save atomically writes the token using temp file + rename for crash safety.
// Sets file permissions to 0600 (owner read/write only).
func (f *FileStore) Save(ctx context.Context, token *Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == nil {
		return apperrors.Storage("token storage error", errors.New("nil token"))
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return apperrors.Storage("token storage error", err)
	}

	if err := f.writeAtomic(ctx, data); err != nil {
		return apperrors.Storage("token storage error", err)
	}
	return nil
}

func (f *FileStore) writeAtomic(ctx context.Context, data []byte) error {
	// Create secure temp file in same directory for atomic rename
	dir := filepath.Dir(f.filePath)
	tempFile, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return err
	}
	tempName := tempFile.Name()
	// Cleanup deferred for all exit paths
	defer func() { _ = os.Remove(tempName) }()
	defer func() { _ = tempFile.Close() }()

	if _, err := tempFile.Write(data); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}

	if err := os.Rename(tempName, f.filePath); err != nil {
		return err
	}

	return os.Chmod(f.filePath, 0600)
}

// Delete removes the token file. A missing file is not an error.
func (f *FileStore) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(f.filePath)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return apperrors.Storage("token deletion error", err)
}

// IsValid reports whether a stored token exists and has not expired.
func (f *FileStore) IsValid(ctx context.Context) (bool, error) {
	return isValid(ctx, f.Load, f.now)
}
