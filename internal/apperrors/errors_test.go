package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("loading: %w", apperrors.Auth("not authenticated", nil))

	assert.ErrorIs(t, err, apperrors.ErrAuth)
	assert.NotErrorIs(t, err, apperrors.ErrStorage)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}

func TestErrorIsMatchesOp(t *testing.T) {
	err := apperrors.OperationFailed("create_post", "failed to create LinkedIn post")

	assert.ErrorIs(t, err, apperrors.ErrOperationFailed)
	assert.ErrorIs(t, err, &apperrors.Error{Kind: apperrors.KindOperationFailed, Op: "create_post"})
	assert.NotErrorIs(t, err, &apperrors.Error{Kind: apperrors.KindOperationFailed, Op: "delete_post"})
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"message only", apperrors.Validation("limit must be between 1 and 100"), "limit must be between 1 and 100"},
		{"wrapped cause", apperrors.Storage("token loading error", errors.New("permission denied")), "token loading error: permission denied"},
		{"kind fallback", &apperrors.Error{Kind: apperrors.KindConfig}, "config"},
		{"unknown tool", apperrors.UnknownOperation("nope"), "unknown tool: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, apperrors.Kind(""), apperrors.KindOf(errors.New("plain")))
}
