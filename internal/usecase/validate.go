package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
	"github.com/florianilch/linkedin-mcp/internal/domain"
)

const (
	// MaxPostLength is the longest post text LinkedIn accepts, in characters.
	MaxPostLength = 3000

	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 10
)

// validateText requires 1 to MaxPostLength characters after trimming
// surrounding whitespace. The text itself is sent unmodified.
func validateText(text string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n == 0 {
		return apperrors.Validation("post text cannot be empty")
	}
	if n > MaxPostLength {
		return apperrors.Validation(fmt.Sprintf("post text cannot exceed %d characters", MaxPostLength))
	}
	return nil
}

func validateLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return apperrors.Validation(fmt.Sprintf("limit must be between %d and %d", MinLimit, MaxLimit))
	}
	return nil
}

func validateVisibility(v domain.Visibility) error {
	if v != "" && !v.Valid() {
		return apperrors.Validation(fmt.Sprintf("visibility must be one of %s, %s, %s",
			domain.VisibilityPublic, domain.VisibilityConnections, domain.VisibilityLoggedIn))
	}
	return nil
}

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validation(name + " is required")
	}
	return nil
}
