package linkedin

import (
	"context"
	"net/http"

	"github.com/florianilch/linkedin-mcp/internal/domain"
)

// GetProfile returns the authenticated member's profile from the OpenID
// Connect userinfo endpoint.
func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var info userInfo
	if _, err := c.do(ctx, request{op: OpGetProfile, method: http.MethodGet, path: "/userinfo"}, &info); err != nil {
		return nil, err
	}

	return &domain.Profile{
		ID:                info.Sub,
		FirstName:         info.GivenName,
		LastName:          info.FamilyName,
		Email:             info.Email,
		ProfilePictureURL: info.Picture,
	}, nil
}
