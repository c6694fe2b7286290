// Package domain holds the LinkedIn shapes returned by the API client and
// surfaced through the tool registry.
package domain

import "time"

// Visibility controls who can see a post.
type Visibility string

const (
	VisibilityPublic      Visibility = "PUBLIC"
	VisibilityConnections Visibility = "CONNECTIONS"
	VisibilityLoggedIn    Visibility = "LOGGED_IN"
)

// DefaultVisibility applies when a post is created without an explicit visibility.
const DefaultVisibility = VisibilityPublic

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityConnections, VisibilityLoggedIn:
		return true
	}
	return false
}

// OrDefault returns v, or DefaultVisibility if v is empty.
func (v Visibility) OrDefault() Visibility {
	if v == "" {
		return DefaultVisibility
	}
	return v
}

// Profile is the authenticated member's identity.
type Profile struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

// PersonURN returns the member's author identifier.
func (p *Profile) PersonURN() string {
	return PersonURN(p.ID)
}

// Post is a UGC post authored by a member or an organization.
type Post struct {
	ID           string     `json:"id"`
	Author       string     `json:"author"`
	Text         string     `json:"text"`
	CreatedAt    time.Time  `json:"createdAt"`
	LikeCount    int        `json:"likeCount"`
	CommentCount int        `json:"commentCount"`
	ShareCount   int        `json:"shareCount"`
	Visibility   Visibility `json:"visibility"`
}

// CompanyPost is a Post authored by an organization.
type CompanyPost struct {
	Post
	CompanyID string `json:"companyId"`
}

// CompanyPage describes an organization.
type CompanyPage struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Industry      string `json:"industry,omitempty"`
	WebsiteURL    string `json:"websiteUrl,omitempty"`
	LogoURL       string `json:"logoUrl,omitempty"`
	FollowerCount *int   `json:"followerCount,omitempty"`
}

// AdministeredCompany is an organization the member holds the administrator role on.
type AdministeredCompany struct {
	CompanyID  string `json:"companyId"`
	URN        string `json:"urn"`
	Name       string `json:"name,omitempty"`
	VanityName string `json:"vanityName,omitempty"`
}

// CreatePostInput carries the fields of a new personal post.
type CreatePostInput struct {
	Text       string
	Visibility Visibility
}

// CreateCompanyPostInput carries the fields of a new organization post.
type CreateCompanyPostInput struct {
	CompanyID  string
	Text       string
	Visibility Visibility
}

// DeleteResult acknowledges a deleted post.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
