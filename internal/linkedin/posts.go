package linkedin

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/florianilch/linkedin-mcp/internal/domain"
)

// CreatePost publishes a post authored by the authenticated member.
// The member id is resolved first to build the author URN.
func (c *Client) CreatePost(ctx context.Context, in domain.CreatePostInput) (*domain.Post, error) {
	profile, err := c.GetProfile(ctx)
	if err != nil {
		return nil, asOperation(OpCreatePost, err)
	}

	return c.publish(ctx, OpCreatePost, profile.PersonURN(), in.Text, in.Visibility.OrDefault())
}

// GetMyPosts lists up to limit posts authored by the authenticated member.
func (c *Client) GetMyPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	profile, err := c.GetProfile(ctx)
	if err != nil {
		return nil, asOperation(OpGetMyPosts, err)
	}

	return c.listByAuthor(ctx, OpGetMyPosts, profile.PersonURN(), limit)
}

// GetPost fetches a single post by id or URN.
func (c *Client) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	var raw ugcPost
	req := request{op: OpGetPost, method: http.MethodGet, path: "/ugcPosts/" + escapeID(postID)}
	if _, err := c.do(ctx, req, &raw); err != nil {
		return nil, err
	}

	post := c.mapPost(raw)
	if post.ID == "" {
		post.ID = postID
	}
	return &post, nil
}

// DeletePost removes a post by id or URN.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	req := request{op: OpDeletePost, method: http.MethodDelete, path: "/ugcPosts/" + escapeID(postID)}
	_, err := c.do(ctx, req, nil)
	return err
}

// publish creates a UGC post for author and maps the acknowledgement into a
// Post. Counters start at zero and the creation time is stamped locally.
func (c *Client) publish(ctx context.Context, op, author, text string, visibility domain.Visibility) (*domain.Post, error) {
	payload := ugcPost{
		Author:         author,
		LifecycleState: lifecyclePublished,
		SpecificContent: specificContent{
			ShareContent: shareContent{
				ShareCommentary:    shareCommentary{Text: text},
				ShareMediaCategory: shareMediaCategoryNone,
			},
		},
		Visibility: ugcVisibility{MemberNetworkVisibility: string(visibility)},
	}

	var created createdEntity
	header, err := c.do(ctx, request{op: op, method: http.MethodPost, path: "/ugcPosts", body: payload}, &created)
	if err != nil {
		return nil, err
	}

	id := created.ID
	if id == "" {
		// The Rest.li create response may carry the id only in a header.
		id = header.Get("X-Restli-Id")
	}

	return &domain.Post{
		ID:         id,
		Author:     author,
		Text:       text,
		CreatedAt:  c.now().UTC(),
		Visibility: visibility,
	}, nil
}

// listByAuthor performs a single authors finder query.
func (c *Client) listByAuthor(ctx context.Context, op, author string, limit int) ([]domain.Post, error) {
	// Rest.li 2.0 List() syntax must not have its parentheses escaped.
	query := "q=authors&authors=List(" + url.QueryEscape(author) + ")&count=" + strconv.Itoa(limit)

	var list ugcPostList
	if _, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/ugcPosts", query: query}, &list); err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(list.Elements))
	for _, raw := range list.Elements {
		posts = append(posts, c.mapPost(raw))
	}
	return posts, nil
}

func (c *Client) mapPost(raw ugcPost) domain.Post {
	post := domain.Post{
		ID:         raw.ID,
		Author:     raw.Author,
		Text:       raw.SpecificContent.ShareContent.ShareCommentary.Text,
		Visibility: domain.Visibility(raw.Visibility.MemberNetworkVisibility).OrDefault(),
	}

	if raw.Created != nil && raw.Created.Time > 0 {
		post.CreatedAt = time.UnixMilli(raw.Created.Time).UTC()
	} else {
		post.CreatedAt = c.now().UTC()
	}

	if raw.Statistics != nil {
		post.LikeCount = raw.Statistics.NumLikes
		post.CommentCount = raw.Statistics.NumComments
		post.ShareCount = raw.Statistics.NumShares
	}

	return post
}

// escapeID escapes a post id or URN for use as a path segment. Colons are
// escaped too, as Rest.li requires for URN keys.
func escapeID(id string) string {
	return strings.ReplaceAll(url.PathEscape(id), ":", "%3A")
}
