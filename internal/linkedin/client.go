// Package linkedin is a client for the subset of the LinkedIn v2 REST API the
// tools expose. Every request carries a bearer token obtained from an
// oauth2.TokenSource, so an expired token is refreshed transparently before
// the call goes out.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
)

// DefaultBaseURL is the LinkedIn v2 REST API root.
const DefaultBaseURL = "https://api.linkedin.com/v2"

// maxErrorBody bounds how much of an upstream error response is logged.
const maxErrorBody = 4 << 10

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. to point at a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTransport sets the round tripper beneath the bearer and Rest.li layers.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.base = rt
	}
}

// WithTimeout bounds each request including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithClock overrides the time source used for locally stamped creation times.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client calls the LinkedIn REST API on behalf of the authenticated member.
type Client struct {
	baseURL   string
	base      http.RoundTripper
	timeout   time.Duration
	userAgent string
	now       func() time.Time

	httpClient *http.Client
}

// New creates a Client that authenticates every request with tokens from ts.
func New(ts oauth2.TokenSource, opts ...Option) (*Client, error) {
	if ts == nil {
		return nil, fmt.Errorf("missing token source")
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: 30 * time.Second,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Bearer injection wraps the Rest.li layer so the Authorization header
	// survives header filtering.
	c.httpClient = &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Source: ts,
			Base: &RestliTransport{
				Base:      c.base,
				UserAgent: c.userAgent,
			},
		},
	}

	return c, nil
}

// request describes a single API call.
type request struct {
	op     string
	method string
	// path is appended to the base URL and must already be escaped.
	path  string
	query string
	body  any
}

// do performs req and decodes a successful JSON response into out when out is
// non-nil. Auth and storage failures of the token source are returned as is;
// every other failure is logged and reported as OperationFailed.
func (c *Client) do(ctx context.Context, req request, out any) (http.Header, error) {
	target := c.baseURL + req.path
	if req.query != "" {
		target += "?" + req.query
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s request: %w", req.op, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", req.op, err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportFailure(ctx, req.op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		slog.ErrorContext(ctx, "linkedin api request failed",
			"op", req.op,
			"method", req.method,
			"path", req.path,
			"status", resp.StatusCode,
			"body", string(excerpt),
		)
		return nil, operationFailed(req.op)
	}

	if out != nil {
		// Create and delete acknowledgements may have an empty body.
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			slog.ErrorContext(ctx, "linkedin api response malformed", "op", req.op, "error", err)
			return nil, operationFailed(req.op)
		}
	}

	return resp.Header, nil
}

// transportFailure classifies an error returned by the HTTP client.
func (c *Client) transportFailure(ctx context.Context, op string, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && (appErr.Kind == apperrors.KindAuth || appErr.Kind == apperrors.KindStorage) {
		return appErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	slog.ErrorContext(ctx, "linkedin api request failed", "op", op, "error", err)
	return operationFailed(op)
}

// asOperation re-signals an OperationFailed from a prerequisite call as a
// failure of op. Other kinds pass through.
func asOperation(op string, err error) error {
	if errors.Is(err, apperrors.ErrOperationFailed) {
		return operationFailed(op)
	}
	return err
}
