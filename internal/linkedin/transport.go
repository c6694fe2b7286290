package linkedin

import (
	"net/http"
)

// ProtocolVersion is the Rest.li protocol version the v2 API is called with.
const ProtocolVersion = "2.0.0"

// allowedHeaders defines the HTTP headers permitted to pass through to the LinkedIn API.
var allowedHeaders = map[string]bool{
	"Content-Type":    true,
	"Content-Length":  true,
	"Accept":          true,
	"Accept-Encoding": true,
	"Authorization":   true,

	// W3C Trace Context for distributed tracing correlation.
	"Traceparent": true,
	"Tracestate":  true,
}

// RestliTransport is an http.RoundTripper that prepares requests for
// LinkedIn's Rest.li based API.
type RestliTransport struct {
	Base      http.RoundTripper
	UserAgent string
}

// Compile-time check that RestliTransport implements http.RoundTripper.
var _ http.RoundTripper = (*RestliTransport)(nil)

// RoundTrip implements http.RoundTripper interface.
// Filters headers and sets the Rest.li protocol headers.
func (t *RestliTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// Clone request for modification
	newReq := req.Clone(req.Context())

	originalHeaders := newReq.Header
	newReq.Header = make(http.Header)
	for key, values := range originalHeaders {
		if allowedHeaders[key] {
			newReq.Header[key] = values
		}
	}

	newReq.Header.Set("X-Restli-Protocol-Version", ProtocolVersion)
	if newReq.Header.Get("Accept") == "" {
		newReq.Header.Set("Accept", "application/json")
	}
	if req.Body != nil && req.Body != http.NoBody && newReq.Header.Get("Content-Type") == "" {
		newReq.Header.Set("Content-Type", "application/json")
	}
	if t.UserAgent != "" {
		newReq.Header.Set("User-Agent", t.UserAgent)
	}

	return base.RoundTrip(newReq)
}
