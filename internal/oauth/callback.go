package oauth

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
	"github.com/florianilch/linkedin-mcp/internal/httpserver"
	"github.com/florianilch/linkedin-mcp/internal/tokenstore"
)

// DefaultCallbackTimeout bounds how long the listener waits for the operator.
const DefaultCallbackTimeout = 5 * time.Minute

// CodeExchanger trades an authorization code for a stored token.
type CodeExchanger interface {
	ExchangeCodeForToken(ctx context.Context, code string) (*tokenstore.Token, error)
}

// CallbackOption configures a CallbackListener.
type CallbackOption func(*CallbackListener)

// WithTimeout overrides DefaultCallbackTimeout.
func WithTimeout(d time.Duration) CallbackOption {
	return func(l *CallbackListener) {
		l.timeout = d
	}
}

// WithOutput sets where operator instructions are printed (default stderr).
func WithOutput(w io.Writer) CallbackOption {
	return func(l *CallbackListener) {
		l.out = w
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) CallbackOption {
	return func(l *CallbackListener) {
		l.logger = logger
	}
}

// CallbackListener is a one-shot HTTP listener serving the OAuth redirect URI.
// The first request to the callback path is accepted; later ones are rejected.
type CallbackListener struct {
	exchanger CodeExchanger
	authURL   string
	path      string
	timeout   time.Duration
	out       io.Writer
	logger    *slog.Logger

	server *httpserver.Server
	errCh  <-chan error

	accept sync.Once
	result chan callbackResult
}

type callbackResult struct {
	token *tokenstore.Token
	err   error
}

// NewCallbackListener creates a listener for the path of redirectURL that
// directs the operator to authURL.
func NewCallbackListener(exchanger CodeExchanger, redirectURL, authURL string, opts ...CallbackOption) (*CallbackListener, error) {
	if exchanger == nil {
		return nil, fmt.Errorf("missing code exchanger")
	}
	if authURL == "" {
		return nil, fmt.Errorf("missing authorization url")
	}

	redirect, err := url.Parse(redirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect url: %w", err)
	}
	path := redirect.Path
	if path == "" {
		path = "/"
	}

	l := &CallbackListener{
		exchanger: exchanger,
		authURL:   authURL,
		path:      path,
		timeout:   DefaultCallbackTimeout,
		out:       os.Stderr,
		logger:    slog.Default(),
		result:    make(chan callbackResult, 1),
	}
	for _, opt := range opts {
		opt(l)
	}

	mux := http.NewServeMux()
	if path == "/" {
		mux.HandleFunc("GET /{$}", l.handleCallback)
	} else {
		mux.HandleFunc("GET "+path, l.handleCallback)
		mux.Handle("GET /{$}", http.RedirectHandler(authURL, http.StatusFound))
	}

	l.server = httpserver.New(httpserver.Apply(mux,
		httpserver.Logging(l.logger),
		httpserver.Recovery,
	), httpserver.WithWriteTimeout(time.Minute))

	return l, nil
}

// Start binds address and prints the authorization URL for the operator.
func (l *CallbackListener) Start(ctx context.Context, address string) error {
	errCh, err := l.server.Start(ctx, address)
	if err != nil {
		return err
	}
	l.errCh = errCh

	_, _ = fmt.Fprintf(l.out, "\nOAuth callback listener started on %s\n", l.server.Addr())
	_, _ = fmt.Fprintf(l.out, "\nOpen this URL in your browser to authenticate:\n\n%s\n\n", l.authURL)
	_, _ = fmt.Fprintf(l.out, "Waiting for authentication (timeout %s)...\n", l.timeout)
	return nil
}

// Addr returns the bound listener address.
func (l *CallbackListener) Addr() net.Addr {
	return l.server.Addr()
}

// Wait blocks until the callback completes, the timeout elapses or ctx ends,
// whichever comes first, and always shuts the listener down.
func (l *CallbackListener) Wait(ctx context.Context) (*tokenstore.Token, error) {
	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.server.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(ctx, "callback listener shutdown failed", "error", err)
		}
	}()

	errCh := l.errCh
	for {
		select {
		case res := <-l.result:
			return res.token, res.err
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			return nil, fmt.Errorf("callback listener: %w", err)
		case <-timer.C:
			return nil, apperrors.Auth("authentication timeout", nil)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Run starts the listener on address and waits for the callback.
func (l *CallbackListener) Run(ctx context.Context, address string) (*tokenstore.Token, error) {
	if err := l.Start(ctx, address); err != nil {
		return nil, err
	}
	return l.Wait(ctx)
}

func (l *CallbackListener) handleCallback(w http.ResponseWriter, r *http.Request) {
	// A callback served on the root also answers plain visits with the authorization redirect.
	query := r.URL.Query()
	if l.path == "/" && !query.Has("code") && !query.Has("error") {
		http.Redirect(w, r, l.authURL, http.StatusFound)
		return
	}

	first := false
	l.accept.Do(func() { first = true })
	if !first {
		http.Error(w, "authorization already handled", http.StatusConflict)
		return
	}

	res := l.complete(r)
	if res.err != nil {
		renderPage(w, http.StatusBadRequest, "Authentication failed: "+res.err.Error())
	} else {
		renderPage(w, http.StatusOK, "Authentication successful! You can close this window.")
	}

	l.result <- res
}

func (l *CallbackListener) complete(r *http.Request) callbackResult {
	query := r.URL.Query()

	if oauthErr := query.Get("error"); oauthErr != "" {
		if desc := query.Get("error_description"); desc != "" {
			oauthErr += " (" + desc + ")"
		}
		return callbackResult{err: apperrors.Auth("OAuth error: "+oauthErr, nil)}
	}

	code := query.Get("code")
	if code == "" {
		return callbackResult{err: apperrors.Auth("no authorization code received", nil)}
	}

	// The exchange outlives a browser that disconnects early.
	token, err := l.exchanger.ExchangeCodeForToken(context.WithoutCancel(r.Context()), code)
	return callbackResult{token: token, err: err}
}

var pageTemplate = template.Must(template.New("page").Parse(
	`<!DOCTYPE html><html><head><title>LinkedIn MCP</title></head><body><h1>{{.}}</h1></body></html>`,
))

func renderPage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pageTemplate.Execute(w, message)
}
