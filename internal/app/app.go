package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/florianilch/linkedin-mcp/internal/domain"
	"github.com/florianilch/linkedin-mcp/internal/httpserver"
	"github.com/florianilch/linkedin-mcp/internal/linkedin"
	"github.com/florianilch/linkedin-mcp/internal/mcpserver"
	"github.com/florianilch/linkedin-mcp/internal/oauth"
	"github.com/florianilch/linkedin-mcp/internal/tokenstore"
	"github.com/florianilch/linkedin-mcp/internal/tools"
	"github.com/florianilch/linkedin-mcp/internal/usecase"
)

// Name identifies the server to MCP clients.
const Name = "linkedin-mcp"

// App wires the token store, OAuth manager, LinkedIn client, use cases and
// tool registry together and runs the MCP server.
type App struct {
	cfg     *Config
	version string

	oauth    *oauth.Manager
	client   *linkedin.Client
	registry *tools.Registry
}

// New creates a new App instance. No I/O is performed beyond preparing the
// token store location.
func New(cfg *Config, version string) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := cfg.Auth.NewTokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to create token store: %w", err)
	}

	manager, err := oauth.NewManager(oauth.Credentials{
		ClientID:     cfg.LinkedIn.ClientID,
		ClientSecret: cfg.LinkedIn.ClientSecret,
		RedirectURL:  cfg.LinkedIn.RedirectURI,
		Scopes:       cfg.LinkedIn.Scopes,
	}, store)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth manager: %w", err)
	}

	// I/O deferred to the first API call
	client, err := linkedin.New(manager,
		linkedin.WithBaseURL(cfg.LinkedIn.APIBaseURL),
		linkedin.WithUserAgent(Name+"/"+version),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create linkedin client: %w", err)
	}

	registry := tools.NewRegistry(tools.Dependencies{
		Profiles:         usecase.NewProfiles(client),
		Posts:            usecase.NewPosts(client),
		Companies:        usecase.NewCompanies(client),
		Jobs:             usecase.NewJobs(client),
		Messaging:        usecase.NewMessaging(client),
		Tokens:           manager,
		DefaultCompanyID: cfg.LinkedIn.CompanyID,
	})

	return &App{
		cfg:      cfg,
		version:  version,
		oauth:    manager,
		client:   client,
		registry: registry,
	}, nil
}

// Registry returns the tool registry.
func (a *App) Registry() *tools.Registry {
	return a.registry
}

// Start serves MCP on the configured transport and blocks until ctx is done
// or the transport fails.
func (a *App) Start(ctx context.Context) error {
	server := mcpserver.New(a.registry, Name, a.version)

	if authenticated, err := a.oauth.IsAuthenticated(ctx); err != nil {
		slog.WarnContext(ctx, "token store unreadable", "error", err)
	} else if !authenticated {
		slog.WarnContext(ctx, "no valid token stored, tools will fail until the auth command is run",
			"storage", a.cfg.Auth.Location())
	}

	switch a.cfg.MCP.Transport {
	case TransportStdio:
		slog.InfoContext(ctx, "serving mcp over stdio")
		if err := server.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio transport: %w", err)
		}
		slog.Info("application stopped")
		return nil
	case TransportHTTP:
		return a.serveHTTP(ctx, server)
	default:
		return fmt.Errorf("unsupported transport: %s", a.cfg.MCP.Transport)
	}
}

// serveHTTP runs the streamable HTTP transport.
// Uses errgroup for runtime error monitoring and shutdown function collection for coordinated cleanup.
func (a *App) serveHTTP(ctx context.Context, server *mcpserver.Server) error {
	g, gCtx := errgroup.WithContext(ctx)

	address := joinHostPort(a.cfg.MCP.Host, a.cfg.MCP.Port)
	var shutdownFuncs []func(context.Context) error

	// Startup phase: Start services
	slog.InfoContext(gCtx, "starting mcp http server", "address", address)
	httpServer := httpserver.New(server.Handler(slog.Default()))
	errCh, err := httpServer.Start(gCtx, address)
	if err != nil {
		return fmt.Errorf("mcp server startup failed: %w", err)
	}
	shutdownFuncs = append(shutdownFuncs, httpServer.Shutdown)

	// Monitor runtime errors - errgroup cancels context on first error
	g.Go(func() error {
		select {
		case err := <-errCh:
			if err != nil {
				slog.ErrorContext(gCtx, "mcp server runtime error", "error", err)
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	slog.InfoContext(gCtx, "application ready", "address", address, "endpoint", mcpserver.Endpoint)

	runtimeErr := g.Wait()

	slog.InfoContext(gCtx, "shutting down services")

	// Shutdown phase: Stop all services
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Shutdown.Timeout)
	defer cancel()

	var errs []error
	if runtimeErr != nil {
		errs = append(errs, fmt.Errorf("runtime: %w", runtimeErr))
	}

	for i := len(shutdownFuncs) - 1; i >= 0; i-- {
		if err := shutdownFuncs[i](shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "service shutdown failed", "error", err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	slog.Info("application stopped")
	return nil
}

// Authorize runs the interactive authorization code flow: it serves the
// redirect URI until LinkedIn calls back or the callback timeout elapses.
func (a *App) Authorize(ctx context.Context, out io.Writer) (*tokenstore.Token, error) {
	listener, err := oauth.NewCallbackListener(a.oauth, a.cfg.LinkedIn.RedirectURI, a.oauth.AuthorizationURL(),
		oauth.WithTimeout(a.cfg.Auth.CallbackTimeout),
		oauth.WithOutput(out),
		oauth.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create callback listener: %w", err)
	}

	token, err := listener.Run(ctx, joinHostPort(a.cfg.Server.Host, a.cfg.Server.Port))
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "authorization complete", "storage", a.cfg.Auth.Location())
	return token, nil
}

// Status reports the stored token's state without refreshing it.
func (a *App) Status(ctx context.Context) (*tools.AuthStatus, error) {
	return tools.CheckAuth(ctx, a.oauth, time.Now())
}

// Logout deletes the stored token.
func (a *App) Logout(ctx context.Context) error {
	return a.oauth.Logout(ctx)
}

// Companies lists the organizations the authenticated member administers.
func (a *App) Companies(ctx context.Context) ([]domain.AdministeredCompany, error) {
	return usecase.NewCompanies(a.client).Administered(ctx)
}

// StorageLocation describes where the token is persisted.
func (a *App) StorageLocation() string {
	return a.cfg.Auth.Location()
}

func joinHostPort(host string, port uint16) string {
	return net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))
}
