package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/florianilch/linkedin-mcp/internal/app"
	"github.com/florianilch/linkedin-mcp/internal/observability"
)

// Execute runs the root command with the given context and arguments.
func Execute(ctx context.Context, args []string, version string) error {
	cmd := &cli.Command{
		Name:    app.Name,
		Usage:   "LinkedIn tools for MCP clients",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "path to .env file (ignored if the default is missing)",
				Value: defaultEnvFile,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error)",
				Value: slog.LevelInfo.String(),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (text|json)",
				Value: string(app.DefaultConfigLogFormat),
			},
			&cli.StringFlag{
				Name:  "log-exporter",
				Usage: "OpenTelemetry log exporter (none|stdout|otlp-http|otlp-grpc)",
				Value: string(app.DefaultConfigLogExporter),
			},
		},
		Commands: []*cli.Command{
			serveCommand(version),
			authCommand(),
			statusCommand(),
			logoutCommand(),
			companiesCommand(),
		},
	}

	return cmd.Run(ctx, args)
}

func serveCommand(version string) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve LinkedIn tools over MCP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mcp--transport",
				Usage: "MCP transport (stdio|http)",
				Value: string(app.DefaultConfigMCPTransport),
			},
			&cli.StringFlag{
				Name:  "mcp--host",
				Usage: "MCP HTTP host",
				Value: app.DefaultConfigMCPHost,
			},
			&cli.IntFlag{
				Name:  "mcp--port",
				Usage: "MCP HTTP port",
				Value: int(app.DefaultConfigMCPPort),
			},
			&cli.StringFlag{
				Name:  "linkedin--company-id",
				Usage: "default company id for company tools",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, shutdown, err := setup(ctx, cmd, version)
			if err != nil {
				return err
			}
			defer shutdown()

			slog.InfoContext(ctx, "starting", "version", version)

			if err := application.Start(ctx); err != nil {
				return fmt.Errorf("app failed to start: %w", err)
			}

			slog.InfoContext(ctx, "stopped gracefully")
			return nil
		},
	}
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "authorize with LinkedIn and store the token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server--host",
				Usage: "callback listener host",
				Value: app.DefaultConfigServerHost,
			},
			&cli.IntFlag{
				Name:  "server--port",
				Usage: "callback listener port",
				Value: int(app.DefaultConfigServerPort),
			},
			&cli.DurationFlag{
				Name:  "auth--callback-timeout",
				Usage: "how long to wait for the authorization callback",
				Value: app.DefaultConfigCallbackTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, shutdown, err := setup(ctx, cmd, cmd.Root().Version)
			if err != nil {
				return err
			}
			defer shutdown()

			token, err := application.Authorize(ctx, os.Stderr)
			if err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stderr, "Authorization successful. Token stored in %s, expires %s.\n",
				application.StorageLocation(), token.Expiry().Format(time.RFC1123))
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show whether a valid token is stored",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, shutdown, err := setup(ctx, cmd, cmd.Root().Version)
			if err != nil {
				return err
			}
			defer shutdown()

			status, err := application.Status(ctx)
			if err != nil {
				return fmt.Errorf("reading token: %w", err)
			}

			if wantJSON(cmd) {
				return writeJSON(os.Stdout, status)
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s\n", status.Message)
			_, _ = fmt.Fprintf(os.Stdout, "storage: %s\n", application.StorageLocation())
			if status.ExpiresAt != nil {
				_, _ = fmt.Fprintf(os.Stdout, "expires: %s\n", status.ExpiresAt.Format(time.RFC1123))
			}
			if len(status.Scope) > 0 {
				_, _ = fmt.Fprintf(os.Stdout, "scope:   %v\n", status.Scope)
			}
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "delete the stored token",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, shutdown, err := setup(ctx, cmd, cmd.Root().Version)
			if err != nil {
				return err
			}
			defer shutdown()

			if err := application.Logout(ctx); err != nil {
				return fmt.Errorf("deleting token: %w", err)
			}
			_, _ = fmt.Fprintln(os.Stderr, "Logged out.")
			return nil
		},
	}
}

func companiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "companies",
		Usage: "list company pages you administer and their ids",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			application, shutdown, err := setup(ctx, cmd, cmd.Root().Version)
			if err != nil {
				return err
			}
			defer shutdown()

			companies, err := application.Companies(ctx)
			if err != nil {
				return fmt.Errorf("listing companies: %w", err)
			}

			if wantJSON(cmd) {
				return writeJSON(os.Stdout, companies)
			}

			if len(companies) == 0 {
				_, _ = fmt.Fprintln(os.Stdout, "No administered company pages found.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tVANITY NAME")
			for _, c := range companies {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", c.CompanyID, c.Name, c.VanityName)
			}
			_ = tw.Flush()
			_, _ = fmt.Fprintln(os.Stdout, "\nSet LINKEDIN_COMPANY_ID to use one as the default company.")
			return nil
		},
	}
}

// setup loads config, installs logging and builds the app.
// The returned function flushes the log pipeline.
func setup(ctx context.Context, cmd *cli.Command, version string) (*app.App, func(), error) {
	cfg, err := configFromCommand(cmd)
	if err != nil {
		return nil, nil, err
	}

	// Set up observability before creating app
	shutdownLogs, err := observability.Instrument(ctx, cfg.LogLevel, string(cfg.LogFormat), cfg.LogExporter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up observability layer: %w", err)
	}
	shutdown := func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		_ = shutdownLogs(flushCtx)
	}

	application, err := app.New(cfg, version)
	if err != nil {
		shutdown()
		return nil, nil, fmt.Errorf("failed to create app: %w", err)
	}

	return application, shutdown, nil
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "print JSON (default when stdout is not a terminal)",
	}
}

// wantJSON reports whether output should be machine-readable.
func wantJSON(cmd *cli.Command) bool {
	if cmd.IsSet("json") {
		return cmd.Bool("json")
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
