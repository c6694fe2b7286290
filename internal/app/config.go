package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
	"github.com/florianilch/linkedin-mcp/internal/linkedin"
	"github.com/florianilch/linkedin-mcp/internal/oauth"
	"github.com/florianilch/linkedin-mcp/internal/observability"
	"github.com/florianilch/linkedin-mcp/internal/tokenstore"
)

// LogFormat represents the logging output format.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Environment tags the deployment the process runs in.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
	EnvironmentTest        Environment = "test"
)

// TransportType selects how the MCP server is reached.
type TransportType string

const (
	TransportStdio TransportType = "stdio"
	TransportHTTP  TransportType = "http"
)

// TokenStorageType represents the different storage types supported for stored tokens.
type TokenStorageType string

const (
	TokenStorageTypeFile    TokenStorageType = "file"
	TokenStorageTypeKeyring TokenStorageType = "keyring"
)

// KeyringService is the OS keyring service name tokens are stored under.
const KeyringService = "linkedin-mcp-token"

// DefaultTokenFileName is created in the user's home directory.
const DefaultTokenFileName = ".linkedin-mcp-tokens.json"

// Default configuration values
const (
	DefaultConfigLogFormat       = LogFormatText
	DefaultConfigLogExporter     = observability.ExporterNone
	DefaultConfigEnvironment     = EnvironmentDevelopment
	DefaultConfigAPIBaseURL      = linkedin.DefaultBaseURL
	DefaultConfigServerHost      = "127.0.0.1"
	DefaultConfigServerPort      = 3000
	DefaultConfigMCPTransport    = TransportStdio
	DefaultConfigMCPHost         = "127.0.0.1"
	DefaultConfigMCPPort         = 3001
	DefaultConfigAuthStorage     = TokenStorageTypeFile
	DefaultConfigCallbackTimeout = oauth.DefaultCallbackTimeout
	DefaultConfigShutdownTimeout = 5 * time.Second
)

// LinkedInConfig identifies the LinkedIn application and API.
type LinkedInConfig struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
	RedirectURI  string `json:"redirect_uri" validate:"required,url"`
	// CompanyID is the fallback for company tools called without one.
	CompanyID  string   `json:"company_id,omitempty"`
	APIBaseURL string   `json:"api_base_url" validate:"required,url"`
	Scopes     []string `json:"scopes" validate:"min=1,dive,required"`
}

// ServerConfig holds the address of the OAuth callback listener.
type ServerConfig struct {
	Host string `json:"host" validate:"hostname_rfc1123|ip"`
	Port uint16 `json:"port"` // Port range 0-65535 handled by uint16 type
}

// MCPConfig selects the MCP transport. Host and port apply to http only.
type MCPConfig struct {
	Transport TransportType `json:"transport" validate:"required,oneof=stdio http"`
	Host      string        `json:"host" validate:"hostname_rfc1123|ip"`
	Port      uint16        `json:"port"`
}

// ShutdownConfig holds shutdown behavior configuration.
type ShutdownConfig struct {
	// Timeout for graceful shutdown.
	Timeout time.Duration `json:"timeout"`
}

// AuthConfig describes where the OAuth token is persisted.
type AuthConfig struct {
	Storage TokenStorageType `json:"storage" validate:"required,oneof=file keyring"`

	// Storage-specific settings (mutually exclusive based on Storage type)
	File        string `json:"file,omitempty"`         // For file storage: path to token file
	KeyringUser string `json:"keyring_user,omitempty"` // For keyring storage: user identifier

	// CallbackTimeout bounds the interactive authorization flow.
	CallbackTimeout time.Duration `json:"callback_timeout"`
}

// NewTokenStore creates a TokenStore from the authentication configuration.
func (a *AuthConfig) NewTokenStore() (tokenstore.TokenStore, error) {
	switch a.Storage {
	case TokenStorageTypeFile:
		return tokenstore.NewFileStore(a.File)
	case TokenStorageTypeKeyring:
		return tokenstore.NewKeyringStore(KeyringService, a.KeyringUser)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", a.Storage)
	}
}

// Location describes where tokens are stored, for operator output.
func (a *AuthConfig) Location() string {
	if a.Storage == TokenStorageTypeKeyring {
		return fmt.Sprintf("keyring (service %s, user %s)", KeyringService, a.KeyringUser)
	}
	return a.File
}

// Config holds the application's configuration.
type Config struct {
	// LogLevel for logging output (defaults to Info if unset).
	LogLevel    slog.Level             `json:"log_level"`
	LogFormat   LogFormat              `json:"log_format" validate:"oneof=text json"`
	LogExporter observability.Exporter `json:"log_exporter" validate:"oneof=none stdout otlp-http otlp-grpc"`
	Environment Environment            `json:"environment" validate:"oneof=development production test"`
	LinkedIn    LinkedInConfig         `json:"linkedin"`
	Server      ServerConfig           `json:"server"`
	MCP         MCPConfig              `json:"mcp"`
	Auth        AuthConfig             `json:"auth"`
	Shutdown    ShutdownConfig         `json:"shutdown"`
}

// Default creates a new Config with default values applied.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills unset config fields with sensible defaults.
func (c *Config) ApplyDefaults() error {
	if c.LogFormat == "" {
		c.LogFormat = DefaultConfigLogFormat
	}
	if c.LogExporter == "" {
		c.LogExporter = DefaultConfigLogExporter
	}
	if c.Environment == "" {
		c.Environment = DefaultConfigEnvironment
	}
	if c.LinkedIn.APIBaseURL == "" {
		c.LinkedIn.APIBaseURL = DefaultConfigAPIBaseURL
	}
	if len(c.LinkedIn.Scopes) == 0 {
		c.LinkedIn.Scopes = append([]string(nil), oauth.DefaultScopes...)
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultConfigServerHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultConfigServerPort
	}
	if c.MCP.Transport == "" {
		c.MCP.Transport = DefaultConfigMCPTransport
	}
	if c.MCP.Host == "" {
		c.MCP.Host = DefaultConfigMCPHost
	}
	if c.MCP.Port == 0 {
		c.MCP.Port = DefaultConfigMCPPort
	}
	if c.Auth.Storage == "" {
		c.Auth.Storage = DefaultConfigAuthStorage
	}
	if c.Auth.CallbackTimeout == 0 {
		c.Auth.CallbackTimeout = DefaultConfigCallbackTimeout
	}
	if c.Shutdown.Timeout == 0 {
		c.Shutdown.Timeout = DefaultConfigShutdownTimeout
	}

	// Dynamic defaults based on storage type
	switch c.Auth.Storage {
	case TokenStorageTypeFile:
		if c.Auth.File == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("auth.file required (auto-detect failed: %w)", err)
			}
			c.Auth.File = filepath.Join(home, DefaultTokenFileName)
		}
	case TokenStorageTypeKeyring:
		if c.Auth.KeyringUser == "" {
			currentUser, err := user.Current()
			if err != nil {
				return fmt.Errorf("auth.keyring_user required (auto-detect failed: %w)", err)
			}
			c.Auth.KeyringUser = currentUser.Username
		}
	}

	return nil
}

// Validate validates the configuration using struct tags and enum values.
// Failures are apperrors.KindConfig errors.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return apperrors.Config("invalid configuration", err)
	}

	switch c.Auth.Storage {
	case TokenStorageTypeFile:
		if c.Auth.File == "" {
			return apperrors.Config("invalid configuration", errors.New("file path required for file storage"))
		}
	case TokenStorageTypeKeyring:
		if c.Auth.KeyringUser == "" {
			return apperrors.Config("invalid configuration", errors.New("keyring_user required for keyring storage"))
		}
	}

	if c.Auth.CallbackTimeout < 0 || c.Shutdown.Timeout < 0 {
		return apperrors.Config("invalid configuration", errors.New("timeouts must not be negative"))
	}

	return nil
}
