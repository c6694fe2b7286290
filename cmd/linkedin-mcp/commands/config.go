package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"

	"github.com/florianilch/linkedin-mcp/internal/app"
	"github.com/florianilch/linkedin-mcp/internal/apperrors"
)

// envPrefix is stripped from environment variables during config loading (e.g., LINKEDIN_MCP_SERVER__PORT → server.port)
const envPrefix = "LINKEDIN_MCP_"

// defaultEnvFile is read when present; an explicitly given file must exist.
const defaultEnvFile = ".env"

// envAliases maps unprefixed variable names to config keys.
var envAliases = map[string]string{
	"LINKEDIN_CLIENT_ID":     "linkedin.client_id",
	"LINKEDIN_CLIENT_SECRET": "linkedin.client_secret",
	"LINKEDIN_REDIRECT_URI":  "linkedin.redirect_uri",
	"LINKEDIN_COMPANY_ID":    "linkedin.company_id",
	"PORT":                   "server.port",
	"NODE_ENV":               "environment",
	"TOKEN_STORAGE_PATH":     "auth.file",
}

// listKeys hold whitespace or comma separated lists when given as a string.
var listKeys = map[string]bool{
	"linkedin.scopes": true,
}

// loadConfig loads application configuration from various sources with precedence:
// config file → .env file → environment variables → CLI flags → defaults
func loadConfig(configPath, envFile string, cmd *cli.Command, environFunc func() []string) (*app.Config, error) {
	k := koanf.New(".")

	// 1. Load from config file if provided
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, apperrors.Config("loading config file", err)
		}
	}

	// 2. Merge the .env file beneath the process environment
	environ, err := withDotEnv(envFile, environFunc)
	if err != nil {
		return nil, err
	}

	// 3. Load from environment variables: aliases first so prefixed names win
	aliasProvider := env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			target, ok := envAliases[key]
			if !ok {
				return "", nil
			}
			return target, transformValue(target, value)
		},
		EnvironFunc: environ,
	})
	if err := k.Load(aliasProvider, nil); err != nil {
		return nil, apperrors.Config("loading environment variables", err)
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			stripped := strings.TrimPrefix(key, envPrefix)
			nested := strings.ToLower(strings.ReplaceAll(stripped, "__", "."))
			return nested, transformValue(nested, value)
		},
		EnvironFunc: environ,
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, apperrors.Config("loading environment variables", err)
	}

	// 4. Load from CLI flags if provided
	if cmd != nil {
		flagValues := extractAndTransformFlags(cmd)
		if err := k.Load(confmap.Provider(flagValues, "."), nil); err != nil {
			return nil, apperrors.Config("loading CLI flags", err)
		}
	}

	config := &app.Config{}
	if err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, apperrors.Config("unmarshaling config", err)
	}

	if err := config.ApplyDefaults(); err != nil {
		return nil, apperrors.Config("applying defaults", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// withDotEnv returns an environ function listing the .env entries before
// the process environment, so real variables override file values. The
// process environment itself is not modified.
func withDotEnv(path string, environFunc func() []string) (func() []string, error) {
	if path == "" {
		return environFunc, nil
	}

	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultEnvFile {
		return environFunc, nil
	}
	if err != nil {
		return nil, apperrors.Config("loading env file", err)
	}

	return func() []string {
		merged := make([]string, 0, len(values))
		for key, value := range values {
			merged = append(merged, key+"="+value)
		}
		return append(merged, environFunc()...)
	}, nil
}

// transformValue splits list-valued keys given as a single string.
func transformValue(key, value string) any {
	if !listKeys[key] {
		return value
	}
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

// extractAndTransformFlags transforms CLI flag names to match config structure.
// Includes parent flags. Examples: --server--host → server.host, --log-level → log_level
func extractAndTransformFlags(cmd *cli.Command) map[string]any {
	values := make(map[string]any)

	// FlagNames() includes flags from parent commands (via lineage)
	for _, name := range cmd.FlagNames() {
		// Skip unset flags to preserve precedence from earlier config sources
		if !cmd.IsSet(name) {
			continue
		}

		if value := cmd.Value(name); value != nil {
			key := strings.ReplaceAll(name, "--", ".")
			key = strings.ReplaceAll(key, "-", "_")
			values[key] = value
		}
	}

	return values
}

// processEnviron is the process environment source.
var processEnviron = os.Environ

func configFromCommand(cmd *cli.Command) (*app.Config, error) {
	cfg, err := loadConfig(cmd.String("config"), cmd.String("env-file"), cmd, processEnviron)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
