package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/apiclient/internal/logger"
	"github.com/oshokin/apiclient/internal/storage"
)

// Config holds all configuration settings.
type Config struct {
	// BaseURL is the root every relative request path is resolved against.
	BaseURL string `mapstructure:"base_url"`
	// GraphQLPath is the path of the GraphQL endpoint, relative to BaseURL.
	GraphQLPath string `mapstructure:"graphql_path"`
	// StorageDriver selects the local storage backend ("file" or "memory").
	StorageDriver string `mapstructure:"storage_driver"`
	// StoragePath is the location of the local storage file.
	StoragePath string `mapstructure:"storage_path"`
	// TokenKey is the local storage key holding the bearer token.
	TokenKey string `mapstructure:"token_key"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// Timeout is the overall timeout of a single request (e.g., "30s").
	Timeout string `mapstructure:"timeout"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `mapstructure:"user_agent"`
	// MaxLogLength caps the size of logged request/response dumps (e.g., "1MiB", "64KB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// Token, when set, is used instead of the token in local storage (set from flags only).
	Token string
	// ParsedBaseURL is the parsed base URL.
	ParsedBaseURL *url.URL
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedTimeout is the parsed request timeout.
	ParsedTimeout time.Duration
	// ParsedMaxLogLength is the parsed maximum dump size in bytes.
	ParsedMaxLogLength uint64
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".apiclient.yaml"

	// EnvPrefix is the prefix of environment variables overriding file values (e.g. APICLIENT_BASE_URL).
	EnvPrefix = "APICLIENT"

	// DefaultBaseURL is the address of the API server during local development.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultGraphQLPath is the default GraphQL endpoint path.
	DefaultGraphQLPath = "graphql"

	// DefaultStoragePath is the default location of the local storage file.
	DefaultStoragePath = ".apiclient-storage.yaml"

	// DefaultTokenKey is the default local storage key of the bearer token.
	DefaultTokenKey = "token"

	// DefaultLogLevel is the default logging verbosity.
	DefaultLogLevel = "info"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = "60s"

	// DefaultMaxLogLength is the default maximum size (in bytes) of a logged dump.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MiB
)

// Static error definitions for better error handling.
var (
	// ErrEmptyBaseURL indicates that the base URL is missing.
	ErrEmptyBaseURL = errors.New("base URL cannot be empty")
	// ErrInvalidBaseURL indicates that the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("base URL must be an absolute http or https URL")
	// ErrEmptyTokenKey indicates that the token storage key is missing.
	ErrEmptyTokenKey = errors.New("token key cannot be empty")
	// ErrUnknownStorageDriver indicates that the storage driver is not recognized.
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	// ErrEmptyStoragePath indicates that the file storage has no path.
	ErrEmptyStoragePath = errors.New("storage path cannot be empty for the file driver")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidTimeout indicates that the timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrInvalidMaxLogLength indicates that the maximum log length is not positive.
	ErrInvalidMaxLogLength = errors.New("max_log_length must be positive")
)

// LoadConfig loads configuration settings from a YAML file and the environment.
// When no file name is given and the default file does not exist, defaults are used.
func LoadConfig(configFilename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	shouldRead := true

	if configFilename == "" {
		configFilename = DefaultConfigFilename

		// The default file is optional, an explicitly requested one is not.
		if _, err := os.Stat(configFilename); errors.Is(err, os.ErrNotExist) {
			shouldRead = false
		}
	}

	if shouldRead {
		v.SetConfigFile(configFilename)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration holding only default values.
func Default() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		GraphQLPath:   DefaultGraphQLPath,
		StorageDriver: storage.DriverFile,
		StoragePath:   DefaultStoragePath,
		TokenKey:      DefaultTokenKey,
		LogLevel:      DefaultLogLevel,
		Timeout:       DefaultTimeout,
		MaxLogLength:  humanize.IBytes(DefaultMaxLogLength),
	}
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("graphql_path", defaults.GraphQLPath)
	v.SetDefault("storage_driver", defaults.StorageDriver)
	v.SetDefault("storage_path", defaults.StoragePath)
	v.SetDefault("token_key", defaults.TokenKey)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("max_log_length", defaults.MaxLogLength)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return ErrEmptyBaseURL
	}

	cfg.ParsedBaseURL, err = url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if (cfg.ParsedBaseURL.Scheme != "http" && cfg.ParsedBaseURL.Scheme != "https") || cfg.ParsedBaseURL.Host == "" {
		return fmt.Errorf("%w: '%s'", ErrInvalidBaseURL, cfg.BaseURL)
	}

	cfg.TokenKey = strings.TrimSpace(cfg.TokenKey)
	if cfg.TokenKey == "" {
		return ErrEmptyTokenKey
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	switch cfg.StorageDriver {
	case storage.DriverFile:
		if strings.TrimSpace(cfg.StoragePath) == "" {
			return ErrEmptyStoragePath
		}
	case storage.DriverMemory:
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownStorageDriver, cfg.StorageDriver)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.ParsedTimeout, err = time.ParseDuration(strings.TrimSpace(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("failed to parse timeout: %w", err)
	}

	if cfg.ParsedTimeout <= 0 {
		return ErrInvalidTimeout
	}

	maxLogLength := strings.TrimSpace(cfg.MaxLogLength)
	if maxLogLength == "" {
		cfg.ParsedMaxLogLength = DefaultMaxLogLength
	} else {
		cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}

		if cfg.ParsedMaxLogLength == 0 {
			return ErrInvalidMaxLogLength
		}
	}

	return nil
}
