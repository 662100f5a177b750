package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/apiclient/internal/config"
	"github.com/oshokin/apiclient/internal/constants"
	"github.com/oshokin/apiclient/internal/version"
)

const testBaseConfigContent = `
base_url: "http://config.example:8080/api"
graphql_path: "graphql"
storage_path: "/config/storage.yaml"
token_key: "token"
log_level: "info"
timeout: "30s"
max_log_length: "64KB"
`

// newTestCommand creates a command carrying the same persistent flags as the root command.
func newTestCommand() *cobra.Command {
	testCmd := &cobra.Command{Use: "test"}

	testCmd.Flags().StringP("base-url", "b", "", "base URL")
	testCmd.Flags().StringP("token", "t", "", "bearer token")
	testCmd.Flags().String("log-level", "", "log level")
	testCmd.Flags().String("storage-path", "", "storage path")

	return testCmd
}

func loadTestConfig(t *testing.T, content string) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	err := os.WriteFile(
		configPath,
		[]byte(content),
		constants.DefaultFilePermissions,
	) //nolint:gosec // It's a test file.
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	return cfg
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:funlen // It's a table of flag combinations.
func TestFlagOverrides(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "http://config.example:8080/api", cfg.BaseURL)
				assert.Empty(t, cfg.Token)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "/config/storage.yaml", cfg.StoragePath)
			},
		},
		{
			name: "base-url flag only - override base URL",
			flags: map[string]string{
				"base-url": "https://flag.example",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "https://flag.example", cfg.BaseURL)
				assert.Equal(t, "flag.example", cfg.ParsedBaseURL.Host)
				assert.Equal(t, "info", cfg.LogLevel)
			},
		},
		{
			name: "token flag only - override token",
			flags: map[string]string{
				"token": "flag_token",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "flag_token", cfg.Token)
				assert.Equal(t, "http://config.example:8080/api", cfg.BaseURL)
			},
		},
		{
			name: "log-level flag only - override log level",
			flags: map[string]string{
				"log-level": "debug",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.ParsedLogLevel.String())
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"base-url":     "http://localhost:5000",
				"token":        "abc123",
				"log-level":    "warn",
				"storage-path": "/flag/storage.yaml",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
				assert.Equal(t, "abc123", cfg.Token)
				assert.Equal(t, "warn", cfg.LogLevel)
				assert.Equal(t, "/flag/storage.yaml", cfg.StoragePath)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t, testBaseConfigContent)
			testCmd := newTestCommand()

			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue), "failed to set flag %s", flagName)
			}

			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values fail validation.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	invalidTests := []struct {
		name          string
		flagName      string
		flagValue     string
		expectedError error
	}{
		{
			name:          "empty base URL",
			flagName:      "base-url",
			flagValue:     " ",
			expectedError: config.ErrEmptyBaseURL,
		},
		{
			name:          "relative base URL",
			flagName:      "base-url",
			flagValue:     "/api",
			expectedError: config.ErrInvalidBaseURL,
		},
		{
			name:          "unsupported scheme",
			flagName:      "base-url",
			flagValue:     "ftp://localhost",
			expectedError: config.ErrInvalidBaseURL,
		},
		{
			name:          "unknown log level",
			flagName:      "log-level",
			flagValue:     "verbose",
			expectedError: config.ErrUnknownLogLevel,
		},
		{
			name:          "empty storage path",
			flagName:      "storage-path",
			flagValue:     "",
			expectedError: config.ErrEmptyStoragePath,
		},
	}

	for _, tt := range invalidTests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t, testBaseConfigContent)
			testCmd := newTestCommand()

			require.NoError(t, testCmd.Flags().Set(tt.flagName, tt.flagValue))

			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.ErrorIs(t, err, tt.expectedError)
		})
	}
}

// TestBindFlagsToConfig_EmptyFlagSet tests handling of empty flag set.
func TestBindFlagsToConfig_EmptyFlagSet(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	// Calling with empty flag set should just validate the config.
	err := bindFlagsToConfig(pflag.NewFlagSet("test", pflag.ContinueOnError), cfg)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, cfg.ParsedBaseURL.String())
	assert.Equal(t, uint64(config.DefaultMaxLogLength), cfg.ParsedMaxLogLength)
}

// TestRequestParamsFromFlags tests how positional arguments map to method and path.
func TestRequestParamsFromFlags(t *testing.T) {
	t.Parallel()

	newRequestCommand := func() *cobra.Command {
		testCmd := &cobra.Command{Use: "request"}
		testCmd.Flags().StringP("data", "d", "", "request body")
		testCmd.Flags().StringArrayP("header", "H", nil, "extra header")
		testCmd.Flags().StringP("output", "o", "", "output file")
		testCmd.Flags().BoolP("json", "j", false, "json mode")

		return testCmd
	}

	t.Run("path only", func(t *testing.T) {
		t.Parallel()

		params, err := requestParamsFromFlags(newRequestCommand(), []string{"/users"})
		require.NoError(t, err)
		assert.Equal(t, "GET", params.Method)
		assert.Equal(t, "/users", params.Path)
		assert.Empty(t, params.Headers)
		assert.False(t, params.JSON)
	})

	t.Run("method, path and flags", func(t *testing.T) {
		t.Parallel()

		testCmd := newRequestCommand()
		require.NoError(t, testCmd.Flags().Set("data", `{"a":1}`))
		require.NoError(t, testCmd.Flags().Set("header", "X-One: 1"))
		require.NoError(t, testCmd.Flags().Set("header", "X-Two: 2"))
		require.NoError(t, testCmd.Flags().Set("output", "out.json"))
		require.NoError(t, testCmd.Flags().Set("json", "true"))

		params, err := requestParamsFromFlags(testCmd, []string{"post", "/users"})
		require.NoError(t, err)
		assert.Equal(t, "post", params.Method)
		assert.Equal(t, "/users", params.Path)
		assert.Equal(t, `{"a":1}`, params.Data)
		assert.Equal(t, []string{"X-One: 1", "X-Two: 2"}, params.Headers)
		assert.Equal(t, "out.json", params.OutputPath)
		assert.True(t, params.JSON)
	})
}

// TestVersionCommand tests that the version command prints the full version string.
func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer

	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, version.Full()+"\n", out.String())
}

// TestCommandTree tests that every command is registered on the root command.
func TestCommandTree(t *testing.T) {
	t.Parallel()

	for _, path := range [][]string{
		{"request"},
		{"graphql"},
		{"version"},
		{"token", "set"},
		{"token", "show"},
		{"token", "list"},
		{"token", "clear"},
	} {
		found, _, err := rootCmd.Find(path)
		require.NoError(t, err, "command %v", path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}

	for _, name := range []string{"config", "base-url", "token", "log-level", "storage-path"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}
