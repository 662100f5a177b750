package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/apiclient/internal/config"
	"github.com/oshokin/apiclient/internal/logger"
	"github.com/oshokin/apiclient/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "apiclient",
		Short: "Send authorized requests to an HTTP API.",
		Long: `apiclient sends requests to an HTTP API bound to a single base URL
(http://localhost:5000 unless configured otherwise).

Every request carries the bearer token found in local storage at the moment
it is sent. Use 'apiclient token set' to store a token and 'apiclient token clear'
to remove it; requests made without a stored token carry no Authorization header.`,
		Version:          version.Short(),
		PersistentPreRun: initConfig,
		SilenceUsage:     true,
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmdFlags := rootCmd.PersistentFlags()

	rootCmdFlags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags.StringP(
		"base-url",
		"b",
		"",
		fmt.Sprintf("base URL relative request paths are resolved against (default is '%s')",
			config.DefaultBaseURL))

	rootCmdFlags.StringP(
		"token",
		"t",
		"",
		"bearer token to use instead of the stored one")

	rootCmdFlags.String(
		"log-level",
		"",
		"log level: debug, info, warn, error")

	rootCmdFlags.String(
		"storage-path",
		"",
		"path to the local storage file holding the token")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

// bindFlagsToConfig applies the flags that were set explicitly and validates the result.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("base-url"); flag != nil && flag.Changed {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}

	if flag := flags.Lookup("token"); flag != nil && flag.Changed {
		cfg.Token, _ = flags.GetString("token")
	}

	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flag := flags.Lookup("storage-path"); flag != nil && flag.Changed {
		cfg.StoragePath, _ = flags.GetString("storage-path")
	}

	return config.ValidateConfig(cfg)
}
