package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/apiclient/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Manage the stored bearer token",
		Long: `Manage the bearer token kept in local storage.

Requests read the token on every call, so changes take effect immediately.`,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	tokenSetCmd = &cobra.Command{
		Use:   "set TOKEN",
		Short: "Store a bearer token",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteTokenSetCommand(cmd.Context(), appConfig, args[0])
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	tokenShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the stored bearer token",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			reveal, err := cmd.Flags().GetBool("reveal")
			cobra.CheckErr(err)

			app.ExecuteTokenShowCommand(cmd.Context(), appConfig, reveal)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	tokenListCmd = &cobra.Command{
		Use:   "list",
		Short: "List every stored key with a masked value",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteTokenListCommand(cmd.Context(), appConfig)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	tokenClearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored bearer token",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteTokenClearCommand(cmd.Context(), appConfig)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	tokenShowCmd.Flags().Bool("reveal", false, "print the whole token instead of a masked one")

	tokenCmd.AddCommand(tokenSetCmd, tokenShowCmd, tokenListCmd, tokenClearCmd)

	rootCmd.AddCommand(tokenCmd)
}
