package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/apiclient/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var graphqlCmd = &cobra.Command{
	Use:   "graphql QUERY",
	Short: "Run a GraphQL query",
	Long: `Run a GraphQL query against the API's GraphQL endpoint (graphql_path,
resolved against the base URL) and print the returned data.

Prefix QUERY with '@' to read it from a file.

Example:
  apiclient graphql 'query($id: ID!) { user(id: $id) { name } }' --var id=42`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		variables, err := cmd.Flags().GetStringArray("var")
		cobra.CheckErr(err)

		app.ExecuteGraphQLCommand(cmd.Context(), appConfig, &app.GraphQLParams{
			Query:     args[0],
			Variables: variables,
		})
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	graphqlCmd.Flags().StringArray("var", nil, "query variable in 'name=value' form, may be repeated")

	rootCmd.AddCommand(graphqlCmd)
}
