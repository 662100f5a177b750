package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/oshokin/apiclient/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var requestCmd = &cobra.Command{
	Use:   "request [METHOD] PATH",
	Short: "Send a request to the API",
	Long: `Send a request to the API and print the response body.

PATH is resolved against the base URL; absolute URLs are used as is.
METHOD defaults to GET. Bodies given with --data that are valid JSON are sent
with 'Content-Type: application/json' unless a Content-Type header is set.
Prefix --data with '@' to read the body from a file.
With --json the body must be valid JSON and the response is decoded
and printed indented.

Examples:
  apiclient request /users
  apiclient request POST /users -d '{"name":"Ada"}'
  apiclient request PUT /users/1 --json -d @user.json
  apiclient request /reports/1.pdf -o report.pdf`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		params, err := requestParamsFromFlags(cmd, args)
		cobra.CheckErr(err)

		app.ExecuteRequestCommand(cmd.Context(), appConfig, params)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	flags := requestCmd.Flags()

	flags.StringP("data", "d", "", "request body, or @file to read it from a file")
	flags.StringArrayP("header", "H", nil, "extra header in 'Name: value' form, may be repeated")
	flags.StringP("output", "o", "", "save the response body to a file (GET only)")
	flags.BoolP("json", "j", false, "send and expect JSON, print the response indented")

	rootCmd.AddCommand(requestCmd)
}

func requestParamsFromFlags(cmd *cobra.Command, args []string) (*app.RequestParams, error) {
	params := &app.RequestParams{
		Method: http.MethodGet,
		Path:   args[len(args)-1],
	}

	if len(args) > 1 {
		params.Method = args[0]
	}

	var err error

	flags := cmd.Flags()

	if params.Data, err = flags.GetString("data"); err != nil {
		return nil, err
	}

	if params.Headers, err = flags.GetStringArray("header"); err != nil {
		return nil, err
	}

	if params.OutputPath, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	if params.JSON, err = flags.GetBool("json"); err != nil {
		return nil, err
	}

	return params, nil
}
