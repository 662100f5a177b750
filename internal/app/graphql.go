package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oshokin/apiclient/internal/config"
	"github.com/oshokin/apiclient/internal/logger"
	"github.com/oshokin/apiclient/internal/utils"
)

// GraphQLParams describes a GraphQL query issued from the command line.
type GraphQLParams struct {
	// Query is the query text, or '@file' to read it from a file.
	Query string
	// Variables holds query variables in 'name=value' form.
	Variables []string
}

// ExecuteGraphQLCommand runs a GraphQL query and prints the indented result.
func ExecuteGraphQLCommand(ctx context.Context, cfg *config.Config, params *GraphQLParams) {
	if err := runGraphQL(ctx, cfg, params, os.Stdout); err != nil {
		logger.Fatalf(ctx, "GraphQL query failed: %v", err)
	}
}

func runGraphQL(ctx context.Context, cfg *config.Config, params *GraphQLParams, stdout io.Writer) error {
	query, err := readArgument(params.Query)
	if err != nil {
		return err
	}

	if strings.TrimSpace(string(query)) == "" {
		return ErrEmptyQuery
	}

	variables, err := utils.ParseVariables(params.Variables)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var data json.RawMessage
	if err = client.Query(ctx, string(query), variables, &data); err != nil {
		return err
	}

	return writeIndentedJSON(stdout, data)
}

// writeIndentedJSON pretty-prints a JSON document followed by a newline.
func writeIndentedJSON(w io.Writer, data []byte) error {
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return fmt.Errorf("failed to format JSON response: %w", err)
	}

	indented.WriteByte('\n')

	if _, err := indented.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
