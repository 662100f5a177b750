package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	api_client "github.com/oshokin/apiclient/internal/client/api"
	"github.com/oshokin/apiclient/internal/config"
	"github.com/oshokin/apiclient/internal/constants"
	"github.com/oshokin/apiclient/internal/logger"
	http_transport "github.com/oshokin/apiclient/internal/transport/http"
	"github.com/oshokin/apiclient/internal/utils"
)

const (
	contentTypeHeader   = "Content-Type"
	jsonContentType     = "application/json"
	partFileExtension   = ".part"
	overwriteFileOption = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
)

// RequestParams describes a single request issued from the command line.
type RequestParams struct {
	// Method is the HTTP method, GET when empty.
	Method string
	// Path is resolved against the base URL.
	Path string
	// Data is the request body, or '@file' to read it from a file.
	Data string
	// Headers holds extra headers in 'Name: value' form.
	Headers []string
	// OutputPath saves the response body to a file instead of printing it.
	OutputPath string
	// JSON sends the body as JSON, requires a JSON response and pretty-prints it.
	JSON bool
}

// ExecuteRequestCommand sends a request to the API and prints the response body.
func ExecuteRequestCommand(ctx context.Context, cfg *config.Config, params *RequestParams) {
	if err := runRequest(ctx, cfg, params, os.Stdout); err != nil {
		logger.Fatalf(ctx, "Request failed: %v", err)
	}
}

func runRequest(ctx context.Context, cfg *config.Config, params *RequestParams, stdout io.Writer) error {
	if strings.TrimSpace(params.Path) == "" {
		return ErrEmptyPath
	}

	method := strings.ToUpper(strings.TrimSpace(params.Method))
	if method == "" {
		method = http.MethodGet
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if params.OutputPath != "" {
		if method != http.MethodGet {
			return fmt.Errorf("%w: got %s", ErrOutputRequiresGET, method)
		}

		return downloadToFile(ctx, client, params.Path, params.OutputPath)
	}

	headers, err := utils.ParseHeaders(params.Headers)
	if err != nil {
		return err
	}

	var data []byte

	if params.Data != "" {
		if data, err = readArgument(params.Data); err != nil {
			return err
		}
	}

	if params.JSON {
		return runJSONRequest(ctx, client, method, params.Path, data, headers, stdout)
	}

	var body io.Reader

	if data != nil {
		if headers.Get(contentTypeHeader) == "" && json.Valid(data) {
			headers.Set(contentTypeHeader, jsonContentType)
		}

		body = bytes.NewReader(data)
	}

	response, err := client.Request(ctx, method, params.Path, body, headers)
	if response == nil {
		return err
	}

	logger.Infof(ctx, "%s %s: %s in %s, %s",
		method,
		params.Path,
		response.Status,
		response.Duration.Round(time.Millisecond),
		humanize.Bytes(uint64(len(response.Body))))

	if _, writeErr := stdout.Write(response.Body); writeErr != nil {
		return fmt.Errorf("failed to write response body: %w", writeErr)
	}

	if len(response.Body) > 0 && !bytes.HasSuffix(response.Body, []byte("\n")) {
		_, _ = io.WriteString(stdout, "\n")
	}

	return err
}

// runJSONRequest sends data as a JSON document and prints the decoded JSON response.
func runJSONRequest(
	ctx context.Context,
	client api_client.Client,
	method, path string,
	data []byte,
	headers http.Header,
	stdout io.Writer,
) error {
	var payload any

	if data != nil {
		if !json.Valid(data) {
			return ErrInvalidJSONBody
		}

		payload = json.RawMessage(data)
	}

	if len(headers) > 0 {
		client.Use(headerInterceptor(headers))
	}

	result, err := api_client.SendJSON[json.RawMessage](ctx, client, method, path, nil, payload)
	if err != nil {
		return err
	}

	logger.Infof(ctx, "%s %s: %d", method, path, result.StatusCode)

	if result.Data == nil {
		return nil
	}

	return writeIndentedJSON(stdout, *result.Data)
}

// headerInterceptor sets the given headers on every request.
// Authorization is skipped: the bearer interceptor owns it.
func headerInterceptor(headers http.Header) http_transport.RequestInterceptor {
	return http_transport.RequestInterceptorFunc(func(req *http.Request) (*http.Request, error) {
		for name, values := range headers {
			if http.CanonicalHeaderKey(name) == http_transport.AuthorizationHeader {
				continue
			}

			req.Header[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
		}

		return req, nil
	})
}

// downloadToFile streams the response into a .part file and renames it once the download is complete.
func downloadToFile(ctx context.Context, client api_client.Client, path, outputPath string) error {
	outputPath = filepath.Clean(outputPath)
	tempFilePath := outputPath + partFileExtension

	f, err := os.OpenFile(tempFilePath, overwriteFileOption, constants.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	var downloadSucceeded bool

	defer func() {
		if downloadSucceeded {
			return
		}

		_ = f.Close()

		if removeErr := os.Remove(tempFilePath); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warnf(ctx, "Failed to clean up temporary file '%s': %v", tempFilePath, removeErr)
		}
	}()

	var opts []api_client.DownloadOption

	// Progress bars go to stderr and only make sense when info messages are shown too.
	if logger.Level() <= zap.InfoLevel {
		opts = append(opts, api_client.WithProgress(func(contentLength int64) io.Writer {
			return progressbar.DefaultBytes(contentLength, "Downloading")
		}))
	}

	result, err := client.Download(ctx, path, f, opts...)
	if err != nil {
		return err
	}

	if result.ContentLength >= 0 && result.BytesWritten != result.ContentLength {
		return fmt.Errorf("%w: wrote %d bytes, expected %d bytes",
			ErrIncompleteDownload, result.BytesWritten, result.ContentLength)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err = os.Rename(tempFilePath, outputPath); err != nil {
		return fmt.Errorf("failed to move downloaded file: %w", err)
	}

	downloadSucceeded = true

	logger.Infof(ctx, "Saved %s to '%s'", humanize.Bytes(uint64(result.BytesWritten)), outputPath) //nolint:gosec // Never negative.

	return nil
}
