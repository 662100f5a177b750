package http

import (
	"net/http"
	"net/http/httputil"
	"regexp"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/apiclient/internal/config"
	"github.com/oshokin/apiclient/internal/logger"
	"github.com/oshokin/apiclient/internal/utils"
)

// redactedValue replaces credentials in logged dumps.
const redactedValue = "[REDACTED]"

//nolint:gochecknoglobals // Immutable, pre-compiled pattern used as a constant.
var authorizationLinePattern = regexp.MustCompile(`(?mi)^(Authorization:[ \t]*)(\S+[ \t]+)?\S+`)

// LogTransport is a custom http.RoundTripper that logs HTTP requests and responses.
// It wraps another http.RoundTripper and logs debug information for each request/response cycle.
// Authorization values never reach the log.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64
}

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to config.DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) *LogTransport {
	if next == nil {
		next = http.DefaultTransport
	}

	if maxLogLength == 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction and logs the request and response.
// It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// Skip logging if the logger is not at debug level.
	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()

	requestDump := t.dumpRequest(req)

	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)

	if err != nil {
		logger.Debugf(ctx, "Request failed: %s %s | Error: %v", req.Method, req.URL.String(), err)

		return nil, err
	}

	responseDump := t.dumpResponse(resp)

	logger.Debugf(ctx, "%s %s [%d] %s, %s\nRequest: %s\nResponse: %s",
		req.Method, req.URL.Path, resp.StatusCode, duration, describeLength(resp.ContentLength),
		requestDump, responseDump)

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	// Include the request body only when it is text.
	includeBody := req.Body != nil && req.Body != http.NoBody && utils.IsTextContentType(req.Header.Get("Content-Type"))

	dump, err := httputil.DumpRequest(req, includeBody)
	if err != nil {
		return err.Error()
	}

	return t.truncate(redactAuthorization(dump))
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	// Check the Content-Type header to determine if the response body should be dumped.
	contentType := resp.Header.Get("Content-Type")

	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(contentType))
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}

	return string(data)
}

// redactAuthorization keeps the scheme of an Authorization header and hides the credential.
func redactAuthorization(dump []byte) []byte {
	return authorizationLinePattern.ReplaceAll(dump, []byte("${1}${2}"+redactedValue))
}

func describeLength(contentLength int64) string {
	if contentLength < 0 {
		return "unknown size"
	}

	return humanize.Bytes(uint64(contentLength))
}
