package api

import (
	"net/http"
	"time"
)

// Response is a fully read HTTP response.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the status line text, e.g. "200 OK".
	Status string
	// Header holds the response headers.
	Header http.Header
	// Body is the complete response body.
	Body []byte
	// Duration is the time from sending the request to reading the last body byte.
	Duration time.Duration
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return isSuccessStatus(r.StatusCode)
}

// DownloadResult describes a streamed response body.
type DownloadResult struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// ContentLength is the length announced by the server, or -1 when unknown.
	ContentLength int64
	// BytesWritten is the number of body bytes copied to the writer.
	BytesWritten int64
}

// FetchJSONResult is the decoded result of a JSON request.
type FetchJSONResult[T any] struct {
	// Data is the decoded body, nil when the request failed.
	Data *T
	// StatusCode is the HTTP status code.
	StatusCode int
}

func isSuccessStatus(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
