package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/oshokin/apiclient/internal/logger"
)

// RequestIDInterceptor makes sure every request carries an X-Request-ID header
// and attaches the ID to the request's logging context.
type RequestIDInterceptor struct {
	generate func() string
}

// NewRequestIDInterceptor creates an interceptor generating random UUIDv4 request IDs.
func NewRequestIDInterceptor() *RequestIDInterceptor {
	return &RequestIDInterceptor{generate: uuid.NewString}
}

// InterceptRequest implements RequestInterceptor. An ID set by the caller is kept.
func (i *RequestIDInterceptor) InterceptRequest(req *http.Request) (*http.Request, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if req.Header == nil {
		req.Header = make(http.Header)
	}

	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = i.generate()
		req.Header.Set(RequestIDHeader, requestID)
	}

	return req.WithContext(logger.WithKV(req.Context(), "request_id", requestID)), nil
}
