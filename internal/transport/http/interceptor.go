package http

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// RequestInterceptor inspects and mutates an outgoing request before it is sent.
// It may return the same request or a derived one (for example with a new context).
type RequestInterceptor interface {
	InterceptRequest(req *http.Request) (*http.Request, error)
}

// RequestInterceptorFunc adapts an ordinary function to RequestInterceptor.
type RequestInterceptorFunc func(req *http.Request) (*http.Request, error)

// InterceptRequest calls f(req).
func (f RequestInterceptorFunc) InterceptRequest(req *http.Request) (*http.Request, error) {
	return f(req)
}

var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
	// ErrNilInterceptedRequest indicates that an interceptor returned no request.
	ErrNilInterceptedRequest = errors.New("request interceptor returned nil request")
)

// InterceptorTransport is an http.RoundTripper that runs request interceptors
// in registration order right before the request is transmitted.
// The caller's request is never modified: interceptors work on a clone.
type InterceptorTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// mu guards interceptors so Use may be called while requests are in flight.
	mu           sync.RWMutex
	interceptors []RequestInterceptor
}

// NewInterceptorTransport creates a transport running interceptors before next.
// A nil next falls back to http.DefaultTransport.
func NewInterceptorTransport(next http.RoundTripper, interceptors ...RequestInterceptor) *InterceptorTransport {
	if next == nil {
		next = http.DefaultTransport
	}

	t := &InterceptorTransport{next: next}
	t.Use(interceptors...)

	return t
}

// Use appends interceptors to the chain. Nil interceptors are ignored.
func (t *InterceptorTransport) Use(interceptors ...RequestInterceptor) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, interceptor := range interceptors {
		if interceptor != nil {
			t.interceptors = append(t.interceptors, interceptor)
		}
	}
}

// Len returns the number of registered interceptors.
func (t *InterceptorTransport) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.interceptors)
}

// RoundTrip runs the interceptors on a clone of req and forwards the result.
// It implements the http.RoundTripper interface.
func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	outgoing := req.Clone(req.Context())

	for _, interceptor := range t.snapshot() {
		intercepted, err := interceptor.InterceptRequest(outgoing)
		if err != nil {
			closeRequestBody(req)

			return nil, fmt.Errorf("request interceptor failed: %w", err)
		}

		if intercepted == nil {
			closeRequestBody(req)

			return nil, ErrNilInterceptedRequest
		}

		outgoing = intercepted
	}

	return t.next.RoundTrip(outgoing)
}

func (t *InterceptorTransport) snapshot() []RequestInterceptor {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]RequestInterceptor(nil), t.interceptors...)
}

// closeRequestBody honours the RoundTripper contract of always closing the body.
func closeRequestBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
