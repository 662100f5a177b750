package http

import (
	"io"
	"net/http"
	"strings"
)

// roundTripperFunc adapts a function to http.RoundTripper.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// capturingTransport records the last request it saw and answers 200 OK.
type capturingTransport struct {
	requests []*http.Request
}

func (t *capturingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.requests = append(t.requests, req)

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/plain"}},
		Body:       io.NopCloser(strings.NewReader("ok")),
		Request:    req,
	}, nil
}

func (t *capturingTransport) last() *http.Request {
	if len(t.requests) == 0 {
		return nil
	}

	return t.requests[len(t.requests)-1]
}

// trackingBody reports whether it was closed.
type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true

	return nil
}
