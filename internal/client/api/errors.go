package api

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrEmptyBaseURL indicates that the client has no base URL.
	ErrEmptyBaseURL = errors.New("base URL cannot be empty")
	// ErrInvalidBaseURL indicates that the base URL is not absolute.
	ErrInvalidBaseURL = errors.New("base URL must be absolute")
	// ErrNilTokenProvider indicates that no token provider was supplied.
	ErrNilTokenProvider = errors.New("token provider cannot be nil")
	// ErrNilConfig indicates that no configuration was supplied.
	ErrNilConfig = errors.New("config cannot be nil")
)
