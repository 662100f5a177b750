package app

import "errors"

var (
	// ErrOutputRequiresGET indicates that --output was combined with a method other than GET.
	ErrOutputRequiresGET = errors.New("output file can only be used with GET requests")
	// ErrIncompleteDownload indicates that fewer bytes were written than the server announced.
	ErrIncompleteDownload = errors.New("incomplete download")
	// ErrEmptyToken indicates an attempt to store an empty token.
	ErrEmptyToken = errors.New("token cannot be empty")
	// ErrTokenNotFound indicates that no token is stored.
	ErrTokenNotFound = errors.New("no token stored")
	// ErrEmptyPath indicates a request without a path.
	ErrEmptyPath = errors.New("request path cannot be empty")
	// ErrInvalidJSONBody indicates that --json was given a body that is not valid JSON.
	ErrInvalidJSONBody = errors.New("request body is not valid JSON")
	// ErrEmptyQuery indicates a GraphQL command without a query.
	ErrEmptyQuery = errors.New("GraphQL query cannot be empty")
)
