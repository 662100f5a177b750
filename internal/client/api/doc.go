// Package api provides the HTTP client used to talk to the backend API.
//
// NewClient binds an http.Client to a base URL and installs the request
// interceptor chain (request ID, User-Agent, bearer authorization) in front of
// the debug logging transport. Every request made through the client, including
// GraphQL queries, goes through that chain, so the Authorization header always
// reflects the token stored at the moment the request starts.
package api
