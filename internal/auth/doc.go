// Package auth supplies the bearer token attached to outgoing API requests.
//
// A TokenProvider is consulted once per request. The storage-backed provider
// re-reads local storage every time, so a token written or removed by a login
// or logout flow takes effect on the very next request.
package auth
