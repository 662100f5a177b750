// Package http provides the client-side transport chain of the API client.
//
// InterceptorTransport runs registered RequestInterceptors on a clone of every
// outgoing request before handing it to the next http.RoundTripper. The package
// ships interceptors for bearer authorization, request IDs and the User-Agent
// header, plus a LogTransport that dumps traffic at debug level.
package http
