package http

import (
	"net/http"
	"strings"

	"github.com/oshokin/apiclient/internal/auth"
)

// BearerAuthInterceptor sets or clears the Authorization header from the current token.
//
// After it runs, the request carries "Authorization: Bearer <token>" if and only if
// the token provider had a token at that moment. A header left over from an earlier
// attempt is removed when the token is gone. Redirect hops to a host other than the
// one the request chain started at never receive the token.
type BearerAuthInterceptor struct {
	tokenProvider auth.TokenProvider
}

// NewBearerAuthInterceptor creates a bearer interceptor reading from tokenProvider.
func NewBearerAuthInterceptor(tokenProvider auth.TokenProvider) *BearerAuthInterceptor {
	return &BearerAuthInterceptor{tokenProvider: tokenProvider}
}

// InterceptRequest implements RequestInterceptor.
func (i *BearerAuthInterceptor) InterceptRequest(req *http.Request) (*http.Request, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	token, ok := i.tokenProvider.Token(req.Context())

	if req.Header == nil {
		req.Header = make(http.Header)
	}

	if ok && token != "" && !isCrossHostRedirect(req) {
		req.Header.Set(AuthorizationHeader, BearerPrefix+token)
	} else {
		req.Header.Del(AuthorizationHeader)
	}

	return req, nil
}

// isCrossHostRedirect reports whether req follows a redirect to a host other than
// the host of the first request in its redirect chain.
func isCrossHostRedirect(req *http.Request) bool {
	first := req
	for first.Response != nil && first.Response.Request != nil {
		first = first.Response.Request
	}

	if first == req || first.URL == nil || req.URL == nil {
		return false
	}

	return !strings.EqualFold(first.URL.Host, req.URL.Host)
}
