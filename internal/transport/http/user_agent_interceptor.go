package http

import (
	"net/http"

	"github.com/oshokin/apiclient/internal/utils"
)

// UserAgentInterceptor injects a User-Agent header into requests that do not have one.
type UserAgentInterceptor struct {
	// userAgentProvider provides the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
}

// NewUserAgentInterceptor creates a UserAgentInterceptor backed by userAgentProvider.
func NewUserAgentInterceptor(userAgentProvider utils.UserAgentProvider) *UserAgentInterceptor {
	return &UserAgentInterceptor{userAgentProvider: userAgentProvider}
}

// InterceptRequest implements RequestInterceptor.
// The provider is only consulted when the header is missing or empty.
func (i *UserAgentInterceptor) InterceptRequest(req *http.Request) (*http.Request, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if req.Header == nil {
		req.Header = make(http.Header)
	}

	if req.Header.Get(userAgentHeader) == "" {
		req.Header.Set(userAgentHeader, i.userAgentProvider.GetUserAgent())
	}

	return req, nil
}
