package http

import (
	"time"

	"github.com/oshokin/apiclient/internal/utils"
	"github.com/oshokin/apiclient/internal/version"
)

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// ProductName is the product token of the default User-Agent.
	ProductName = "apiclient"
	// ProjectURL is advertised in the default User-Agent comment.
	ProjectURL = "https://github.com/oshokin/apiclient"
)

const (
	// AuthorizationHeader is the HTTP header carrying credentials.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the scheme prefix of a bearer credential.
	BearerPrefix = "Bearer "
	// RequestIDHeader is the HTTP header carrying the request correlation ID.
	RequestIDHeader = "X-Request-ID"
	// userAgentHeader is the HTTP header name for User-Agent.
	userAgentHeader = "User-Agent"
)

// DefaultUserAgent is the User-Agent sent when none is configured.
func DefaultUserAgent() string {
	return utils.BuildUserAgent(ProductName, version.Short(), "+"+ProjectURL)
}
