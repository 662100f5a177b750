package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

import "strings"

// UserAgentProvider supplies the User-Agent header value for outgoing requests.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// SimpleUserAgentProvider returns the same User-Agent for every request.
type SimpleUserAgentProvider struct {
	userAgent string
}

// NewSimpleUserAgentProvider creates a provider for a fixed User-Agent string.
func NewSimpleUserAgentProvider(userAgent string) UserAgentProvider {
	return &SimpleUserAgentProvider{userAgent: userAgent}
}

// GetUserAgent returns a User-Agent string.
func (p *SimpleUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}

// BuildUserAgent formats a product token in the "product/version (comment)" form.
// Whitespace inside the product and version would split the token, so it is replaced with '-'.
func BuildUserAgent(product, productVersion, comment string) string {
	token := strings.Join(strings.Fields(product), "-")

	if productVersion = strings.Join(strings.Fields(productVersion), "-"); productVersion != "" {
		token += "/" + productVersion
	}

	if comment = strings.TrimSpace(comment); comment != "" {
		token += " (" + comment + ")"
	}

	return token
}
