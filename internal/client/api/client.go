package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/machinebox/graphql"

	"github.com/oshokin/apiclient/internal/auth"
	"github.com/oshokin/apiclient/internal/config"
	"github.com/oshokin/apiclient/internal/logger"
	http_transport "github.com/oshokin/apiclient/internal/transport/http"
	"github.com/oshokin/apiclient/internal/utils"
)

// Client defines the interface for talking to the backend API.
type Client interface {
	// BaseURL returns the base URL relative paths are resolved against.
	BaseURL() string
	// Use registers additional request interceptors, run after the built-in ones.
	Use(interceptors ...http_transport.RequestInterceptor)
	// NewRequest builds a request for path, resolved against the base URL.
	NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error)
	// Do sends a request through the interceptor chain.
	Do(req *http.Request) (*http.Response, error)
	// Request sends a request and reads the whole response.
	Request(ctx context.Context, method, path string, body io.Reader, headers http.Header) (*Response, error)
	// Download streams the response body of a GET request into w.
	Download(ctx context.Context, path string, w io.Writer, opts ...DownloadOption) (*DownloadResult, error)
	// Query runs a GraphQL query and decodes its data into out.
	Query(ctx context.Context, query string, vars map[string]any, out any) error
}

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// baseURL is the base URL for API requests.
	baseURL *url.URL
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// interceptors is the transport running request interceptors.
	interceptors *http_transport.InterceptorTransport
	// graphQLClient is the GraphQL client for making queries.
	graphQLClient *graphql.Client
}

// Option customises a client created by NewClient.
type Option func(*clientOptions)

type clientOptions struct {
	baseTransport http.RoundTripper
	interceptors  []http_transport.RequestInterceptor
}

// WithBaseTransport replaces the innermost transport (http.DefaultTransport by default).
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.baseTransport = rt
	}
}

// WithInterceptors registers additional request interceptors at construction time.
func WithInterceptors(interceptors ...http_transport.RequestInterceptor) Option {
	return func(o *clientOptions) {
		o.interceptors = append(o.interceptors, interceptors...)
	}
}

// DownloadOption customises a single Download call.
type DownloadOption func(*downloadOptions)

type downloadOptions struct {
	progress func(contentLength int64) io.Writer
}

// WithProgress mirrors the downloaded bytes into the writer returned by newProgress.
// newProgress receives the announced content length (-1 when unknown) and may return nil.
func WithProgress(newProgress func(contentLength int64) io.Writer) DownloadOption {
	return func(o *downloadOptions) {
		o.progress = newProgress
	}
}

// NewClient creates a client bound to cfg.BaseURL whose requests carry the token
// returned by tokenProvider at the time each request is sent.
func NewClient(cfg *config.Config, tokenProvider auth.TokenProvider, opts ...Option) (*ClientImpl, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if tokenProvider == nil {
		return nil, ErrNilTokenProvider
	}

	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	options := clientOptions{baseTransport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&options)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = http_transport.DefaultUserAgent()
	}

	timeout := cfg.ParsedTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	// Built-in interceptors first: the bearer interceptor must see the final request,
	// user interceptors may still inspect or extend it.
	interceptors := http_transport.NewInterceptorTransport(
		http_transport.NewLogTransport(options.baseTransport, cfg.ParsedMaxLogLength),
		http_transport.NewRequestIDInterceptor(),
		http_transport.NewUserAgentInterceptor(utils.NewSimpleUserAgentProvider(userAgent)),
		http_transport.NewBearerAuthInterceptor(tokenProvider),
	)
	interceptors.Use(options.interceptors...)

	httpClient := &http.Client{
		Transport: interceptors,
		Timeout:   timeout,
	}

	client := &ClientImpl{
		baseURL:      baseURL,
		httpClient:   httpClient,
		interceptors: interceptors,
	}

	graphQLPath := cfg.GraphQLPath
	if graphQLPath == "" {
		graphQLPath = config.DefaultGraphQLPath
	}

	graphQLURL, err := client.ResolveURL(graphQLPath)
	if err != nil {
		return nil, fmt.Errorf("invalid GraphQL path: %w", err)
	}

	client.graphQLClient = graphql.NewClient(graphQLURL, graphql.WithHTTPClient(httpClient))
	client.graphQLClient.Log = func(s string) {
		logger.Debug(context.Background(), s)
	}

	return client, nil
}

func parseBaseURL(rawBaseURL string) (*url.URL, error) {
	rawBaseURL = strings.TrimSpace(rawBaseURL)
	if rawBaseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	baseURL, err := url.Parse(rawBaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if !baseURL.IsAbs() || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidBaseURL, rawBaseURL)
	}

	return baseURL, nil
}

// BaseURL returns the base URL of the API.
func (c *ClientImpl) BaseURL() string {
	return c.baseURL.String()
}

// HTTPClient returns the underlying HTTP client. Requests sent through it pass the interceptors too.
func (c *ClientImpl) HTTPClient() *http.Client {
	return c.httpClient
}

// Use registers additional request interceptors.
func (c *ClientImpl) Use(interceptors ...http_transport.RequestInterceptor) {
	c.interceptors.Use(interceptors...)
}

// ResolveURL resolves path against the base URL.
// Absolute and protocol-relative URLs are not joined; otherwise the base URL and path are joined
// with exactly one slash between them, so a base path prefix is never dropped.
func (c *ClientImpl) ResolveURL(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid request path '%s': %w", path, err)
	}

	if ref.IsAbs() {
		return ref.String(), nil
	}

	// Protocol-relative "//host/path" keeps its host and takes the base URL's scheme.
	if ref.Host != "" {
		return c.baseURL.ResolveReference(ref).String(), nil
	}

	base := c.baseURL.String()
	if path == "" {
		return base, nil
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/"), nil
}

// NewRequest builds a request for path, resolved against the base URL.
func (c *ClientImpl) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	route, err := c.ResolveURL(path)
	if err != nil {
		return nil, err
	}

	if body == nil {
		body = http.NoBody
	}

	return http.NewRequestWithContext(ctx, method, route, body)
}

// Do sends a request through the interceptor chain.
func (c *ClientImpl) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// Request sends a request and reads the whole response.
// For a non-2xx status both the response and an ErrUnexpectedHTTPStatus error are returned.
func (c *ClientImpl) Request(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers http.Header,
) (*Response, error) {
	request, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	for name, values := range headers {
		for _, value := range values {
			request.Header.Add(name, value)
		}
	}

	startTime := time.Now()

	response, err := c.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	result := &Response{
		StatusCode: response.StatusCode,
		Status:     response.Status,
		Header:     response.Header,
		Body:       responseBody,
		Duration:   time.Since(startTime),
	}

	if !result.IsSuccess() {
		return result, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return result, nil
}

// Download streams the response body of a GET request for path into w.
func (c *ClientImpl) Download(
	ctx context.Context,
	path string,
	w io.Writer,
	opts ...DownloadOption,
) (*DownloadResult, error) {
	var options downloadOptions
	for _, opt := range opts {
		opt(&options)
	}

	request, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	result := &DownloadResult{
		StatusCode:    response.StatusCode,
		ContentLength: response.ContentLength,
	}

	if !isSuccessStatus(response.StatusCode) {
		return result, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	if options.progress != nil {
		if progress := options.progress(response.ContentLength); progress != nil {
			w = io.MultiWriter(w, progress)
		}
	}

	result.BytesWritten, err = io.Copy(w, response.Body)
	if err != nil {
		return result, fmt.Errorf("failed to copy response body: %w", err)
	}

	return result, nil
}

// Query runs a GraphQL query against the configured GraphQL endpoint.
func (c *ClientImpl) Query(ctx context.Context, query string, vars map[string]any, out any) error {
	graphQLRequest := graphql.NewRequest(query)

	for name, value := range vars {
		graphQLRequest.Var(name, value)
	}

	if err := c.graphQLClient.Run(ctx, graphQLRequest, out); err != nil {
		return fmt.Errorf("graphql query failed: %w", err)
	}

	return nil
}
