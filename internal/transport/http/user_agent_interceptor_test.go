package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/apiclient/internal/utils"
	mock_utils "github.com/oshokin/apiclient/internal/utils/mocks"
	"github.com/oshokin/apiclient/internal/version"
)

// TestUserAgentInterceptor_InterceptRequest tests when the provider is consulted.
func TestUserAgentInterceptor_InterceptRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		initial       http.Header
		providerCalls int
		expected      string
	}{
		{
			name:          "missing header",
			initial:       http.Header{},
			providerCalls: 1,
			expected:      "TestAgent/1.0",
		},
		{
			name:          "empty header",
			initial:       http.Header{"User-Agent": {""}},
			providerCalls: 1,
			expected:      "TestAgent/1.0",
		},
		{
			name:          "nil header map",
			initial:       nil,
			providerCalls: 1,
			expected:      "TestAgent/1.0",
		},
		{
			name:          "existing header",
			initial:       http.Header{"User-Agent": {"ExistingAgent/1.0"}},
			providerCalls: 0,
			expected:      "ExistingAgent/1.0",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)

			mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
			mockProvider.EXPECT().GetUserAgent().Return("TestAgent/1.0").Times(tt.providerCalls)

			req := newTestRequest(t)
			req.Header = tt.initial

			result, err := NewUserAgentInterceptor(mockProvider).InterceptRequest(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Header.Get("User-Agent"))
		})
	}
}

// TestUserAgentInterceptor_IntegrationWithSimpleUserAgentProvider tests the interceptor behind a real server.
func TestUserAgentInterceptor_IntegrationWithSimpleUserAgentProvider(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "IntegrationTest/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider := utils.NewSimpleUserAgentProvider("IntegrationTest/1.0")
	transport := NewInterceptorTransport(http.DefaultTransport, NewUserAgentInterceptor(provider))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestUserAgentInterceptor_ErrorHandling tests that transport errors pass through.
func TestUserAgentInterceptor_ErrorHandling(t *testing.T) {
	t.Parallel()

	transport := NewInterceptorTransport(http.DefaultTransport,
		NewUserAgentInterceptor(utils.NewSimpleUserAgentProvider("TestAgent/1.0")))

	// Create request with invalid URL that will definitely fail.
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://[::1]:0", http.NoBody)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.Error(t, err)
	assert.Nil(t, resp)

	_, err = NewUserAgentInterceptor(utils.NewSimpleUserAgentProvider("x")).InterceptRequest(nil)
	require.ErrorIs(t, err, ErrNilRequest)
}

// TestDefaultUserAgent tests that the default User-Agent carries the build version.
func TestDefaultUserAgent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ProductName+"/"+version.Short()+" (+"+ProjectURL+")", DefaultUserAgent())
}
