package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/apiclient/internal/config"
)

// newTestConfig returns a validated configuration pointing at baseURL with its own storage file.
func newTestConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.BaseURL = baseURL
	cfg.StoragePath = filepath.Join(t.TempDir(), "storage.yaml")

	require.NoError(t, config.ValidateConfig(cfg))

	return cfg
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}
