package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/apiclient/internal/auth"
	api_client "github.com/oshokin/apiclient/internal/client/api"
	"github.com/oshokin/apiclient/internal/config"
	"github.com/oshokin/apiclient/internal/storage"
)

// readArgument returns the value itself, or the content of the file it names when prefixed with '@'.
func readArgument(value string) ([]byte, error) {
	filename, isFile := strings.CutPrefix(value, "@")
	if !isFile {
		return []byte(value), nil
	}

	content, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", filename, err)
	}

	return content, nil
}

func openStorage(cfg *config.Config) (storage.Storage, error) {
	s, err := storage.New(cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return s, nil
}

// newTokenProvider prefers a token given on the command line over the stored one.
func newTokenProvider(cfg *config.Config, s storage.Storage) auth.TokenProvider {
	if cfg.Token != "" {
		return auth.NewStaticTokenProvider(cfg.Token)
	}

	return auth.NewStorageTokenProvider(s, cfg.TokenKey)
}

func newClient(cfg *config.Config) (*api_client.ClientImpl, error) {
	s, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	client, err := api_client.NewClient(cfg, newTokenProvider(cfg, s))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API client: %w", err)
	}

	return client, nil
}
