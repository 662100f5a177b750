package auth

//go:generate $MOCKGEN -source=token_provider.go -destination=mocks/token_provider_mock.go

import (
	"context"

	"github.com/oshokin/apiclient/internal/logger"
	"github.com/oshokin/apiclient/internal/storage"
)

// DefaultTokenKey is the storage key the bearer token lives under.
const DefaultTokenKey = "token"

// TokenProvider returns the current bearer token.
type TokenProvider interface {
	// Token returns the token and true, or an empty string and false when no token is available.
	Token(ctx context.Context) (string, bool)
}

// StorageTokenProvider reads the token from local storage on every call.
type StorageTokenProvider struct {
	// storage is the key-value store holding the token.
	storage storage.Storage
	// key is the storage key of the token.
	key string
}

// NewStorageTokenProvider creates a provider reading key from s.
// An empty key falls back to DefaultTokenKey.
func NewStorageTokenProvider(s storage.Storage, key string) *StorageTokenProvider {
	if key == "" {
		key = DefaultTokenKey
	}

	return &StorageTokenProvider{
		storage: s,
		key:     key,
	}
}

// Key returns the storage key of the token.
func (p *StorageTokenProvider) Key() string {
	return p.key
}

// Token reads the token from storage. A read failure is reported as a missing token.
func (p *StorageTokenProvider) Token(ctx context.Context) (string, bool) {
	token, found, err := p.storage.Get(p.key)
	if err != nil {
		logger.Debugf(ctx, "Failed to read '%s' from storage, continuing without a token: %v", p.key, err)

		return "", false
	}

	if !found || token == "" {
		return "", false
	}

	return token, true
}

// StaticTokenProvider always returns the same token.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for a fixed token. An empty token means "no token".
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// Token returns the fixed token.
func (p *StaticTokenProvider) Token(_ context.Context) (string, bool) {
	return p.token, p.token != ""
}
