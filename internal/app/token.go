package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oshokin/apiclient/internal/config"
	"github.com/oshokin/apiclient/internal/logger"
	"github.com/oshokin/apiclient/internal/storage"
)

// visibleTokenChars is how many characters a masked token keeps at each end.
const visibleTokenChars = 4

// ExecuteTokenSetCommand stores the bearer token used by subsequent requests.
func ExecuteTokenSetCommand(ctx context.Context, cfg *config.Config, token string) {
	if err := runTokenSet(ctx, cfg, token); err != nil {
		logger.Fatalf(ctx, "Failed to store token: %v", err)
	}
}

// ExecuteTokenShowCommand prints the stored token, masked unless reveal is set.
func ExecuteTokenShowCommand(ctx context.Context, cfg *config.Config, reveal bool) {
	if err := runTokenShow(cfg, reveal, os.Stdout); err != nil {
		logger.Fatalf(ctx, "Failed to show token: %v", err)
	}
}

// ExecuteTokenListCommand prints every stored key with its masked value.
func ExecuteTokenListCommand(ctx context.Context, cfg *config.Config) {
	if err := runTokenList(ctx, cfg, os.Stdout); err != nil {
		logger.Fatalf(ctx, "Failed to list stored values: %v", err)
	}
}

// ExecuteTokenClearCommand removes the stored token.
func ExecuteTokenClearCommand(ctx context.Context, cfg *config.Config) {
	if err := runTokenClear(ctx, cfg); err != nil {
		logger.Fatalf(ctx, "Failed to clear token: %v", err)
	}
}

func runTokenSet(ctx context.Context, cfg *config.Config, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	s, err := openStorage(cfg)
	if err != nil {
		return err
	}

	if err = s.Set(cfg.TokenKey, token); err != nil {
		return err
	}

	if cfg.StorageDriver == storage.DriverMemory {
		logger.Warn(ctx, "Memory storage does not outlive this process, the token is gone once it exits")
	}

	logger.Infof(ctx, "Token stored under '%s'", cfg.TokenKey)

	return nil
}

func runTokenShow(cfg *config.Config, reveal bool, stdout io.Writer) error {
	s, err := openStorage(cfg)
	if err != nil {
		return err
	}

	token, ok, err := s.Get(cfg.TokenKey)
	if err != nil {
		return err
	}

	if !ok || token == "" {
		return ErrTokenNotFound
	}

	if !reveal {
		token = maskToken(token)
	}

	if _, err = fmt.Fprintln(stdout, token); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}

	return nil
}

func runTokenList(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	s, err := openStorage(cfg)
	if err != nil {
		return err
	}

	keys, err := s.Keys()
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		logger.Info(ctx, "Storage is empty")

		return nil
	}

	for _, key := range keys {
		value, ok, getErr := s.Get(key)
		if getErr != nil {
			return getErr
		}

		if !ok {
			continue
		}

		marker := ""
		if key == cfg.TokenKey {
			marker = " (token)"
		}

		if _, err = fmt.Fprintf(stdout, "%s\t%s%s\n", key, maskToken(value), marker); err != nil {
			return fmt.Errorf("failed to write stored values: %w", err)
		}
	}

	return nil
}

func runTokenClear(ctx context.Context, cfg *config.Config) error {
	s, err := openStorage(cfg)
	if err != nil {
		return err
	}

	if err = s.Remove(cfg.TokenKey); err != nil {
		return err
	}

	logger.Infof(ctx, "Token '%s' cleared", cfg.TokenKey)

	return nil
}

// maskToken keeps only both ends of long tokens.
func maskToken(token string) string {
	if len(token) <= 2*visibleTokenChars {
		return strings.Repeat("*", len(token))
	}

	return token[:visibleTokenChars] + "..." + token[len(token)-visibleTokenChars:]
}
