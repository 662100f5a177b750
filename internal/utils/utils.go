package utils

import (
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"regexp"
	"strings"
)

var (
	// textContentTypePatterns is a slice of regular expressions that match content types
	// considered to be text-based. This includes "text/*", "application/json",
	// "application/*+json" and "application/samlmetadata+xml".
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile("^application/json$"),
		regexp.MustCompile(`^application/[a-z0-9.\-]+\+json$`),
		regexp.MustCompile(`^application/samlmetadata\+xml`),
	}
)

// ErrInvalidKeyValue indicates that a key-value pair could not be parsed.
var ErrInvalidKeyValue = errors.New("invalid key-value pair")

// SafeUint64ToInt64 converts an uint64 value to an int64 safely,
// clamping values that exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// IsTextContentType checks if the given content type represents a text-based format.
// It supports common text content types like "text/*", "application/json", and "application/samlmetadata+xml".
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// SplitKeyValue splits "key<sep>value" into its trimmed parts.
// The key must not be empty; the value may be.
func SplitKeyValue(pair, separator string) (string, string, error) {
	key, value, found := strings.Cut(pair, separator)
	if !found {
		return "", "", fmt.Errorf("%w: '%s' has no '%s'", ErrInvalidKeyValue, pair, separator)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("%w: '%s' has an empty key", ErrInvalidKeyValue, pair)
	}

	return key, strings.TrimSpace(value), nil
}

// ParseHeaders converts "Name: value" strings into an http.Header.
func ParseHeaders(pairs []string) (http.Header, error) {
	headers := make(http.Header, len(pairs))

	for _, pair := range pairs {
		name, value, err := SplitKeyValue(pair, ":")
		if err != nil {
			return nil, err
		}

		headers.Add(name, value)
	}

	return headers, nil
}

// ParseVariables converts "name=value" strings into a map.
// Later pairs win over earlier ones with the same name.
func ParseVariables(pairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		name, value, err := SplitKeyValue(pair, "=")
		if err != nil {
			return nil, err
		}

		vars[name] = value
	}

	return vars, nil
}

// Map applies a transformation function to each element of a slice and returns a new slice with the results.
func Map[E, S any](v []E, transformFunc func(E) S) []S {
	result := make([]S, len(v))
	for i := range v {
		result[i] = transformFunc(v[i])
	}

	return result
}
