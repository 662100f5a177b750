package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	contentTypeHeader = "Content-Type"
	acceptHeader      = "Accept"
	jsonContentType   = "application/json"
)

// FetchJSON sends a GET request for path with the given query and decodes the JSON body.
// Query parameters are added to any already present in path.
func FetchJSON[T any](ctx context.Context, c Client, path string, query url.Values) (*FetchJSONResult[T], error) {
	return SendJSON[T](ctx, c, http.MethodGet, path, query, nil)
}

// SendJSON sends payload encoded as JSON (nothing when payload is nil) and decodes the JSON body.
func SendJSON[T any](
	ctx context.Context,
	c Client,
	method, path string,
	query url.Values,
	payload any,
) (*FetchJSONResult[T], error) {
	var body io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}

		body = bytes.NewReader(encoded)
	}

	request, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		// Parameters already present in path are kept.
		merged := request.URL.Query()

		for name, values := range query {
			for _, value := range values {
				merged.Add(name, value)
			}
		}

		request.URL.RawQuery = merged.Encode()
	}

	request.Header.Set(acceptHeader, jsonContentType)

	if payload != nil {
		request.Header.Set(contentTypeHeader, jsonContentType)
	}

	response, err := c.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if !isSuccessStatus(response.StatusCode) {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	if response.StatusCode == http.StatusNoContent {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, nil
	}

	var result T
	if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &FetchJSONResult[T]{
		Data:       &result,
		StatusCode: response.StatusCode,
	}, nil
}
