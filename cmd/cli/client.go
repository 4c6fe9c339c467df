package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// apiClient is a thin JSON client for the GoBank HTTP API.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// apiError is a non-2xx response.
type apiError struct {
	StatusCode int
	Err        string `json:"error"`
	Message    string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Err, e.Message, e.StatusCode)
	}
	if e.Err != "" {
		return fmt.Sprintf("%s (status %d)", e.Err, e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type requestOption func(*http.Request)

func withIdempotencyKey(key string) requestOption {
	return func(r *http.Request) {
		if key != "" {
			r.Header.Set("Idempotency-Key", key)
		}
	}
}

// do sends body as JSON and decodes a 2xx response into out. Responses with
// status 409 from the consistency check are decoded too and reported as an
// apiError so callers can print the report.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any, opts ...requestOption) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apiError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		if out != nil && resp.StatusCode == http.StatusConflict {
			_ = json.Unmarshal(data, out)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
