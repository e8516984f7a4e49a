package smoketest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// client wraps the HTTP plumbing for one smoke run.
type client struct {
	base  string
	http  *http.Client
	token string
}

func newClient(cfg *Config) *client {
	return &client{
		base:  cfg.BaseURL,
		http:  &http.Client{Timeout: cfg.Timeout},
		token: cfg.AdminToken,
	}
}

// do sends a JSON request as the given actor and decodes the response into
// out when the status matches. A mismatched status is returned as an error
// carrying the response body.
func (c *client) do(ctx context.Context, method, path string, actorID, role string, body, out any, wantStatus int) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if actorID != "" {
		req.Header.Set("X-Actor-Id", actorID)
		req.Header.Set("X-Actor-Role", role)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: got %d, want %d: %s", method, path, resp.StatusCode, wantStatus, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
