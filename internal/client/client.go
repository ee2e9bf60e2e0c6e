// Package client talks to the tracker API and holds the client-side state
// cycle that the TUI and the CLI drive.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"apptrack/internal/tracker"
)

// Client is the HTTP client for the tracker API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API at baseURL, e.g. "http://127.0.0.1:4500".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// List fetches all records, ordered by updatedAt descending.
func (c *Client) List(ctx context.Context) ([]tracker.Record, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/applications", nil)
	if err != nil {
		return nil, err
	}
	var records []tracker.Record
	if err := decodeJSON(resp, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create submits a new application and returns the stored record.
func (c *Client) Create(ctx context.Context, patch tracker.Patch) (tracker.Record, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/applications", patch)
	if err != nil {
		return tracker.Record{}, err
	}
	var rec tracker.Record
	if err := decodeJSON(resp, &rec); err != nil {
		return tracker.Record{}, err
	}
	return rec, nil
}

// Update merges patch into the record with the given id and returns the
// updated record.
func (c *Client) Update(ctx context.Context, id string, patch tracker.Patch) (tracker.Record, error) {
	resp, err := c.do(ctx, http.MethodPut, "/api/applications/"+id, patch)
	if err != nil {
		return tracker.Record{}, err
	}
	var rec tracker.Record
	if err := decodeJSON(resp, &rec); err != nil {
		return tracker.Record{}, err
	}
	return rec, nil
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/applications/"+id, nil)
	if err != nil {
		return err
	}
	var confirm map[string]string
	return decodeJSON(resp, &confirm)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server not reachable — is apptrack serving? (%w)", err)
	}
	return resp, nil
}

func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("server returned %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
