package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPDoer is the http.Client subset used by the agent.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// BaseClient provides JSON POST/GET helpers against the coordinator.
type BaseClient struct {
	baseURL string
	client  HTTPDoer
}

// NewBaseClient builds a client with the given base URL.
func NewBaseClient(baseURL string, client HTTPDoer) *BaseClient {
	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// NewDefaultHTTPClient returns an *http.Client with a bounded round-trip
// timeout; a hung coordinator surfaces as a failure, not a stall.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// PostJSON sends the request body and decodes the JSON response into out.
func (c *BaseClient) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *BaseClient) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
