package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/quillchat-dev/quillchat/shared/config"
)

// APIClient handles all communication with the extraction backend.
type APIClient struct {
	Api        config.Api
	HttpClient *http.Client
	token      string
}

// New creates a new client for the backend described by cfg.
func New(api config.Api) *APIClient {
	return &APIClient{
		Api:        api,
		HttpClient: &http.Client{},
	}
}

// SetToken sets the bearer token attached to every request.
// An empty token disables the Authorization header.
func (c *APIClient) SetToken(token string) {
	c.token = token
}

// do is the single, unified helper for making API requests.
func (c *APIClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Api.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}
