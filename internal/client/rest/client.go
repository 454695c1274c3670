// Package rest wraps the platform's HTTP API in typed calls. Every request
// carries the session credential; the session object is the only source of
// identity.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/legalconnect/consult-client/internal/config"
	"github.com/legalconnect/consult-client/internal/model"
	"github.com/legalconnect/consult-client/internal/session"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
}

func New(cfg *config.Config, sess *session.Session) *Client {
	return &Client{
		baseURL: cfg.API.BaseURL,
		session: sess,
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
	}
}

func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// doJSON issues one request with a JSON body (may be nil) and decodes the
// response into out (may be nil). Non-2xx responses surface the API error
// body when one is present.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	return c.doJSONHeader(ctx, method, path, nil, body, out)
}

// doJSONHeader is doJSON with extra request headers, for the few endpoints
// that carry identity outside the credential.
func (c *Client) doJSONHeader(ctx context.Context, method, path string, header map[string]string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // .

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
}

func apiError(resp *http.Response) error {
	var apiErr model.APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
		if msg != "" {
			return fmt.Errorf("api error (status %d): %s", resp.StatusCode, msg)
		}
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
