// Package client talks to a running visualizer's render API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIError is an error response from the render API
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d %s: %s", e.Status, e.Code, e.Message)
}

// Health is the body of GET /health
type Health struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Sessions  int    `json:"sessions"`
}

// Client renders plots through POST /api/render
type Client struct {
	client  *resty.Client
	baseURL string
}

// New creates a client for the server at baseURL
func New(baseURL string) *Client {
	client := resty.New()
	client.SetTimeout(60 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(time.Second)
	// uploads are rewound so a retry sends the whole file again
	client.SetRetryResetReaders(true)

	return &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Render uploads data as filename and returns the PNG the server drew
func (c *Client) Render(ctx context.Context, filename string, data []byte, x, y, kind string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"x":    x,
			"y":    y,
			"kind": kind,
		}).
		Post(c.baseURL + "/api/render")
	if err != nil {
		return nil, fmt.Errorf("failed to call render API: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, decodeError(resp)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "image/png" {
		return nil, fmt.Errorf("render API returned %q instead of a PNG", ct)
	}
	return resp.Body(), nil
}

// Health fetches the server's health report
func (c *Client) Health(ctx context.Context) (*Health, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.baseURL + "/health")
	if err != nil {
		return nil, fmt.Errorf("failed to call health API: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, decodeError(resp)
	}

	var h Health
	if err := json.Unmarshal(resp.Body(), &h); err != nil {
		return nil, fmt.Errorf("failed to parse health response: %w", err)
	}
	return &h, nil
}

func decodeError(resp *resty.Response) error {
	apiErr := &APIError{Status: resp.StatusCode()}
	if err := json.Unmarshal(resp.Body(), apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unexpected_response"
		apiErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	return apiErr
}
