// Package client talks to the feedback API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aanand-mishra/feedback/internal/types"
)

const feedbacksPath = "/api/feedbacks"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Code)
}

// Client is a small JSON client for /api/feedbacks. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New returns a Client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit POSTs one feedback entry and returns the stored record.
func (c *Client) Submit(ctx context.Context, req types.FeedbackRequest) (types.FeedbackRecord, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return types.FeedbackRecord{}, fmt.Errorf("client.Submit: encode: %w", err)
	}

	var record types.FeedbackRecord
	if err := c.do(ctx, http.MethodPost, feedbacksPath, bytes.NewReader(body), &record); err != nil {
		return types.FeedbackRecord{}, fmt.Errorf("client.Submit: %w", err)
	}

	return record, nil
}

// List GETs every stored feedback entry.
func (c *Client) List(ctx context.Context) ([]types.FeedbackRecord, error) {
	var records []types.FeedbackRecord
	if err := c.do(ctx, http.MethodGet, feedbacksPath, nil, &records); err != nil {
		return nil, fmt.Errorf("client.List: %w", err)
	}

	if records == nil {
		records = []types.FeedbackRecord{}
	}

	return records, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &StatusError{Method: method, URL: url, Code: res.StatusCode, Body: string(snippet)}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
