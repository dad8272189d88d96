package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pagekeep"
)

// DefaultRequestTimeout bounds a single request to the content server.
const DefaultRequestTimeout = 30 * time.Second

// Ensure Client implements pagekeep.ContentService at compile time.
var _ pagekeep.ContentService = (*Client)(nil)

// Client talks to the content server over HTTP/JSON.
//
// The server base URL is read from the settings store on every call, so a
// changed serverUrl takes effect without restarting. When settings cannot
// be read the default server URL is used.
type Client struct {
	settings pagekeep.SettingsService
	baseURL  string
	client   *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL pins the server base URL, bypassing the settings store.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a new Client. settings may be nil when WithBaseURL is
// given.
func NewClient(settings pagekeep.SettingsService, opts ...ClientOption) *Client {
	c := &Client{
		settings: settings,
		client:   &http.Client{Timeout: DefaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server base URL without a trailing slash.
func (c *Client) BaseURL(ctx context.Context) string {
	base := c.baseURL
	if base == "" {
		base = pagekeep.DefaultServerURL
		if c.settings != nil {
			if s, err := c.settings.Settings(ctx); err == nil && s.ServerURL != "" {
				base = s.ServerURL
			}
		}
	}
	return strings.TrimRight(base, "/")
}

// StoreContent posts doc to /store.
func (c *Client) StoreContent(ctx context.Context, doc *pagekeep.CapturedDocument) (*pagekeep.Ack, error) {
	var ack pagekeep.Ack
	if err := c.do(ctx, http.MethodPost, "/store", doc, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ListContent fetches /list-content.
func (c *Client) ListContent(ctx context.Context) ([]*pagekeep.ContentRecord, error) {
	var resp struct {
		Items []*pagekeep.ContentRecord `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/list-content", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []*pagekeep.ContentRecord{}
	}
	return resp.Items, nil
}

// DeleteContent posts {doc_id} to /delete.
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	if id == "" {
		return pagekeep.Errorf(pagekeep.EINVALID, "document id required")
	}
	req := struct {
		DocID string `json:"doc_id"`
	}{DocID: id}
	var ack pagekeep.Ack
	return c.do(ctx, http.MethodPost, "/delete", req, &ack)
}

// Search posts {query} to /search and returns the ranked results.
func (c *Client) Search(ctx context.Context, query string) ([]*pagekeep.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pagekeep.Errorf(pagekeep.EINVALID, "search query required")
	}
	req := struct {
		Query string `json:"query"`
	}{Query: query}
	var resp struct {
		Results []*pagekeep.SearchResult `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, "/search", req, &resp); err != nil {
		return nil, err
	}
	for _, r := range resp.Results {
		r.Date, _ = pagekeep.ParseDate(r.RawDate)
	}
	if resp.Results == nil {
		resp.Results = []*pagekeep.SearchResult{}
	}
	return resp.Results, nil
}

// Health fetches /health. A server that answers with any status other than
// "healthy" is reported as EUNAVAILABLE.
func (c *Client) Health(ctx context.Context) (*pagekeep.Health, error) {
	var h pagekeep.Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	if h.Status != pagekeep.HealthStatusHealthy {
		return &h, pagekeep.Errorf(pagekeep.EUNAVAILABLE, "content server reports %q", h.Status)
	}
	return &h, nil
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	endpoint := c.BaseURL(ctx) + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return pagekeep.Errorf(pagekeep.EINVALID, "invalid server URL %q: %v", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return pagekeep.Errorf(pagekeep.EUNAVAILABLE, "%s %s: %v", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return pagekeep.Errorf(pagekeep.EUNAVAILABLE, "%s %s: reading response: %v", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return pagekeep.Errorf(pagekeep.EINTERNAL, "%s %s: invalid JSON response: %v", method, endpoint, err)
	}
	return nil
}

// statusError converts a non-2xx response into an application error.
// FastAPI-style {"detail": "..."} bodies are used as the message.
func statusError(status int, body []byte) error {
	msg := http.StatusText(status)
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		msg = detail.Detail
	}

	switch {
	case status == http.StatusNotFound:
		return pagekeep.Errorf(pagekeep.ENOTFOUND, "HTTP %d: %s", status, msg)
	case status >= 400 && status < 500:
		return pagekeep.Errorf(pagekeep.EINVALID, "HTTP %d: %s", status, msg)
	case status == http.StatusServiceUnavailable || status == http.StatusBadGateway:
		return pagekeep.Errorf(pagekeep.EUNAVAILABLE, "HTTP %d: %s", status, msg)
	default:
		return pagekeep.Errorf(pagekeep.EINTERNAL, "HTTP %d: %s", status, msg)
	}
}
