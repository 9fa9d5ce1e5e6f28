// Package client is a typed Go client for the workbench REST API. Notes and
// chats are read through a query cache and written with optimistic updates.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/workbench-backend/pkg/querycache"
)

const defaultTimeout = 15 * time.Second

// FieldError is a per-field validation failure reported by the server.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api: %d %s: %s: %s", e.Status, e.Message, e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type envelope[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data"`
	Error   string       `json:"error"`
	Fields  []FieldError `json:"fields"`
}

// Client talks to one API server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *querycache.Cache
	log        *slog.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// WithLogger sets the logger; requests are logged at debug level.
func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.log = l } }

// WithToken sets the bearer access token.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// WithCache replaces the default query cache.
func WithCache(qc *querycache.Cache) Option { return func(c *Client) { c.cache = qc } }

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      querycache.New(0),
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("adapter", "workbench_client")
	return c
}

// Cache exposes the query cache backing list reads.
func (c *Client) Cache() *querycache.Cache { return c.cache }

// SetToken replaces the bearer access token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends body, if any, as JSON and returns the data of the response
// envelope. Non-2xx responses become *APIError.
func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var zero T

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("client: encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return zero, fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.log.DebugContext(ctx, "api request", slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("client: read body: %w", err)
	}

	var env envelope[T]
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return zero, fmt.Errorf("client: decode response: %w", err)
		}
	}

	if resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.log.DebugContext(ctx, "api error",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("error", msg))
		return zero, &APIError{Status: resp.StatusCode, Message: msg, Fields: env.Fields}
	}
	return env.Data, nil
}
