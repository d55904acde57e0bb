// Package remote talks to the key-value endpoint that stores the cart document.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-send request id.
const RequestIDHeader = "X-Request-ID"

var (
	// ErrSendFailed indicates the cart could not be written remotely.
	ErrSendFailed = errors.New("sending cart data failed")
	// ErrFetchFailed indicates the cart could not be read remotely.
	ErrFetchFailed = errors.New("fetching cart data failed")
)

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Method string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s cart: unexpected status %d %s", e.Method, e.Code, http.StatusText(e.Code))
}

// Is maps the status error onto the sentinel for its method.
func (e *StatusError) Is(target error) bool {
	if e.Method == http.MethodGet {
		return target == ErrFetchFailed
	}
	return target == ErrSendFailed
}

type requestIDKey struct{}

// WithRequestID attaches id to ctx so it is sent with the request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// Client reads and writes the cart document at a fixed URL.
type Client struct {
	url    string
	http   *http.Client
	logger logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the cart document at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:    url,
		http:   http.DefaultClient,
		logger: logging.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the cart document URL.
func (c *Client) URL() string {
	return c.url
}

// PutCart writes state as JSON. The response body is ignored; any non-2xx
// status or transport error yields an error matching ErrSendFailed.
func (c *Client) PutCart(ctx context.Context, state domain.CartState) error {
	if state.Items == nil {
		state.Items = []domain.CartItem{}
	}
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encode cart: %w", ErrSendFailed, err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug("cart put", "url", c.url, "status", resp.StatusCode, "request_id", req.Header.Get(RequestIDHeader))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: http.MethodPut, Code: resp.StatusCode}
	}
	return nil
}

// GetCart reads the cart document. A JSON null body (nothing stored yet)
// yields an empty cart.
func (c *Client) GetCart(ctx context.Context) (domain.CartState, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.CartState{}, &StatusError{Method: http.MethodGet, Code: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.CartState{}, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	state := domain.NewCartState()
	if trimmed := strings.TrimSpace(string(data)); trimmed == "" || trimmed == "null" {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.CartState{}, fmt.Errorf("%w: decode cart: %w", ErrFetchFailed, err)
	}
	if state.Items == nil {
		state.Items = []domain.CartItem{}
	}
	if err := state.Validate(); err != nil {
		return domain.CartState{}, fmt.Errorf("%w: invalid cart: %w", ErrFetchFailed, err)
	}
	return state, nil
}

func (c *Client) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url, body)
	if err != nil {
		return nil, err
	}
	id, ok := RequestIDFromContext(ctx)
	if !ok {
		id = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, id)
	return req, nil
}
