// the client package is used by the ui handlers and the cli to call the Komfort REST API.
// The client translates transport, HTTP and validation failures into one human-readable message that can be shown to the end user.
// The client also returns the detailed technical error to the caller for logging (see client/errors.go)
package client

import (
	"log/slog"
	"net/http"
	"strings"
)

// Client handles communication with the Komfort REST API.
//
// Each call is a single attempt: the client does not retry and sets no timeout of its own,
// cancellation is left to the context supplied by the caller.
// A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http client (e.g. to use a custom transport)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request debug logs when the request context has no request logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the API served at baseURL (scheme and host, e.g. http://localhost:8000).
// An empty baseURL produces relative request paths and is only useful with a custom transport.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base url the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}
