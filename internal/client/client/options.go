package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
)

// Option configures an HTTPClient during construction in New.
type Option func(*HTTPClient) error

// WithLogger routes client and transport diagnostics to l.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) error {
		c.logger = l.With("component", "api_client")
		return nil
	}
}

// WithHTTPTimeout bounds a single ordinary request. Zero keeps the transport
// default.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *HTTPClient) error {
		if d < 0 {
			return fmt.Errorf("http timeout must be >= 0")
		}
		c.httpTimeout = d
		return nil
	}
}

// WithHealthTimeout sets the deadline of the connectivity probe.
func WithHealthTimeout(d time.Duration) Option {
	return func(c *HTTPClient) error {
		if d <= 0 {
			return fmt.Errorf("health timeout must be > 0")
		}
		c.healthTimeout = d
		return nil
	}
}

// WithDebug enables resty request/response dumps through the logger.
// Dumps include the bearer token; keep it off outside development.
func WithDebug(enabled bool) Option {
	return func(c *HTTPClient) error {
		c.debug = enabled
		return nil
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) error {
		if rt == nil {
			return fmt.Errorf("transport must not be nil")
		}
		c.transport = rt
		return nil
	}
}
