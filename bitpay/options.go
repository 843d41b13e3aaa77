package bitpay

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/paykit/logger"
	"github.com/kbukum/paykit/observability"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger replaces the logger built from config.Config.Logging.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records operation and request metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithHTTPClient sends requests through hc. Timeout and TLS settings of the
// config are not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithGUIDFunc replaces the invoice idempotency key generator.
func WithGUIDFunc(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.guid = fn
		}
	}
}
