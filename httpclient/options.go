package httpclient

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/paykit/logger"
	"github.com/kbukum/paykit/observability"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for request tracing. Defaults to Nop.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l.WithComponent("httpclient")
		}
	}
}

// WithMetrics records request metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(a *Adapter) {
		if t != nil {
			a.tracer = t
		}
	}
}

// WithHTTPClient replaces the underlying client. Timeout and TLS from the
// config are not applied to it.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) {
		if c != nil {
			a.httpClient = c
		}
	}
}
