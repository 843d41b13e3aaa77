package bitpay

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/paykit/config"
	"github.com/kbukum/paykit/envelope"
	"github.com/kbukum/paykit/errors"
	"github.com/kbukum/paykit/httpclient"
	"github.com/kbukum/paykit/logger"
	"github.com/kbukum/paykit/observability"
)

// Resource paths relative to the base URL.
const (
	pathInvoices   = "invoices"
	pathBills      = "bills"
	pathDeliveries = "deliveries"
	pathRates      = "rates"
)

// Client is a session with the payment service. All fields are fixed by New,
// so a Client may be shared between goroutines.
type Client struct {
	adapter     *httpclient.Adapter
	token       string
	environment string

	log        *logger.Logger
	metrics    *observability.Metrics
	tracer     trace.Tracer
	httpClient *http.Client
	guid       func() string
}

// New creates a client from cfg. A nil cfg is config.Default(): the
// production environment with no token. cfg is not modified.
//
// A configuration that cannot be turned into a working transport, such as a
// relative base URL or unreadable TLS files, is a CONNECTION_ERROR.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c := *cfg
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, connectionError(err)
	}

	client := &Client{
		token:       c.Token,
		environment: c.Environment,
		tracer:      observability.Tracer(observability.InstrumentationName),
		guid:        NewGUID,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.log == nil {
		client.log = logger.New(&c.Logging, "paykit")
	}
	client.log = client.log.WithComponent("bitpay")
	if client.metrics == nil && c.Tracing.Enabled {
		if m, err := observability.NewDefaultMetrics(); err == nil {
			client.metrics = m
		}
	}

	httpCfg := httpclient.Config{
		BaseURL: c.ResolveBaseURL(),
		Timeout: c.Timeout,
		Headers: c.Headers,
	}
	if c.TLS.IsEnabled() {
		tlsCfg := c.TLS
		httpCfg.TLS = &tlsCfg
	}
	adapter, err := httpclient.New(httpCfg,
		httpclient.WithLogger(client.log),
		httpclient.WithMetrics(client.metrics),
		httpclient.WithTracer(client.tracer),
		httpclient.WithHTTPClient(client.httpClient),
	)
	if err != nil {
		return nil, connectionError(err)
	}
	client.adapter = adapter

	client.log.Debug("client initialized", logger.Fields(
		"environment", client.environment,
		"base_url", adapter.BaseURL(),
	))
	return client, nil
}

// Environment returns the normalized environment name, test or prod.
func (c *Client) Environment() string { return c.environment }

// BaseURL returns the URL resource paths are resolved against.
func (c *Client) BaseURL() string { return c.adapter.BaseURL() }

func connectionError(err error) error {
	return errors.Scope(errors.OpConnection,
		errors.New(errors.KindTransport, "Error - failed to build configuration : "+err.Error()).
			WithCause(err).
			WithRetryable(false))
}

// begin opens the span of a public operation and attaches a request id to
// ctx. The returned finish function scopes err to class, closes the span and
// logs the outcome. It returns the scoped error.
func (c *Client) begin(ctx context.Context, name string, class errors.Operation, resource string) (context.Context, func(error) error) {
	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.ContextWithRequestID(ctx, requestID)
	}

	oc := observability.NewOperationContext(name, class, requestID, resource, c.metrics, c.tracer)
	ctx, span := oc.Start(ctx)
	log := c.log.WithContext(ctx)

	return ctx, func(err error) error {
		err = errors.Scope(class, err)
		oc.End(ctx, span, err)

		fields := logger.Fields(logger.FieldOperation, name, logger.FieldResource, resource)
		if err != nil {
			log.Warn("operation failed", logger.MergeWithDuration(logger.MergeWithError(fields, err), oc.Duration()))
			return err
		}
		log.Debug("operation completed", logger.MergeWithDuration(fields, oc.Duration()))
		return nil
	}
}

// exchange sends req and returns the envelope payload of the response.
func (c *Client) exchange(ctx context.Context, req httpclient.Request) (json.RawMessage, error) {
	resp, err := c.adapter.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := envelope.Parse(resp.Body)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			appErr.WithStatus(resp.StatusCode)
		}
		return nil, err
	}
	c.log.WithContext(ctx).Debug("payload received", logger.Fields(
		logger.FieldPath, req.Path,
		"payload", envelope.Describe(payload),
	))
	return payload, nil
}

// tokenQuery is the query string of token-authorized reads.
func (c *Client) tokenQuery() []httpclient.QueryParam {
	return []httpclient.QueryParam{{Key: "token", Value: c.token}}
}
