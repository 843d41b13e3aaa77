package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/paykit/errors"
	"github.com/kbukum/paykit/logger"
	"github.com/kbukum/paykit/observability"
	"github.com/kbukum/paykit/version"
)

// Protocol headers sent with every request.
const (
	HeaderAcceptVersion   = "x-accept-version"
	HeaderPluginInfo      = "x-bitpay-plugin-info"
	HeaderAPIFrame        = "x-bitpay-api-frame"
	HeaderAPIFrameVersion = "x-bitpay-api-frame-version"
	HeaderRequestID       = "X-Request-Id"
	contentTypeJSON       = "application/json"
)

// Adapter sends requests to the payment service and returns raw responses.
// It is safe for concurrent use once built.
type Adapter struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
	metrics    *observability.Metrics
	tracer     trace.Tracer
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    logger.Nop(),
		tracer: otel.Tracer(observability.InstrumentationName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// BaseURL returns the URL request paths are resolved against.
func (a *Adapter) BaseURL() string {
	return a.config.BaseURL
}

// Do performs one exchange. Any status code is a successful exchange; a
// failure to send the request or read the body is a TRANSPORT_FAILURE.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	route := routeOf(req.Path)
	ctx, span := a.tracer.Start(ctx, observability.SpanHTTPRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("http.route", route),
		),
	)
	defer span.End()

	log := a.log.WithContext(ctx)
	start := time.Now()
	if a.metrics != nil {
		a.metrics.RecordRequestStart(ctx)
	}

	resp, err := a.send(ctx, req)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if a.metrics != nil {
			a.metrics.RecordRequestEnd(ctx, req.Method, route, "transport_error", duration)
		}
		log.Warn("request failed", logger.MergeWithError(logger.RequestFields(req.Method, req.Path), err))
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if a.metrics != nil {
		a.metrics.RecordRequestEnd(ctx, req.Method, route, strconv.Itoa(resp.StatusCode), duration)
	}
	log.Debug("response received", logger.MergeWithDuration(logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldPath, req.Path,
		logger.FieldStatus, resp.StatusCode,
		"bytes", len(resp.Body),
	), duration))
	return resp, nil
}

func (a *Adapter) send(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, errors.Transport(req.Method, err)
	}

	a.log.WithContext(ctx).Debug("request sent", logger.RequestFields(req.Method, httpReq.URL.Redacted()))

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Transport(req.Method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Transport(req.Method, fmt.Errorf("read response body: %w", err)).
			WithStatus(resp.StatusCode)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		url += "?" + EncodeQuery(req.Query)
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	// Protocol headers last so configuration cannot replace them.
	httpReq.Header.Set(HeaderAcceptVersion, version.APIVersion)
	httpReq.Header.Set(HeaderPluginInfo, version.PluginInfo())
	httpReq.Header.Set(HeaderAPIFrame, version.APIFrame)
	httpReq.Header.Set(HeaderAPIFrameVersion, version.APIFrameVersion)
	if req.Method == http.MethodPost {
		httpReq.Header.Set("Content-Type", contentTypeJSON)
	}
	if id := logger.RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set(HeaderRequestID, id)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))
	return httpReq, nil
}

// routeOf reduces a request path to a low-cardinality route for metrics:
// "bills/42/deliveries" becomes "bills/:id/deliveries".
func routeOf(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 1 {
		segments[1] = ":id"
	}
	return strings.Join(segments, "/")
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
