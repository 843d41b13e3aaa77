package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/paykit/errors"
)

// Operation statuses recorded on spans and metrics.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// OperationContext tracks one public client operation from start to end.
type OperationContext struct {
	// OperationName is the client method, e.g. "CreateInvoice".
	OperationName string
	// Class is the error class failures of this operation are scoped to.
	Class     errors.Operation
	RequestID string
	Resource  string
	StartTime time.Time
	Metrics   *Metrics
	Tracer    trace.Tracer
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped. If tracer is nil
// the global paykit tracer is used.
func NewOperationContext(operationName string, class errors.Operation, requestID, resource string, metrics *Metrics, tracer trace.Tracer) *OperationContext {
	return &OperationContext{
		OperationName: operationName,
		Class:         class,
		RequestID:     requestID,
		Resource:      resource,
		StartTime:     time.Now(),
		Metrics:       metrics,
		Tracer:        tracer,
	}
}

// operationContextKey is the context key for OperationContext.
type operationContextKey struct{}

// WithOperationContext stores an OperationContext in the context.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, operationContextKey{}, oc)
}

// OperationContextFromContext retrieves the OperationContext from context, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	if oc, ok := ctx.Value(operationContextKey{}).(*OperationContext); ok {
		return oc
	}
	return nil
}

// Start opens the operation span and stores oc in the returned context.
func (oc *OperationContext) Start(ctx context.Context) (context.Context, trace.Span) {
	tracer := oc.Tracer
	if tracer == nil {
		tracer = Tracer(InstrumentationName)
	}
	ctx, span := tracer.Start(ctx, SpanOperation+"."+oc.OperationName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrOperationName, oc.OperationName),
			attribute.String(AttrOperationKind, oc.Class.String()),
			attribute.String(AttrRequestID, oc.RequestID),
			attribute.String(AttrResource, oc.Resource),
		),
	)
	return WithOperationContext(ctx, oc), span
}

// End closes the span and records the operation outcome. For an AppError
// the kind and upstream code are attached to the span and counted.
func (oc *OperationContext) End(ctx context.Context, span trace.Span, err error) {
	duration := time.Since(oc.StartTime)
	status := StatusOK

	if err != nil {
		status = StatusError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		if appErr, ok := errors.AsAppError(err); ok {
			span.SetAttributes(attribute.String(AttrErrorKind, string(appErr.Kind)))
			if appErr.HasCode() {
				span.SetAttributes(attribute.String(AttrErrorCode, appErr.Code))
			}
		}
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordOperation(ctx, oc.OperationName, status, duration)
		if err != nil {
			oc.Metrics.RecordError(ctx, string(errors.KindOf(err)), oc.Class.String())
		}
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
