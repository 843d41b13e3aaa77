// Package observability provides OpenTelemetry tracing and metrics for the
// payment client.
//
// Every public client operation runs inside an OperationContext span, and
// the HTTP adapter records request metrics. Nothing is exported until Setup
// is called with an enabled Config:
//
//	shutdown, err := observability.Setup(ctx, cfg.Tracing, version.Version, cfg.Environment)
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewDefaultMetrics()
//	client, err := bitpay.New(cfg, bitpay.WithMetrics(metrics))
package observability
