// Package observability provides OpenTelemetry tracing and metrics
// integration. Both are optional: without an initialized provider the
// helpers fall back to the no-op global tracer and meter.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("diascribe"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineProcess)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("diascribe"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("diascribe"))
//	metrics.RecordOperation(ctx, "pipeline", "process", "ok", duration)
package observability
