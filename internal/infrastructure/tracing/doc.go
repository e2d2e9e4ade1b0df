/*
Package tracing provides lightweight request tracing for the bridge boundary.

# Overview

Each inbound HTTP call gets a span. A caller that already has a trace can
pass it in the X-Trace-ID and X-Span-ID headers; otherwise a new ULID trace
is started. Both IDs are echoed back on the response so the UI layer can
correlate its own logs.

# Usage

	tracer := tracing.New("bridge", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

Finished spans are buffered (1000) and logged asynchronously; successful
spans at debug level, failed spans at warn.
*/
package tracing
