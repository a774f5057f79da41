package middleware

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

// AccessLog writes one line per request after it completes. The trace id is
// taken from the OpenTelemetry span context when an upstream tracer set one.
func AccessLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now().UTC()
			err := next(c)
			if err != nil {
				// Let echo's error handler write the status before logging it.
				c.Error(err)
			}

			req := c.Request()
			log.Printf(
				"type: access, method: %s, path: %s, status: %d, user: %s, requestID: %s, traceID: %s, latency: %s",
				req.Method,
				req.URL.Path,
				c.Response().Status,
				identity(c),
				c.Response().Header().Get(echo.HeaderXRequestID),
				traceID(req.Context()),
				time.Since(start),
			)
			return nil
		}
	}
}

func traceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return "-"
	}
	// Trace ids are 16 bytes, the same size as a UUID.
	return uuid.UUID(sc.TraceID()).String()
}
