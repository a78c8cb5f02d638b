package log

import (
	"context"

	"github.com/google/uuid"
)

// TraceIDKey is the log field name carrying the request trace ID.
const TraceIDKey = "trace_id"

type contextKey string

const traceContextKey contextKey = TraceIDKey

// SetTraceID returns a context carrying the given trace ID.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceContextKey, traceID)
}

// GetTraceID returns the trace ID carried by the context, if any.
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(traceContextKey).(string); ok {
		return traceID
	}
	return ""
}

// EnsureTraceID returns a context that carries a trace ID, generating
// one when absent, along with the effective ID.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}
