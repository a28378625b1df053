package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// TraceHeader carries the request trace ID in and out
const TraceHeader = "X-Trace-ID"

type ctxKey int

const loggerKey ctxKey = iota

// LoggerMiddleware tags every request with a trace ID and logs its outcome.
// An incoming X-Trace-ID is reused when it is a valid UUID.
func LoggerMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}
			w.Header().Set(TraceHeader, traceID)

			reqLogger := logger.With("trace_id", traceID)
			ctx := context.WithValue(r.Context(), loggerKey, reqLogger)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("request finished",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// LoggerFromContext returns the request logger, or a discarding one
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
