package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sp3dr4/xlu/internal/pkg/logging"
	"github.com/sp3dr4/xlu/internal/pkg/metrics"
)

const traceIDHeader = "X-Trace-Id"

// LoggingMiddleware attaches a logger carrying the request and trace IDs to
// the request context and writes one access line per request once the route
// has resolved. Server errors are logged at error level.
func LoggingMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := logging.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))

			traceID := r.Header.Get(traceIDHeader)
			if traceID == "" {
				traceID = logging.GenerateTraceID()
			}
			ctx = logging.WithTraceID(ctx, traceID)
			w.Header().Set(traceIDHeader, traceID)

			logger := logging.NewRequestLogger(ctx, baseLogger)
			ctx = logging.WithLogger(ctx, logger)

			ww := metrics.WrapResponse(w, r)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := metrics.ResponseStatus(ww)
			attrs := []any{
				"method", r.Method,
				"route", metrics.GetRoutePath(r),
				"status_code", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", float64(time.Since(start).Microseconds()) / 1e3,
				"remote_addr", r.RemoteAddr,
			}
			if code := shortCodeParam(r); code != "" {
				attrs = append(attrs, "short_code", code)
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "Request handled", attrs...)
		})
	}
}

// shortCodeParam reads the resolved {shortCode} param. The route context is
// shared with the router, so it is populated once next has run.
func shortCodeParam(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.URLParam("shortCode")
	}
	return ""
}
