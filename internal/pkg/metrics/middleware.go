package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// WrapResponse returns w as a status-capturing writer, reusing it when an
// outer middleware already wrapped it.
func WrapResponse(w http.ResponseWriter, r *http.Request) middleware.WrapResponseWriter {
	if ww, ok := w.(middleware.WrapResponseWriter); ok {
		return ww
	}
	return middleware.NewWrapResponseWriter(w, r.ProtoMajor)
}

// ResponseStatus reports the status written through ww, 200 when the handler
// never wrote a header.
func ResponseStatus(ww middleware.WrapResponseWriter) int {
	if status := ww.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

// PrometheusMiddleware records request count, latency and in-flight requests.
// Requests to metricsPath are passed through untracked.
func PrometheusMiddleware(registry Registry, metricsPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == metricsPath {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			registry.IncHTTPRequestsInFlight()
			defer registry.DecHTTPRequestsInFlight()

			ww := WrapResponse(w, r)
			next.ServeHTTP(ww, r)

			registry.RecordHTTPRequest(
				r.Method,
				GetRoutePath(r),
				FormatStatusCode(ResponseStatus(ww)),
				time.Since(start).Seconds(),
			)
		})
	}
}
