package metrics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetRoutePath returns the chi route pattern so metrics are grouped by route
// rather than by short code
func GetRoutePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	return NormalizePath(r.URL.Path)
}

// NormalizePath maps raw paths onto route patterns to bound label cardinality
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	switch {
	case path == "/health", path == "/ready", path == "/metrics", path == "/links", path == "/redoc":
		return path
	case strings.HasPrefix(path, "/swagger"):
		return "/swagger/*"
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(segments) == 2 && segments[0] == "links" && segments[1] != "":
		return "/links/{shortCode}"
	case len(segments) == 1 && segments[0] != "":
		return "/{shortCode}"
	}

	return path
}

// FormatStatusCode converts an integer status code to string
func FormatStatusCode(statusCode int) string {
	return strconv.Itoa(statusCode)
}
