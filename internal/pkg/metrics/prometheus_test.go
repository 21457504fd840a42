package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/xlu/config"
)

func testConfig() config.MetricsConfig {
	return config.MetricsConfig{
		Enabled:   true,
		Path:      "/metrics",
		Namespace: "test",
		Subsystem: "test",
	}
}

func TestNewPrometheusRegistry(t *testing.T) {
	tests := []struct {
		name   string
		config config.MetricsConfig
	}{
		{
			name: "with runtime collectors",
			config: config.MetricsConfig{
				Enabled:        true,
				Path:           "/metrics",
				Namespace:      "xlu",
				Subsystem:      "shortlinks",
				CollectRuntime: true,
			},
		},
		{
			name:   "minimal config",
			config: testConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewPrometheusRegistry(tt.config)
			require.NoError(t, err)
			assert.NotNil(t, registry.GetRegistry())
			assert.NotNil(t, registry.GetHandler())
		})
	}
}

func TestPrometheusRegistry_ShortLinkCounters(t *testing.T) {
	registry, err := NewPrometheusRegistry(testConfig())
	require.NoError(t, err)

	registry.IncRedirects()
	registry.IncRedirects()
	registry.IncNotFound()

	expected := `
# HELP test_test_not_found_total Total number of lookups for unknown short codes
# TYPE test_test_not_found_total counter
test_test_not_found_total 1
# HELP test_test_redirects_total Total number of short codes resolved to a target URL
# TYPE test_test_redirects_total counter
test_test_redirects_total 2
`
	err = testutil.GatherAndCompare(registry.GetRegistry(), strings.NewReader(expected),
		"test_test_redirects_total", "test_test_not_found_total")
	assert.NoError(t, err)
}

func TestPrometheusMiddleware(t *testing.T) {
	registry, err := NewPrometheusRegistry(testConfig())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(PrometheusMiddleware(registry, "/metrics"))
	r.Get("/{shortCode}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMovedPermanently)
	})
	r.Handle("/metrics", registry.GetHandler())

	for _, path := range []string{"/abc", "/def", "/metrics"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	}

	count, err := testutil.GatherAndCount(registry.GetRegistry(), "test_test_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "both redirects share one label set and /metrics is skipped")
}

func TestNoOpRegistry(t *testing.T) {
	registry := NewNoOpRegistry()

	assert.NotPanics(t, func() {
		registry.RecordHTTPRequest("GET", "/test", "200", 0.1)
		registry.IncHTTPRequestsInFlight()
		registry.DecHTTPRequestsInFlight()
		registry.IncRedirects()
		registry.IncNotFound()
	})
	assert.Nil(t, registry.GetRegistry())
	assert.Nil(t, registry.GetHandler())
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":               "/",
		"/":              "/",
		"/health":        "/health",
		"/links":         "/links",
		"/links/abc":     "/links/{shortCode}",
		"/swagger/index": "/swagger/*",
		"/abc123":        "/{shortCode}",
		"/a/b/c":         "/a/b/c",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}
