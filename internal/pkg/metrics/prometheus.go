package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sp3dr4/xlu/config"
)

// PrometheusRegistry implements the Registry interface using Prometheus metrics
type PrometheusRegistry struct {
	registry *prometheus.Registry
	config   config.MetricsConfig

	// HTTP Metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business Metrics
	redirectsTotal prometheus.Counter
	notFoundTotal  prometheus.Counter
}

// NewPrometheusRegistry builds a private registry holding the HTTP and short
// link metrics, plus Go runtime collectors when cfg.CollectRuntime is set
func NewPrometheusRegistry(cfg config.MetricsConfig) (Registry, error) {
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      name,
			Help:      help,
		}
	}
	httpLabels := []string{LabelMethod, LabelPath, LabelStatusCode}

	p := &PrometheusRegistry{
		registry: prometheus.NewRegistry(),
		config:   cfg,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts(opts("http_requests_total", "Total number of HTTP requests")),
			httpLabels,
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			httpLabels,
		),
		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts(opts("http_requests_in_flight", "Number of HTTP requests currently being processed")),
		),
		redirectsTotal: prometheus.NewCounter(
			prometheus.CounterOpts(opts("redirects_total", "Total number of short codes resolved to a target URL")),
		),
		notFoundTotal: prometheus.NewCounter(
			prometheus.CounterOpts(opts("not_found_total", "Total number of lookups for unknown short codes")),
		),
	}

	for _, collector := range []prometheus.Collector{
		p.httpRequestsTotal,
		p.httpRequestDuration,
		p.httpRequestsInFlight,
		p.redirectsTotal,
		p.notFoundTotal,
	} {
		if err := p.registry.Register(collector); err != nil {
			return nil, err
		}
	}

	if cfg.CollectRuntime {
		p.registry.MustRegister(collectors.NewGoCollector())
		p.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return p, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration
func (p *PrometheusRegistry) RecordHTTPRequest(method, path, statusCode string, duration float64) {
	labels := prometheus.Labels{
		LabelMethod:     method,
		LabelPath:       path,
		LabelStatusCode: statusCode,
	}
	p.httpRequestsTotal.With(labels).Inc()
	p.httpRequestDuration.With(labels).Observe(duration)
}

// IncHTTPRequestsInFlight increments the in-flight HTTP requests counter
func (p *PrometheusRegistry) IncHTTPRequestsInFlight() {
	p.httpRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight decrements the in-flight HTTP requests counter
func (p *PrometheusRegistry) DecHTTPRequestsInFlight() {
	p.httpRequestsInFlight.Dec()
}

// IncRedirects increments the resolved short codes counter
func (p *PrometheusRegistry) IncRedirects() {
	p.redirectsTotal.Inc()
}

// IncNotFound increments the unknown short codes counter
func (p *PrometheusRegistry) IncNotFound() {
	p.notFoundTotal.Inc()
}

// GetRegistry returns the underlying Prometheus registry
func (p *PrometheusRegistry) GetRegistry() *prometheus.Registry {
	return p.registry
}

// GetHandler returns an HTTP handler for the metrics endpoint
func (p *PrometheusRegistry) GetHandler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
