package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	fetchCycles      prometheus.Counter
	fetchDuration    prometheus.Histogram
	providerFailures *prometheus.CounterVec
	providerUsed     *prometheus.CounterVec
	rateFallbacks    prometheus.Counter
	staleData        prometheus.Gauge
	calculations     *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.fetchCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coinsight_fetch_cycles_total",
			Help: "Total number of refresh cycles completed",
		},
	)
	r.fetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coinsight_fetch_duration_seconds",
			Help:    "Refresh cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.providerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinsight_provider_failures_total",
			Help: "Total number of failed provider attempts",
		},
		[]string{"provider"},
	)
	r.providerUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinsight_provider_used_total",
			Help: "Total number of cycles served by each provider",
		},
		[]string{"provider"},
	)
	r.rateFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coinsight_rate_fallbacks_total",
			Help: "Total number of cycles that used the static rate table",
		},
	)
	r.staleData = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "coinsight_stale_data",
			Help: "Whether the current snapshot is static fallback data (1) or live (0)",
		},
	)
	r.calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coinsight_calculations_total",
			Help: "Total number of calculations by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	reg.MustRegister(r.fetchCycles)
	reg.MustRegister(r.fetchDuration)
	reg.MustRegister(r.providerFailures)
	reg.MustRegister(r.providerUsed)
	reg.MustRegister(r.rateFallbacks)
	reg.MustRegister(r.staleData)
	reg.MustRegister(r.calculations)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordFetchCycle records a refresh cycle completion.
func (r *Registry) RecordFetchCycle(duration float64) {
	r.fetchCycles.Inc()
	r.fetchDuration.Observe(duration)
}

// RecordProviderFailure records a failed provider attempt.
func (r *Registry) RecordProviderFailure(provider string) {
	r.providerFailures.WithLabelValues(provider).Inc()
}

// RecordProviderUsed records which provider served a cycle.
func (r *Registry) RecordProviderUsed(provider string) {
	r.providerUsed.WithLabelValues(provider).Inc()
}

// RecordRateFallback records a cycle that used the static rate table.
func (r *Registry) RecordRateFallback() {
	r.rateFallbacks.Inc()
}

// SetStale sets the stale-data gauge.
func (r *Registry) SetStale(stale bool) {
	if stale {
		r.staleData.Set(1)
	} else {
		r.staleData.Set(0)
	}
}

// RecordCalculation records a calculation request outcome.
func (r *Registry) RecordCalculation(kind, status string) {
	r.calculations.WithLabelValues(kind, status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
