package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerRequests *prometheus.CounterVec
	resolutions      *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	lastPrice        *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscout_provider_requests_total",
				Help: "Total number of requests to external data providers",
			},
			[]string{"provider", "outcome"},
		),
		resolutions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscout_resolutions_total",
				Help: "Total number of ticker resolutions by source",
			},
			[]string{"source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscout_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockscout_last_price",
				Help: "Last fetched close price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockscout_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordProviderRequest records one request to a provider with its outcome.
func (r *Recorder) RecordProviderRequest(provider, outcome string) {
	r.providerRequests.WithLabelValues(provider, outcome).Inc()
}

// RecordResolution records a successful ticker resolution by source
// ("alias" or "search").
func (r *Recorder) RecordResolution(source string) {
	r.resolutions.WithLabelValues(source).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last fetched price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
