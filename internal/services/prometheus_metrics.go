package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics
const (
	MetricProviderLoad         = "provider.load"
	MetricProviderCreate       = "provider.create"
	MetricProviderTransactions = "provider.transactions"
	MetricUpstreamRequest      = "upstream.request"
	MetricCircuitBreakerState  = "circuit_breaker.state"
	MetricTransactionCreated   = "transaction.created"
)

type PrometheusMetrics struct {
	providerLoads        *prometheus.CounterVec
	providerCreations    *prometheus.CounterVec
	providerTransactions prometheus.Gauge
	upstreamRequests     *prometheus.CounterVec
	upstreamDuration     *prometheus.HistogramVec
	circuitBreakerState  *prometheus.GaugeVec
	transactionsCreated  *prometheus.CounterVec
}

// NewPrometheusMetrics registers the application metrics with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		providerLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_provider_loads_total",
				Help: "Total number of provider mounts by outcome",
			},
			[]string{"status"},
		),
		providerCreations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_provider_creations_total",
				Help: "Total number of transactions created through the provider by outcome",
			},
			[]string{"status"},
		),
		providerTransactions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "transactions_provider_held",
				Help: "Number of transactions currently held by the provider",
			},
		),
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_api_requests_total",
				Help: "Total number of requests sent to the transactions API",
			},
			[]string{"operation", "status"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transactions_api_request_duration_seconds",
				Help:    "Transactions API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		transactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_created_total",
				Help: "Total number of transactions stored by type",
			},
			[]string{"type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case MetricProviderLoad:
		m.providerLoads.WithLabelValues(status).Inc()
	case MetricProviderCreate:
		m.providerCreations.WithLabelValues(status).Inc()
	case MetricUpstreamRequest:
		m.upstreamRequests.WithLabelValues(tags["operation"], status).Inc()
	case MetricTransactionCreated:
		m.transactionsCreated.WithLabelValues(tags["type"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	if name == "" {
		return
	}
	m.upstreamDuration.WithLabelValues(name).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricProviderTransactions:
		m.providerTransactions.Set(value)
	case MetricCircuitBreakerState:
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	}
}
