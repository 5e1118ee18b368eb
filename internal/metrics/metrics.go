package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	FetchRequestsTotal *prometheus.CounterVec
	FetchDuration      prometheus.Histogram
	CacheLookupsTotal  *prometheus.CounterVec
	ConversionsTotal   *prometheus.CounterVec
	CachedDates        prometheus.Gauge
	CommandsTotal      *prometheus.CounterVec
}

// NewMetrics registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		FetchRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_fetches_total",
				Help: "Total number of exchange rate fetches by outcome",
			},
			[]string{"outcome"},
		),

		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rate_fetch_duration_seconds",
				Help:    "Exchange rate fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Total number of rate cache lookups for a requested date",
			},
			[]string{"result"},
		),

		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Total number of conversions computed for display",
			},
			[]string{"result"},
		),

		CachedDates: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rate_cache_dates",
				Help: "Number of dates held in the rate cache",
			},
		),

		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screen_commands_total",
				Help: "Total number of screen commands handled",
			},
			[]string{"command"},
		),
	}
}
