package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonathan/portfolio-ranker/internal/matching"
)

// metrics holds the server's Prometheus collectors on a private registry.
type metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	feedEntries     *prometheus.HistogramVec
	rateLimited     prometheus.Counter
}

func newMetrics(cache *matching.Cache) *metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	m := &metrics{
		registry: registry,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		feedEntries: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_feed_entries",
				Help:    "Number of entries kept in a ranked feed",
				Buckets: prometheus.LinearBuckets(0, 5, 10),
			},
			[]string{"collection"},
		),
		rateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "portfolio_http_rate_limited_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
	}

	factory.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "portfolio_matcher_cache_hits_total",
			Help: "Total number of matcher set cache hits",
		},
		func() float64 { return float64(cache.Stats().Hits) },
	)
	factory.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "portfolio_matcher_cache_misses_total",
			Help: "Total number of matcher set cache misses",
		},
		func() float64 { return float64(cache.Stats().Misses) },
	)
	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "portfolio_matcher_cache_entries",
			Help: "Current number of cached matcher sets",
		},
		func() float64 { return float64(cache.Stats().Size) },
	)

	return m
}
