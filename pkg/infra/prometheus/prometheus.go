package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		1, 5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "paramguard_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paramguard_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method"},
	)

	AttacksTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "paramguard_attacks_total",
			Help: "Injection attacks detected, by pattern kind, parameter source and action taken",
		},
		[]string{"kind", "source", "action"},
	)

	FilteredValuesTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "paramguard_filtered_values_total",
			Help: "Parameter values rewritten by the sanitizer",
		},
		[]string{"source"},
	)

	BannedRequestsTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "paramguard_banned_requests_total",
			Help: "Requests rejected because the client exceeded the offender threshold",
		},
	)
)

type MetricsConfig struct {
	EnableLatency bool
}

var (
	Config   MetricsConfig
	initOnce sync.Once
)

func Initialize(cfg MetricsConfig) {
	Config = cfg
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

// Gatherer exposes the private registry for the metrics endpoint.
func Gatherer() prometheus.Gatherer {
	return registry
}
