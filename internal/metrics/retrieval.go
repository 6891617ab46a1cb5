package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
	OutcomeInvalid  = "invalid"
	OutcomeEmbed    = "embed_error"
	OutcomeCanceled = "canceled"
)

// Per-collection query outcomes.
const (
	CollectionOK      = "ok"
	CollectionError   = "error"
	CollectionTimeout = "timeout"
	CollectionMissing = "missing"
)

// Retrieval Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Knowledge base searches by outcome",
		},
		[]string{"outcome"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end knowledge base search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	CollectionQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collection_queries_total",
			Help:      "Per-collection nearest-neighbour queries by outcome",
		},
		[]string{"collection", "outcome"},
	)

	StoreAvailable = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_available",
			Help:      "1 when the vector store initialized, 0 in degraded mode",
		},
	)

	CollectionsReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "collections_ready",
			Help:      "Number of collections ensured at startup",
		},
	)
)

func retrievalCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		SearchesTotal,
		SearchDuration,
		CollectionQueriesTotal,
		StoreAvailable,
		CollectionsReady,
	}
}
