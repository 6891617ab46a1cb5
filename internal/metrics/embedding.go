package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "quantmaster"

// Embedding label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	TokensPrompt = "prompt"
	TokensTotal  = "total"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	// EmbeddingRequestsTotal counts provider round-trips, one per API call.
	EmbeddingRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "requests_total",
		Help:      "Embedding provider calls by status",
	}, []string{"provider", "model", "status"})

	EmbeddingRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "request_duration_seconds",
		Help:      "Latency of successful embedding provider calls",
		Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"provider", "model"})

	EmbeddingTokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "tokens_total",
		Help:      "Tokens billed by the embedding provider",
	}, []string{"provider", "model", "type"})

	EmbeddingErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "errors_total",
		Help:      "Failed embedding provider calls by cause",
	}, []string{"provider", "model", "error_type"})

	// EmbeddingCacheTotal is labelled CacheHit or CacheMiss.
	EmbeddingCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "cache_total",
		Help:      "Embedding cache lookups by result",
	}, []string{"result"})

	// EmbeddingBatchTexts observes how many texts each ingestion batch carries
	// before it is split into provider-sized chunks.
	EmbeddingBatchTexts = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "embedding",
		Name:      "batch_texts",
		Help:      "Texts per batch embedding call",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
	}, []string{"provider"})
)

func embeddingCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingTokensTotal,
		EmbeddingErrorsTotal,
		EmbeddingCacheTotal,
		EmbeddingBatchTexts,
	}
}
