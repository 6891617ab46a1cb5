package health

import "context"

// StorePinger checks vector store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// KnowledgeBase reports how much of the catalog is searchable.
type KnowledgeBase interface {
	IsAvailable() bool
	Ready() int
}
