package tools

import (
	"context"

	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/usecase/retrieval"
)

// Searcher is the knowledge base search used by search_stats_knowledge.
type Searcher interface {
	Search(ctx context.Context, q retrieval.Query) ([]domain.SearchResult, error)
}
