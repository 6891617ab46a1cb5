package chi

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/domain/catalog"
	"github.com/kailas-cloud/quantmaster/internal/usecase/gateway"
	healthuc "github.com/kailas-cloud/quantmaster/internal/usecase/health"
	"github.com/kailas-cloud/quantmaster/internal/usecase/retrieval"
	"github.com/kailas-cloud/quantmaster/internal/usecase/tools"
)

// Retriever searches and ingests into the knowledge base.
type Retriever interface {
	Search(ctx context.Context, q retrieval.Query) ([]domain.SearchResult, error)
	AddDocuments(ctx context.Context, collection string, docs []retrieval.Document) (retrieval.IngestResult, error)
}

// Catalog resolves a category filter to collection descriptors.
type Catalog interface {
	Targets(filter string) ([]catalog.Descriptor, error)
}

// Readiness reports which collections the store has prepared.
type Readiness interface {
	Collection(storeName string) (gateway.Handle, bool)
}

// ToolDispatcher lists and invokes assistant tools.
type ToolDispatcher interface {
	Definitions() []tools.Definition
	Call(ctx context.Context, name string, args json.RawMessage) (any, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
