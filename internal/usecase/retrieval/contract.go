package retrieval

import (
	"github.com/kailas-cloud/quantmaster/internal/domain/catalog"
	"github.com/kailas-cloud/quantmaster/internal/usecase/gateway"
)

// Collections is the consumer interface over the vector store gateway.
type Collections interface {
	IsAvailable() bool
	Collection(storeName string) (gateway.Handle, bool)
}

// Catalog resolves category filters and collection names.
type Catalog interface {
	Targets(filter string) ([]catalog.Descriptor, error)
	Resolve(key string) (catalog.Descriptor, bool)
}
