package gateway

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/quantmaster/internal/db"
	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/domain/catalog"
)

// Handle is a collection bound to the open store.
type Handle struct {
	desc    catalog.Descriptor
	backend Backend
}

// Name returns the store name of the collection.
func (h Handle) Name() string { return h.desc.StoreName() }

// Descriptor returns the catalog entry the handle was created from.
func (h Handle) Descriptor() catalog.Descriptor { return h.desc }

// QueryNearest returns up to k entries ordered by ascending distance.
func (h Handle) QueryNearest(ctx context.Context, vector []float32, k int) ([]db.SearchEntry, error) {
	res, err := h.backend.SearchKNN(ctx, &db.KNNQuery{
		Collection: h.desc.StoreName(),
		Vector:     vector,
		K:          k,
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w: %w", h.desc.StoreName(), domain.ErrCollectionQuery, err)
	}
	return res.Entries, nil
}

// Upsert writes records into the collection.
func (h Handle) Upsert(ctx context.Context, records []db.Record) error {
	if err := h.backend.Upsert(ctx, h.desc.StoreName(), records); err != nil {
		return fmt.Errorf("upsert %s: %w", h.desc.StoreName(), err)
	}
	return nil
}
