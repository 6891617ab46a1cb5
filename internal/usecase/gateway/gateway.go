// Package gateway owns the vector store connection and the per-collection handles
// resolved at startup. Availability is decided once by Initialize and never changes.
package gateway

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/quantmaster/internal/db"
	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/domain/catalog"
	"github.com/kailas-cloud/quantmaster/internal/metrics"
)

// State is the availability tag.
type State int

// Availability states.
const (
	Uninitialized State = iota
	Available
	Unavailable
)

func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	default:
		return "uninitialized"
	}
}

// Availability is the store status; Reason is set only when Unavailable.
type Availability struct {
	state  State
	reason string
}

// State returns the tag.
func (a Availability) State() State { return a.state }

// Reason explains an Unavailable state.
func (a Availability) Reason() string { return a.reason }

// Options configure the collections created at startup.
type Options struct {
	Dimensions      int
	Distance        db.DistanceMetric
	Algorithm       db.VectorAlgorithm
	HNSWM           int
	HNSWEFConstruct int
}

// Gateway is the frozen result of store initialization.
type Gateway struct {
	catalog      *catalog.Catalog
	backend      Backend
	availability Availability
	handles      map[string]Handle
}

// Initialize opens the store and ensures every catalog collection exists.
// It never fails: an open error yields an Unavailable gateway and a
// per-collection error leaves that collection without a handle.
func Initialize(
	ctx context.Context, open Opener, cat *catalog.Catalog, opts Options, logger *zap.Logger,
) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}

	backend, err := open(ctx)
	if err != nil {
		logger.Error("Vector store unavailable, running in degraded mode", zap.Error(err))
		return NewUnavailable(cat, err.Error())
	}

	g := &Gateway{
		catalog:      cat,
		backend:      backend,
		availability: Availability{state: Available},
		handles:      make(map[string]Handle, cat.Len()),
	}

	for _, d := range cat.List() {
		def, err := definition(d, opts)
		if err == nil {
			err = backend.EnsureCollection(ctx, def)
		}
		if err != nil {
			logger.Warn("Failed to prepare collection",
				zap.String("collection", d.StoreName()),
				zap.Error(fmt.Errorf("%w: %w", domain.ErrInitialization, err)),
			)
			continue
		}
		g.handles[d.StoreName()] = Handle{desc: d, backend: backend}
	}

	metrics.StoreAvailable.Set(1)
	metrics.CollectionsReady.Set(float64(len(g.handles)))
	logger.Info("Vector store ready",
		zap.Int("collections", len(g.handles)),
		zap.Int("catalog", cat.Len()),
	)
	return g
}

// NewUnavailable returns a gateway in degraded mode.
func NewUnavailable(cat *catalog.Catalog, reason string) *Gateway {
	metrics.StoreAvailable.Set(0)
	metrics.CollectionsReady.Set(0)
	return &Gateway{
		catalog:      cat,
		availability: Availability{state: Unavailable, reason: reason},
	}
}

func definition(d catalog.Descriptor, opts Options) (*db.CollectionDefinition, error) {
	b := db.NewCollection(d.StoreName()).Dimensions(opts.Dimensions)
	if opts.Distance != "" {
		b.Distance(opts.Distance)
	}
	if opts.Algorithm == db.VectorHNSW {
		b.HNSW(opts.HNSWM, opts.HNSWEFConstruct)
	}
	for k, v := range d.Metadata() {
		b.Meta(k, v)
	}
	return b.Build()
}

// IsAvailable reports whether the store opened successfully.
func (g *Gateway) IsAvailable() bool { return g.availability.state == Available }

// Availability returns the frozen availability variant.
func (g *Gateway) Availability() Availability { return g.availability }

// Catalog returns the catalog the gateway was built from.
func (g *Gateway) Catalog() *catalog.Catalog { return g.catalog }

// Collection returns the handle for a store name. ok is false when the store is
// unavailable or the collection failed to initialize.
func (g *Gateway) Collection(storeName string) (Handle, bool) {
	h, ok := g.handles[storeName]
	return h, ok
}

// Ready returns the number of collections with a handle.
func (g *Gateway) Ready() int { return len(g.handles) }

// Ping checks the underlying store.
func (g *Gateway) Ping(ctx context.Context) error {
	if !g.IsAvailable() {
		return fmt.Errorf("%s: %w", g.availability.reason, domain.ErrStoreUnavailable)
	}
	if err := g.backend.Ping(ctx); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	return nil
}

// Close releases the store.
func (g *Gateway) Close() {
	if g.backend != nil {
		g.backend.Close()
	}
}
