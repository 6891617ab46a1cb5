// Package retrieval searches the knowledge base: one query embedding is fanned
// out to every target collection and the hits are merged by distance.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/quantmaster/internal/logger"
	"github.com/kailas-cloud/quantmaster/internal/metrics"
)

// Defaults for Config.
const (
	DefaultLimit             = 5
	DefaultMaxLimit          = 50
	DefaultCollectionTimeout = 2 * time.Second
	DefaultMaxConcurrency    = 8
)

// DegradedNotice is the content of the single result returned while the store is unavailable.
const DegradedNotice = "The statistics knowledge base is currently unavailable. " +
	"Answer from general statistical knowledge and say that no reference material could be retrieved."

// Config tunes search. Zero fields take the defaults above.
type Config struct {
	DefaultLimit      int
	MaxLimit          int
	CollectionTimeout time.Duration
	MaxConcurrency    int
}

func (c Config) withDefaults() Config {
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = DefaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = DefaultMaxLimit
	}
	if c.CollectionTimeout <= 0 {
		c.CollectionTimeout = DefaultCollectionTimeout
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	return c
}

// Query is a knowledge base search request. Limit 0 selects the configured default.
type Query struct {
	Text     string
	Category string
	Limit    int
}

// Service runs searches and ingestion against the gateway.
type Service struct {
	store    Collections
	catalog  Catalog
	embedder domain.Embedder
	cfg      Config
	logger   *zap.Logger
}

// New creates a retrieval service with default Config.
func New(store Collections, cat Catalog, embedder domain.Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		catalog:  cat,
		embedder: embedder,
		cfg:      Config{}.withDefaults(),
		logger:   logger,
	}
}

// WithConfig replaces the search configuration.
func (s *Service) WithConfig(cfg Config) *Service {
	s.cfg = cfg.withDefaults()
	return s
}

// Search returns at most Limit passages ordered by ascending distance.
// Per-collection failures drop that collection only. While the store is
// unavailable the result is a single system notice.
func (s *Service) Search(ctx context.Context, q Query) ([]domain.SearchResult, error) {
	start := time.Now()

	limit, err := s.effectiveLimit(q)
	if err != nil {
		s.observe(metrics.OutcomeInvalid, start)
		return nil, err
	}

	if !s.store.IsAvailable() {
		s.observe(metrics.OutcomeDegraded, start)
		return []domain.SearchResult{degradedNotice()}, nil
	}

	targets, err := s.catalog.Targets(q.Category)
	if err != nil {
		s.observe(metrics.OutcomeInvalid, start)
		return nil, err
	}

	if len(targets) == 0 {
		s.observe(metrics.OutcomeOK, start)
		return []domain.SearchResult{}, nil
	}

	emb, err := s.embedder.Embed(ctx, q.Text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.observe(metrics.OutcomeCanceled, start)
			return nil, fmt.Errorf("search: %w", ctxErr)
		}
		// Every target needs the query vector, so all of them fail together.
		s.log(ctx).Warn("Query embedding failed, returning no results",
			zap.Int("collections", len(targets)),
			zap.Error(err),
		)
		s.observe(metrics.OutcomeEmbed, start)
		return []domain.SearchResult{}, nil
	}
	domain.UsageFromContext(ctx).AddTokens(emb.TotalTokens)

	parts := s.fanOut(ctx, targets, emb.Embedding, limit)
	if err := ctx.Err(); err != nil {
		s.observe(metrics.OutcomeCanceled, start)
		return nil, fmt.Errorf("search: %w", err)
	}

	s.observe(metrics.OutcomeOK, start)
	return merge(parts, limit), nil
}

// effectiveLimit validates the query text and resolves the limit: 0 takes the
// default and anything above MaxLimit is clamped to it.
func (s *Service) effectiveLimit(q Query) (int, error) {
	if strings.TrimSpace(q.Text) == "" {
		return 0, fmt.Errorf("query text is required: %w", domain.ErrInvalidInput)
	}
	switch {
	case q.Limit < 0:
		return 0, fmt.Errorf("limit must be positive, got %d: %w", q.Limit, domain.ErrInvalidInput)
	case q.Limit == 0:
		return s.cfg.DefaultLimit, nil
	default:
		return min(q.Limit, s.cfg.MaxLimit), nil
	}
}

// fanOut queries every target concurrently. Slot i holds the hits of targets[i]
// (nil when that collection was dropped).
func (s *Service) fanOut(
	ctx context.Context, targets []catalog.Descriptor, vector []float32, limit int,
) [][]domain.SearchResult {
	parts := make([][]domain.SearchResult, len(targets))

	var g errgroup.Group
	g.SetLimit(s.cfg.MaxConcurrency)
	for i, d := range targets {
		g.Go(func() error {
			parts[i] = s.queryCollection(ctx, d, vector, limit)
			return nil
		})
	}
	_ = g.Wait()

	return parts
}

func (s *Service) queryCollection(
	ctx context.Context, d catalog.Descriptor, vector []float32, limit int,
) []domain.SearchResult {
	name := d.StoreName()
	ctx = logpkg.With(ctx, s.logger, zap.String("collection", name))

	h, ok := s.store.Collection(name)
	if !ok {
		metrics.CollectionQueriesTotal.WithLabelValues(name, metrics.CollectionMissing).Inc()
		s.log(ctx).Debug("Collection not initialized, skipping")
		return nil
	}

	qctx, cancel := context.WithTimeout(ctx, s.cfg.CollectionTimeout)
	defer cancel()

	entries, err := h.QueryNearest(qctx, vector, limit)
	if err != nil {
		outcome := metrics.CollectionError
		if errors.Is(qctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			outcome = metrics.CollectionTimeout
		}
		metrics.CollectionQueriesTotal.WithLabelValues(name, outcome).Inc()
		s.log(ctx).Warn("Collection query failed, dropping its results",
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return nil
	}

	out := make([]domain.SearchResult, 0, len(entries))
	for _, e := range entries {
		if math.IsNaN(e.Distance) || math.IsInf(e.Distance, 0) || e.Distance < 0 {
			metrics.CollectionQueriesTotal.WithLabelValues(name, metrics.CollectionError).Inc()
			s.log(ctx).Warn("Collection returned a malformed distance, dropping its results",
				zap.Float64("distance", e.Distance),
			)
			return nil
		}
		dist := e.Distance
		out = append(out, domain.SearchResult{
			Content:  e.Content,
			Metadata: primitiveMetadata(e.Metadata, name),
			Distance: &dist,
		})
	}

	metrics.CollectionQueriesTotal.WithLabelValues(name, metrics.CollectionOK).Inc()
	return out
}

// merge concatenates parts in target order, stable-sorts by effective distance
// and keeps the first limit entries.
func merge(parts [][]domain.SearchResult, limit int) []domain.SearchResult {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	all := make([]domain.SearchResult, 0, n)
	for _, p := range parts {
		all = append(all, p...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].EffectiveDistance() < all[j].EffectiveDistance()
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// primitiveMetadata copies scalar metadata values and tags the source collection.
func primitiveMetadata(in map[string]any, collection string) map[string]any {
	out := make(map[string]any, len(in)+1)
	for k, v := range in {
		switch v.(type) {
		case string, bool, float64, float32, int, int64:
			out[k] = v
		}
	}
	if _, ok := out[domain.MetaCollection]; !ok {
		out[domain.MetaCollection] = collection
	}
	return out
}

func degradedNotice() domain.SearchResult {
	zero := 0.0
	return domain.SearchResult{
		Content: DegradedNotice,
		Metadata: map[string]any{
			domain.MetaType:   domain.TypeSystemNotice,
			domain.MetaSource: domain.SourceSystem,
		},
		Distance: &zero,
	}
}

func (s *Service) observe(outcome string, start time.Time) {
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
}

// log prefers the request-scoped logger so lines carry the request id.
func (s *Service) log(ctx context.Context) *zap.Logger {
	return logpkg.FromContext(ctx, s.logger)
}
