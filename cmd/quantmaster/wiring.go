package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/quantmaster/internal/config"
	"github.com/kailas-cloud/quantmaster/internal/db"
	"github.com/kailas-cloud/quantmaster/internal/db/sqlitevec"
	dbValkey "github.com/kailas-cloud/quantmaster/internal/db/valkey"
	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/embedding/hashing"
	"github.com/kailas-cloud/quantmaster/internal/metrics"
	"github.com/kailas-cloud/quantmaster/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/quantmaster/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/quantmaster/internal/usecase/embedding"
	"github.com/kailas-cloud/quantmaster/internal/usecase/gateway"
)

// storeOpener opens the configured store once and remembers it so the
// embedding cache can share the connection.
type storeOpener struct {
	cfg    config.StoreConfig
	logger *zap.Logger
	store  db.Store
}

func newStoreOpener(cfg config.StoreConfig, logger *zap.Logger) *storeOpener {
	return &storeOpener{cfg: cfg, logger: logger}
}

// Open satisfies gateway.Opener.
func (o *storeOpener) Open(ctx context.Context) (gateway.Backend, error) {
	store, err := o.open(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(ctx, time.Duration(o.cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("store not ready: %w", err)
	}
	o.logger.Info("Connected to vector store", zap.String("driver", o.cfg.Driver))
	o.store = store
	return store, nil
}

func (o *storeOpener) open(ctx context.Context) (db.Store, error) {
	switch o.cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlitevec.Open(ctx, o.cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", o.cfg.Path, err)
		}
		return store, nil
	case config.DriverValkey, config.DriverRedis:
		store, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:     o.cfg.Addrs,
			Password:  o.cfg.Password,
			KeyPrefix: o.cfg.KeyPrefix,
			KVTTL:     time.Duration(o.cfg.CacheTTLSec) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", o.cfg.Driver, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", o.cfg.Driver)
	}
}

// KV returns the opened store for caching, or nil when opening failed.
func (o *storeOpener) KV() db.KVStore {
	if o.store == nil {
		return nil
	}
	return o.store
}

func gatewayOptions(cfg config.Config) gateway.Options {
	opts := gateway.Options{
		Dimensions: cfg.Embedding.Dimensions,
		Distance:   db.DistanceCosine,
	}
	if cfg.Store.Driver != config.DriverSQLite && cfg.Store.HNSWM > 0 {
		opts.Algorithm = db.VectorHNSW
		opts.HNSWM = cfg.Store.HNSWM
		opts.HNSWEFConstruct = cfg.Store.HNSWEFConstruct
	}
	return opts
}

// buildEmbedder assembles the decorator chain: provider -> Instrumented -> Cached -> Prefix.
// The cache sits outside instrumentation so provider metrics count real API calls only,
// and inside the prefix so cache keys include the instruction.
func buildEmbedder(cfg config.EmbeddingConfig, kv db.KVStore, logger *zap.Logger) (domain.Embedder, error) {
	var base domain.Embedder
	model := cfg.Model
	switch cfg.Provider {
	case config.ProviderOpenAI:
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Provider:   cfg.Provider,
			Logger:     logger,
		})
	case config.ProviderHashing:
		h, err := hashing.New(cfg.Dimensions)
		if err != nil {
			return nil, fmt.Errorf("hashing embedder: %w", err)
		}
		base = h
		model = fmt.Sprintf("hashing-%d", cfg.Dimensions)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}

	embedder := domain.Embedder(embeddinguc.NewInstrumentedEmbedder(
		base, cfg.Provider, model, cfg.MaxBatchSize, logger,
	))

	if cfg.Cache && kv != nil {
		embedder = embcache.New(embedder, kv, embcache.Options{
			Model:      model,
			Dimensions: cfg.Dimensions,
			CacheTotal: metrics.EmbeddingCacheTotal,
		}, logger)
	}

	return domain.NewPrefixEmbedder(embedder, cfg.QueryInstruction, cfg.DocumentInstruction), nil
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}
