package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/quantmaster/internal/config"
	"github.com/kailas-cloud/quantmaster/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/quantmaster/internal/logger"
	"github.com/kailas-cloud/quantmaster/internal/metrics"
	chiTransport "github.com/kailas-cloud/quantmaster/internal/transport/chi"
	"github.com/kailas-cloud/quantmaster/internal/usecase/gateway"
	healthuc "github.com/kailas-cloud/quantmaster/internal/usecase/health"
	"github.com/kailas-cloud/quantmaster/internal/usecase/retrieval"
	"github.com/kailas-cloud/quantmaster/internal/usecase/tools"
	"github.com/kailas-cloud/quantmaster/internal/version"
)

func main() {
	// .env is optional; real environment variables win.
	if err := config.LoadDotEnv(".env"); err != nil {
		panic("failed to load .env: " + err.Error())
	}

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting quantmaster API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterMetrics()

	ctx := context.Background()
	cat := catalog.Default()

	// The store is optional: on failure the gateway runs degraded and search
	// answers with a notice instead of failing.
	opener := newStoreOpener(cfg.Store, logger)
	gw := gateway.Initialize(ctx, opener.Open, cat, gatewayOptions(cfg), logger)
	defer gw.Close()

	embedder, err := buildEmbedder(cfg.Embedding, opener.KV(), logger)
	if err != nil {
		logger.Fatal("Failed to build embedder", zap.Error(err))
	}
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cache", cfg.Embedding.Cache && opener.KV() != nil),
	)

	retrievalSvc := retrieval.New(gw, cat, embedder, logger).WithConfig(retrieval.Config{
		DefaultLimit:      cfg.Retrieval.DefaultLimit,
		MaxLimit:          cfg.Retrieval.MaxLimit,
		CollectionTimeout: time.Duration(cfg.Retrieval.CollectionTimeoutMs) * time.Millisecond,
		MaxConcurrency:    cfg.Retrieval.MaxConcurrency,
	})
	toolsSvc := tools.New(retrievalSvc, logger)
	healthSvc := healthuc.New(gw, newEmbeddingHealthChecker(embedder), gw)

	server := chiTransport.NewServer(retrievalSvc, cat, gw, toolsSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.RecovererMiddleware(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", addr),
			zap.String("store", gw.Availability().State().String()),
			zap.Int("collections_ready", gw.Ready()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
