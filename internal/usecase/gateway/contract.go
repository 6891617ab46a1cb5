package gateway

import (
	"context"

	"github.com/kailas-cloud/quantmaster/internal/db"
)

// Backend is the subset of db.Store the gateway needs.
type Backend interface {
	db.Pinger
	EnsureCollection(ctx context.Context, def *db.CollectionDefinition) error
	db.DocumentWriter
	db.Searcher
	Close()
}

// Opener opens or creates the persistent store.
type Opener func(ctx context.Context) (Backend, error)
