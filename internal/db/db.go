package db

import (
	"context"
	"time"
)

// Store is the vector store facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type Store interface {
	Pinger
	KVStore
	CollectionManager
	DocumentWriter
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations (embedding cache).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CollectionManager provides collection lifecycle operations.
type CollectionManager interface {
	// EnsureCollection creates the collection if it does not exist yet.
	// An existing collection is left untouched and is not an error.
	EnsureCollection(ctx context.Context, def *CollectionDefinition) error
	CollectionExists(ctx context.Context, name string) (bool, error)
}

// DocumentWriter inserts or replaces records in a collection.
type DocumentWriter interface {
	Upsert(ctx context.Context, collection string, records []Record) error
}

// Searcher runs nearest-neighbour queries against a single collection.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}
