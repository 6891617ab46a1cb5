package domain

import "errors"

var (
	// ErrInvalidInput signals a caller-supplied value outside the accepted domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable signals that the vector store could not be opened.
	ErrStoreUnavailable = errors.New("vector store unavailable")
	// ErrCollectionNotFound signals a collection absent from the catalog or the store.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrCollectionQuery signals a failed per-collection query.
	ErrCollectionQuery = errors.New("collection query failed")
	// ErrInitialization signals a failure while preparing the store at startup.
	ErrInitialization = errors.New("initialization failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrUnknownTool signals a tool name the dispatcher does not know.
	ErrUnknownTool = errors.New("unknown tool")
)
