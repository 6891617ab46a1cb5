package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/quantmaster/internal/db"
	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// Document is a passage to add to a collection. An empty ID is derived from
// the collection and content, so re-ingesting the same text replaces it.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// IngestResult reports what was written.
type IngestResult struct {
	Collection string
	IDs        []string
	Tokens     int
}

// AddDocuments embeds docs and upserts them into the collection named by a
// catalog identifier or store name.
func (s *Service) AddDocuments(ctx context.Context, collection string, docs []Document) (IngestResult, error) {
	desc, ok := s.catalog.Resolve(collection)
	if !ok {
		return IngestResult{}, fmt.Errorf("collection %q: %w: %w", collection, domain.ErrCollectionNotFound, domain.ErrInvalidInput)
	}
	if len(docs) == 0 {
		return IngestResult{}, fmt.Errorf("at least one document is required: %w", domain.ErrInvalidInput)
	}
	if !s.store.IsAvailable() {
		return IngestResult{}, fmt.Errorf("add documents: %w", domain.ErrStoreUnavailable)
	}

	name := desc.StoreName()
	h, ok := s.store.Collection(name)
	if !ok {
		return IngestResult{}, fmt.Errorf("collection %q not initialized: %w", name, domain.ErrCollectionNotFound)
	}

	texts := make([]string, len(docs))
	records := make([]db.Record, len(docs))
	for i, d := range docs {
		if strings.TrimSpace(d.Content) == "" {
			return IngestResult{}, fmt.Errorf("document %d: content is required: %w", i, domain.ErrInvalidInput)
		}
		if err := validateMetadata(d.Metadata); err != nil {
			return IngestResult{}, fmt.Errorf("document %d: %w", i, err)
		}
		id := d.ID
		if id == "" {
			id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(name+"/"+d.Content)).String()
		}
		texts[i] = d.Content
		records[i] = db.Record{ID: id, Content: d.Content, Metadata: d.Metadata}
	}

	emb, err := domain.EmbedBatch(ctx, s.embedder, texts)
	if err != nil {
		return IngestResult{}, fmt.Errorf("embed documents: %w", err)
	}
	if len(emb.Embeddings) != len(records) {
		return IngestResult{}, fmt.Errorf("embed documents: got %d vectors for %d documents: %w",
			len(emb.Embeddings), len(records), domain.ErrEmbeddingProviderError)
	}
	domain.UsageFromContext(ctx).AddTokens(emb.TotalTokens)

	ids := make([]string, len(records))
	for i := range records {
		records[i].Vector = emb.Embeddings[i]
		ids[i] = records[i].ID
	}

	if err := h.Upsert(ctx, records); err != nil {
		return IngestResult{}, fmt.Errorf("add documents: %w", err)
	}

	s.log(ctx).Info("Documents added",
		zap.String("collection", name),
		zap.Int("count", len(records)),
		zap.Int("tokens", emb.TotalTokens),
	)
	return IngestResult{Collection: name, IDs: ids, Tokens: emb.TotalTokens}, nil
}

func validateMetadata(m map[string]any) error {
	for k, v := range m {
		if k == "" {
			return fmt.Errorf("metadata key must not be empty: %w", domain.ErrInvalidInput)
		}
		switch v.(type) {
		case string, bool, float64, float32, int, int64:
		default:
			return fmt.Errorf("metadata %q must be a string, number or bool: %w", k, domain.ErrInvalidInput)
		}
	}
	return nil
}
