package retrieval

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/quantmaster/internal/db"
	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/domain/catalog"
	"github.com/kailas-cloud/quantmaster/internal/usecase/gateway"
)

// --- Mocks ---

// fakeBackend serves canned hits per collection.
type fakeBackend struct {
	mu       sync.Mutex
	hits     map[string][]db.SearchEntry
	errs     map[string]error
	block    map[string]bool // block until the query context ends
	failInit map[string]bool
	queries  []db.KNNQuery
	upserts  map[string][]db.Record
}

func (f *fakeBackend) Ping(context.Context) error { return nil }

func (f *fakeBackend) EnsureCollection(_ context.Context, def *db.CollectionDefinition) error {
	if f.failInit[def.Name] {
		return errors.New("ensure failed")
	}
	return nil
}

func (f *fakeBackend) Upsert(_ context.Context, collection string, records []db.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upserts == nil {
		f.upserts = map[string][]db.Record{}
	}
	f.upserts[collection] = append(f.upserts[collection], records...)
	return nil
}

func (f *fakeBackend) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, *q)
	f.mu.Unlock()

	if f.block[q.Collection] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := f.errs[q.Collection]; err != nil {
		return nil, err
	}
	hits := f.hits[q.Collection]
	if len(hits) > q.K {
		hits = hits[:q.K]
	}
	return &db.SearchResult{Entries: hits}, nil
}

func (f *fakeBackend) Close() {}

type mockEmbedder struct {
	err    error
	tokens int
	calls  int
	mu     sync.Mutex
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: []float32{1, 0, 0, 0}, TotalTokens: m.tokens}, nil
}

// testCatalog has two econometrics collections, one regression and one meta.
func testCatalog() *catalog.Catalog {
	return catalog.MustNew(
		catalog.NewDescriptor("ols", "ols_regression", catalog.Regression, catalog.LevelIntermediate, "OLS"),
		catalog.NewDescriptor("panel", "panel_data", catalog.Econometrics, catalog.LevelAdvanced, "Panel"),
		catalog.NewDescriptor("iv", "instrumental_variables", catalog.Econometrics, catalog.LevelAdvanced, "IV"),
		catalog.NewDescriptor("meta", "meta_analysis", catalog.Meta, catalog.LevelAdvanced, "Meta"),
	)
}

func newTestService(t *testing.T, b *fakeBackend, emb *mockEmbedder) *Service {
	t.Helper()
	cat := testCatalog()
	open := func(context.Context) (gateway.Backend, error) { return b, nil }
	gw := gateway.Initialize(context.Background(), open, cat, gateway.Options{Dimensions: 4}, zap.NewNop())
	return New(gw, cat, emb, zap.NewNop())
}

func newDegradedService(t *testing.T, emb *mockEmbedder) *Service {
	t.Helper()
	cat := testCatalog()
	return New(gateway.NewUnavailable(cat, "cannot open store"), cat, emb, zap.NewNop())
}

func entry(content string, dist float64) db.SearchEntry {
	return db.SearchEntry{ID: content, Content: content, Distance: dist}
}
