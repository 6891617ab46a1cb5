package embcache

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/quantmaster/internal/db"
	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// --- Mocks ---

// fakeProvider returns the same vector for every text and records batch traffic.
type fakeProvider struct {
	result      domain.EmbeddingResult
	err         error
	batchErr    error
	batchCalls  int
	batchInputs []string
	healthErr   error
}

func (p *fakeProvider) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	if p.err != nil {
		return domain.EmbeddingResult{}, p.err
	}
	return p.result, nil
}

func (p *fakeProvider) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	p.batchCalls++
	p.batchInputs = append(p.batchInputs, texts...)
	if p.batchErr != nil {
		return domain.BatchEmbeddingResult{}, p.batchErr
	}
	return domain.BatchFallback(ctx, p, texts)
}

func (p *fakeProvider) HealthCheck(context.Context) error { return p.healthErr }

// memKV is an in-memory db.KVStore. getErr and setErr fail every call;
// fixed, when set, is returned for every key.
type memKV struct {
	data   map[string][]byte
	fixed  []byte
	getErr error
	setErr error
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	switch {
	case m.getErr != nil:
		return nil, m.getErr
	case m.fixed != nil:
		return m.fixed, nil
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = value
	return nil
}

func newTestCachedEmbedder(t *testing.T, inner *fakeProvider) (*CachedEmbedder, *memKV) {
	t.Helper()
	kv := newMemKV()
	return New(inner, kv, Options{Model: "test-model"}, zap.NewNop()), kv
}
