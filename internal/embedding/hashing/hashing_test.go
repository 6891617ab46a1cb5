package hashing

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func mustNew(t *testing.T, dims int) *Embedder {
	t.Helper()
	e, err := New(dims)
	if err != nil {
		t.Fatalf("New(%d): %v", dims, err)
	}
	return e
}

func TestNew_InvalidDimensions(t *testing.T) {
	if _, err := New(0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEmbed_DeterministicAndNormalized(t *testing.T) {
	e := mustNew(t, 64)
	ctx := context.Background()

	a, err := e.Embed(ctx, "Panel data with fixed effects")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := e.Embed(ctx, "panel DATA with fixed effects")

	if len(a.Embedding) != 64 {
		t.Fatalf("dims = %d, want 64", len(a.Embedding))
	}
	for i := range a.Embedding {
		if a.Embedding[i] != b.Embedding[i] {
			t.Fatalf("embedding differs at %d: case folding expected", i)
		}
	}

	var norm float64
	for _, v := range a.Embedding {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1) > 1e-5 {
		t.Errorf("squared norm = %f, want 1", norm)
	}
	if a.TotalTokens == 0 {
		t.Error("expected non-zero feature count")
	}
}

func TestEmbed_SimilarTextsAreCloser(t *testing.T) {
	e := mustNew(t, DefaultDimensions)
	ctx := context.Background()

	q, _ := e.Embed(ctx, "instrumental variables two stage least squares")
	near, _ := e.Embed(ctx, "two stage least squares with instrumental variables")
	far, _ := e.Embed(ctx, "bayesian hierarchical priors")

	if cosine(q.Embedding, near.Embedding) <= cosine(q.Embedding, far.Embedding) {
		t.Error("expected related text to be closer than unrelated text")
	}
}

func TestEmbed_PunctuationOnly(t *testing.T) {
	e := mustNew(t, 16)
	res, err := e.Embed(context.Background(), "?!")
	if err != nil {
		t.Fatal(err)
	}
	nonZero := false
	for _, v := range res.Embedding {
		if v != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("expected non-zero vector for punctuation-only input")
	}
}

func TestEmbed_EmptyText(t *testing.T) {
	e := mustNew(t, 8)
	res, err := e.Embed(context.Background(), "   ")
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range res.Embedding {
		if v != 0 {
			t.Fatal("expected zero vector for blank input")
		}
	}
}

func TestBatchEmbed(t *testing.T) {
	e := mustNew(t, 32)
	ctx := context.Background()

	batch, err := e.BatchEmbed(ctx, []string{"ols", "gmm estimator"})
	if err != nil {
		t.Fatal(err)
	}
	if len(batch.Embeddings) != 2 {
		t.Fatalf("got %d embeddings, want 2", len(batch.Embeddings))
	}
	single, _ := e.Embed(ctx, "gmm estimator")
	for i := range single.Embedding {
		if single.Embedding[i] != batch.Embeddings[1][i] {
			t.Fatal("batch and single embeddings differ")
		}
	}
	if batch.TotalTokens != 1+3 {
		t.Errorf("TotalTokens = %d, want 4", batch.TotalTokens)
	}
}

func TestEmbed_CanceledContext(t *testing.T) {
	e := mustNew(t, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Embed(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
