// Package hashing provides a local, dependency-free embedder based on the
// hashing trick. It needs no model download or API key, which makes it the
// default for development and tests.
package hashing

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// DefaultDimensions matches the width of common sentence-embedding models.
const DefaultDimensions = 384

var (
	_ domain.Embedder      = (*Embedder)(nil)
	_ domain.BatchEmbedder = (*Embedder)(nil)
	_ domain.HealthChecker = (*Embedder)(nil)
)

// Embedder maps unigrams and bigrams into a fixed-width signed feature vector.
type Embedder struct {
	dimensions   int
	tokenPattern *regexp.Regexp
}

// New creates a hashing embedder producing vectors of the given width.
func New(dimensions int) (*Embedder, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("hashing embedder dimensions must be positive, got %d: %w",
			dimensions, domain.ErrInvalidInput)
	}
	return &Embedder{
		dimensions:   dimensions,
		tokenPattern: regexp.MustCompile(`\p{L}+|\p{N}+`),
	}, nil
}

// Dimensions returns the vector width.
func (e *Embedder) Dimensions() int { return e.dimensions }

// Embed vectorizes text. Token usage is reported as the number of features hashed.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmbeddingResult{}, err
	}
	vec, n := e.vectorize(text)
	return domain.EmbeddingResult{Embedding: vec, PromptTokens: n, TotalTokens: n}, nil
}

// BatchEmbed vectorizes each text independently.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}
	out := make([][]float32, len(texts))
	total := 0
	for i, t := range texts {
		if err := ctx.Err(); err != nil {
			return domain.BatchEmbeddingResult{}, err
		}
		vec, n := e.vectorize(t)
		out[i] = vec
		total += n
	}
	return domain.BatchEmbeddingResult{Embeddings: out, PromptTokens: total, TotalTokens: total}, nil
}

// HealthCheck always succeeds.
func (e *Embedder) HealthCheck(context.Context) error { return nil }

func (e *Embedder) tokenize(text string) []string {
	return e.tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func (e *Embedder) vectorize(text string) ([]float32, int) {
	acc := make([]float64, e.dimensions)
	tokens := e.tokenize(text)

	features := 0
	if len(tokens) == 0 {
		// Punctuation-only input still gets a deterministic non-zero vector.
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			e.add(acc, trimmed, 1)
			features++
		}
	}
	for i, tok := range tokens {
		e.add(acc, tok, 1)
		features++
		if i > 0 {
			e.add(acc, tokens[i-1]+" "+tok, 0.5)
			features++
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	vec := make([]float32, e.dimensions)
	if norm == 0 {
		return vec, features
	}
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec, features
}

// add hashes feature into a bucket; the top bit of the hash picks the sign so
// collisions cancel out on average instead of piling up.
func (e *Embedder) add(acc []float64, feature string, weight float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()

	idx := int(sum % uint64(e.dimensions))
	if sum>>63 == 1 {
		weight = -weight
	}
	acc[idx] += weight
}
