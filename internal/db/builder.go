package db

import (
	"sort"
	"strconv"
	"strings"
)

// CollectionBuilder is a fluent builder for collection definitions.
type CollectionBuilder struct {
	def CollectionDefinition
}

// NewCollection starts building a cosine/FLAT collection definition.
func NewCollection(name string) *CollectionBuilder {
	return &CollectionBuilder{
		def: CollectionDefinition{
			Name:      name,
			Distance:  DistanceCosine,
			Algorithm: VectorFlat,
		},
	}
}

// Dimensions sets the vector dimensionality.
func (b *CollectionBuilder) Dimensions(dim int) *CollectionBuilder {
	b.def.Dimensions = dim
	return b
}

// Distance sets the distance metric.
func (b *CollectionBuilder) Distance(d DistanceMetric) *CollectionBuilder {
	b.def.Distance = d
	return b
}

// HNSW switches the collection to the HNSW algorithm. Zero values keep backend defaults.
func (b *CollectionBuilder) HNSW(m, efConstruct int) *CollectionBuilder {
	b.def.Algorithm = VectorHNSW
	b.def.M = m
	b.def.EFConstruct = efConstruct
	return b
}

// Flat switches the collection to brute-force search.
func (b *CollectionBuilder) Flat() *CollectionBuilder {
	b.def.Algorithm = VectorFlat
	b.def.M = 0
	b.def.EFConstruct = 0
	return b
}

// Meta attaches a metadata pair to the collection.
func (b *CollectionBuilder) Meta(key, value string) *CollectionBuilder {
	if b.def.Metadata == nil {
		b.def.Metadata = make(map[string]string)
	}
	b.def.Metadata[key] = value
	return b
}

// Build validates and returns the collection definition.
func (b *CollectionBuilder) Build() (*CollectionDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	if b.def.Metadata != nil {
		def.Metadata = make(map[string]string, len(b.def.Metadata))
		for k, v := range b.def.Metadata {
			def.Metadata[k] = v
		}
	}
	return &def, nil
}

// MustBuild calls Build and panics on error.
func (b *CollectionBuilder) MustBuild() *CollectionDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a compact debug representation.
func (d *CollectionDefinition) String() string {
	parts := []string{
		d.Name,
		string(d.Algorithm),
		"DIM", strconv.Itoa(d.Dimensions),
		string(d.Distance),
	}
	if d.Algorithm == VectorHNSW {
		parts = append(parts, "M", strconv.Itoa(d.M), "EF", strconv.Itoa(d.EFConstruct))
	}
	keys := make([]string, 0, len(d.Metadata))
	for k := range d.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+d.Metadata[k])
	}
	return strings.Join(parts, " ")
}
