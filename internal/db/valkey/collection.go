package valkey

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/quantmaster/internal/db"
)

// Hash fields of a stored document.
const (
	fieldContent  = "__content"
	fieldMetadata = "__metadata"
	fieldVector   = "vector"
	fieldScore    = "__vector_score"
)

// EnsureCollection creates the FT index backing the collection and records its
// metadata. An existing index is kept as is.
func (s *Store) EnsureCollection(ctx context.Context, def *db.CollectionDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}

	args := buildCreateArgs(s.indexName(def.Name), s.docPrefix(def.Name), def)
	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	hset := s.b().Hset().Key(s.collectionKey(def.Name)).FieldValue().
		FieldValue("dimensions", strconv.Itoa(def.Dimensions)).
		FieldValue("distance", string(def.Distance))
	for k, v := range def.Metadata {
		hset = hset.FieldValue("meta:"+k, v)
	}
	if err := s.do(ctx, hset.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// CollectionExists probes the backing index via FT.INFO; "unknown index name" means absent.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(s.indexName(name)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// buildCreateArgs renders
// <index> ON HASH PREFIX 1 <prefix> SCHEMA vector VECTOR <algo> <n> TYPE FLOAT32 DIM <d> DISTANCE_METRIC <m> [...].
func buildCreateArgs(index, prefix string, def *db.CollectionDefinition) []string {
	attrs := []string{
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(def.Dimensions),
		"DISTANCE_METRIC", string(def.Distance),
	}
	if def.Algorithm == db.VectorHNSW {
		if def.M > 0 {
			attrs = append(attrs, "M", strconv.Itoa(def.M))
		}
		if def.EFConstruct > 0 {
			attrs = append(attrs, "EF_CONSTRUCTION", strconv.Itoa(def.EFConstruct))
		}
	}

	args := []string{index, "ON", "HASH", "PREFIX", "1", prefix, "SCHEMA",
		fieldVector, "VECTOR", string(def.Algorithm), strconv.Itoa(len(attrs))}
	return append(args, attrs...)
}
