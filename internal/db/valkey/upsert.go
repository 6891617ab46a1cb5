package valkey

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/quantmaster/internal/db"
)

// Upsert stores records as hashes in a single DoMulti round-trip.
// HSET overwrites existing fields, so re-adding an ID replaces the document.
func (s *Store) Upsert(ctx context.Context, collection string, records []db.Record) error {
	if len(records) == 0 {
		return nil
	}

	prefix := s.docPrefix(collection)
	cmds := make([]rueidis.Completed, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return errors.New("record id is required")
		}
		if len(rec.Vector) == 0 {
			return fmt.Errorf("record %s: vector is required", rec.ID)
		}
		meta, err := json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("record %s: marshal metadata: %w", rec.ID, err)
		}
		cmds[i] = s.b().Hset().Key(prefix+rec.ID).FieldValue().
			FieldValue(fieldContent, rec.Content).
			FieldValue(fieldMetadata, string(meta)).
			FieldValue(fieldVector, vectorToBytes(rec.Vector)).
			Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpHSet, Err: fmt.Errorf("record %s: %w", records[i].ID, err)}
		}
	}
	return nil
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
