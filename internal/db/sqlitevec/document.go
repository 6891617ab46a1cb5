package sqlitevec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"

	"github.com/kailas-cloud/quantmaster/internal/db"
)

// Upsert inserts or replaces records in one transaction.
func (s *Store) Upsert(ctx context.Context, collection string, records []db.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.requireCollection(ctx, collection); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	table := vecTable(collection)
	for _, rec := range records {
		if rec.ID == "" {
			return errors.New("record id is required")
		}
		blob, err := sqlite_vec.SerializeFloat32(rec.Vector)
		if err != nil {
			return fmt.Errorf("record %s: serialize vector: %w", rec.ID, err)
		}
		meta := []byte("{}")
		if len(rec.Metadata) > 0 {
			if meta, err = json.Marshal(rec.Metadata); err != nil {
				return fmt.Errorf("record %s: marshal metadata: %w", rec.ID, err)
			}
		}

		// vec0 does not support ON CONFLICT; delete first for upsert.
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, rec.ID); err != nil {
			return &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("record %s: %w", rec.ID, err)}
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO `+table+`(id, embedding) VALUES (?, ?)`, rec.ID, blob); err != nil {
			return &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("record %s: %w", rec.ID, err)}
		}

		const q = `INSERT INTO documents(collection, id, content, metadata) VALUES (?, ?, ?, ?)
ON CONFLICT(collection, id) DO UPDATE SET content = excluded.content, metadata = excluded.metadata`
		if _, err := tx.ExecContext(ctx, q, collection, rec.ID, rec.Content, string(meta)); err != nil {
			return &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("record %s: %w", rec.ID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	return nil
}

// SearchKNN performs a k-nearest-neighbour search ordered by ascending distance.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if q.Collection == "" {
		return nil, errors.New("collection is required")
	}
	if len(q.Vector) == 0 {
		return nil, errors.New("vector is required")
	}
	if q.K <= 0 {
		return nil, errors.New("k must be positive")
	}
	if err := s.requireCollection(ctx, q.Collection); err != nil {
		return nil, err
	}

	blob, err := sqlite_vec.SerializeFloat32(q.Vector)
	if err != nil {
		return nil, fmt.Errorf("serialize query vector: %w", err)
	}

	query := `SELECT v.id, v.distance, COALESCE(d.content, ''), COALESCE(d.metadata, '{}')
FROM ` + vecTable(q.Collection) + ` v
LEFT JOIN documents d ON d.collection = ? AND d.id = v.id
WHERE v.embedding MATCH ? AND k = ?
ORDER BY v.distance`

	rows, err := s.db.QueryContext(ctx, query, q.Collection, blob, q.K)
	if err != nil {
		return nil, &db.Error{Op: db.OpMatch, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var entries []db.SearchEntry
	for rows.Next() {
		var e db.SearchEntry
		var meta string
		if err := rows.Scan(&e.ID, &e.Distance, &e.Content, &meta); err != nil {
			return nil, &db.Error{Op: db.OpMatch, Err: err}
		}
		e.Distance = db.NormalizeDistance(e.Distance)
		if meta != "" && meta != "{}" {
			if err := json.Unmarshal([]byte(meta), &e.Metadata); err != nil {
				return nil, fmt.Errorf("entry %s: parse metadata: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpMatch, Err: err}
	}

	return &db.SearchResult{Entries: entries}, nil
}

func (s *Store) requireCollection(ctx context.Context, name string) error {
	ok, err := s.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", name, db.ErrCollectionNotFound)
	}
	return nil
}
