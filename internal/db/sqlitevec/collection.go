package sqlitevec

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/quantmaster/internal/db"
)

// EnsureCollection creates the vec0 table and catalog row for def.
// Existing collections are left untouched.
func (s *Store) EnsureCollection(ctx context.Context, def *db.CollectionDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	column, err := vectorColumn(def)
	if err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}

	meta := []byte("{}")
	if len(def.Metadata) > 0 {
		if meta, err = json.Marshal(def.Metadata); err != nil {
			return fmt.Errorf("marshal collection metadata: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpCreateCollection, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	ddl := fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS %s USING vec0(id TEXT PRIMARY KEY, %s)`,
		vecTable(def.Name), column)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return &db.Error{Op: db.OpCreateCollection, Err: err}
	}

	const q = `INSERT INTO collections(name, dimensions, distance, metadata) VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO NOTHING`
	if _, err := tx.ExecContext(ctx, q, def.Name, def.Dimensions, string(def.Distance), string(meta)); err != nil {
		return &db.Error{Op: db.OpCreateCollection, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpCreateCollection, Err: err}
	}
	return nil
}

// CollectionExists reports whether the collection has a catalog row.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, &db.Error{Op: db.OpMatch, Err: err}
	}
	return n > 0, nil
}

// vectorColumn renders the vec0 column declaration. vec0 supports L2 and cosine only.
func vectorColumn(def *db.CollectionDefinition) (string, error) {
	switch def.Distance {
	case db.DistanceCosine:
		return fmt.Sprintf("embedding float[%d] distance_metric=cosine", def.Dimensions), nil
	case db.DistanceL2:
		return fmt.Sprintf("embedding float[%d]", def.Dimensions), nil
	default:
		return "", fmt.Errorf("distance metric %s not supported by sqlite-vec", def.Distance)
	}
}

// vecTable quotes the per-collection vec0 table name. Names are validated
// by db.IsValidIdentifier and never contain quotes.
func vecTable(collection string) string {
	return `"vec_` + collection + `"`
}
