package sqlitevec_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/quantmaster/internal/db"
	"github.com/kailas-cloud/quantmaster/internal/db/sqlitevec"
)

func openStore(t *testing.T) *sqlitevec.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "quantmaster.db")
	s, err := sqlitevec.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func ensure(t *testing.T, s *sqlitevec.Store, name string, dim int) {
	t.Helper()
	def := db.NewCollection(name).Dimensions(dim).Meta("category", "foundations").MustBuild()
	require.NoError(t, s.EnsureCollection(context.Background(), def))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := sqlitevec.Open(context.Background(), "")
	require.Error(t, err)
}

func TestStore_PingAndReady(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.WaitForReady(context.Background(), time.Second))
}

func TestStore_EnsureCollectionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	ok, err := s.CollectionExists(ctx, "power_analysis")
	require.NoError(t, err)
	assert.False(t, ok)

	ensure(t, s, "power_analysis", 3)
	ensure(t, s, "power_analysis", 3)

	ok, err = s.CollectionExists(ctx, "power_analysis")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_EnsureCollectionRejectsInnerProduct(t *testing.T) {
	s := openStore(t)
	def := db.NewCollection("x").Dimensions(3).Distance(db.DistanceIP).MustBuild()
	require.Error(t, s.EnsureCollection(context.Background(), def))
}

func TestStore_UpsertAndSearch(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	ensure(t, s, "hypothesis_testing", 3)

	err := s.Upsert(ctx, "hypothesis_testing", []db.Record{
		{ID: "t", Content: "t-test", Metadata: map[string]any{"source": "student"}, Vector: []float32{1, 0, 0}},
		{ID: "chi", Content: "chi-square", Vector: []float32{0, 1, 0}},
		{ID: "z", Content: "z-test", Vector: []float32{0.9, 0.1, 0}},
	})
	require.NoError(t, err)

	res, err := s.SearchKNN(ctx, &db.KNNQuery{Collection: "hypothesis_testing", Vector: []float32{1, 0, 0}, K: 2})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	assert.Equal(t, "t", res.Entries[0].ID)
	assert.Equal(t, "t-test", res.Entries[0].Content)
	assert.Equal(t, "student", res.Entries[0].Metadata["source"])
	assert.InDelta(t, 0, res.Entries[0].Distance, 1e-6)
	assert.Equal(t, "z", res.Entries[1].ID)
	assert.LessOrEqual(t, res.Entries[0].Distance, res.Entries[1].Distance)
}

func TestStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	ensure(t, s, "did", 2)

	require.NoError(t, s.Upsert(ctx, "did", []db.Record{{ID: "a", Content: "old", Vector: []float32{1, 0}}}))
	require.NoError(t, s.Upsert(ctx, "did", []db.Record{{ID: "a", Content: "new", Vector: []float32{0, 1}}}))

	res, err := s.SearchKNN(ctx, &db.KNNQuery{Collection: "did", Vector: []float32{0, 1}, K: 10})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "new", res.Entries[0].Content)
	assert.InDelta(t, 0, res.Entries[0].Distance, 1e-6)
}

func TestStore_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	ensure(t, s, "iv", 2)
	ensure(t, s, "rdd", 2)

	require.NoError(t, s.Upsert(ctx, "iv", []db.Record{{ID: "a", Content: "2SLS", Vector: []float32{1, 0}}}))

	res, err := s.SearchKNN(ctx, &db.KNNQuery{Collection: "rdd", Vector: []float32{1, 0}, K: 5})
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
}

func TestStore_UnknownCollection(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.SearchKNN(ctx, &db.KNNQuery{Collection: "missing", Vector: []float32{1}, K: 1})
	require.ErrorIs(t, err, db.ErrCollectionNotFound)

	err = s.Upsert(ctx, "missing", []db.Record{{ID: "a", Vector: []float32{1}}})
	require.ErrorIs(t, err, db.ErrCollectionNotFound)
}

func TestStore_KV(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, db.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	require.NoError(t, s.Set(ctx, "k", []byte("v2")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kb.db")

	s, err := sqlitevec.Open(ctx, path)
	require.NoError(t, err)
	ensure(t, s, "meta_basic", 2)
	require.NoError(t, s.Upsert(ctx, "meta_basic", []db.Record{{ID: "a", Content: "I²", Vector: []float32{1, 0}}}))
	s.Close()

	s, err = sqlitevec.Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	res, err := s.SearchKNN(ctx, &db.KNNQuery{Collection: "meta_basic", Vector: []float32{1, 0}, K: 1})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "I²", res.Entries[0].Content)
}
