package valkey

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/quantmaster/internal/db"
)

// kvKey namespaces cache entries under the store prefix, apart from documents and indexes.
func (s *Store) kvKey(key string) string {
	return s.prefix + "kv:" + key
}

// Get returns the value at key or db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.do(ctx, s.b().Get().Key(s.kvKey(key)).Build()).AsBytes()
	switch {
	case rueidis.IsRedisNil(err):
		return nil, db.ErrKeyNotFound
	case err != nil:
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores value at key, expiring after the configured KV TTL when one is set.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	set := s.b().Set().Key(s.kvKey(key)).Value(rueidis.BinaryString(value))
	var cmd rueidis.Completed
	if secs := int64(s.kvTTL.Seconds()); secs > 0 {
		cmd = set.ExSeconds(secs).Build()
	} else {
		cmd = set.Build()
	}
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}
