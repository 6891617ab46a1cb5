package valkey

import (
	"time"

	"github.com/redis/rueidis"
)

// newTestStore wraps a mock client with the default prefix and an optional KV TTL.
func newTestStore(c rueidis.Client, kvTTL ...time.Duration) *Store {
	s := &Store{client: c, prefix: DefaultKeyPrefix}
	if len(kvTTL) > 0 {
		s.kvTTL = kvTTL[0]
	}
	return s
}
