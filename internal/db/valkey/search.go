package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/quantmaster/internal/db"
)

// SearchKNN runs a KNN vector similarity search via FT.SEARCH.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if q.Collection == "" {
		return nil, fmt.Errorf("collection is required")
	}
	if len(q.Vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if q.K <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	args := []string{
		s.indexName(q.Collection),
		fmt.Sprintf("*=>[KNN %d @%s $BLOB]", q.K, fieldVector),
		"RETURN", "3", fieldContent, fieldMetadata, fieldScore,
		"LIMIT", "0", strconv.Itoa(q.K),
		"PARAMS", "2", "BLOB", vectorToBytes(q.Vector),
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") {
			return nil, fmt.Errorf("%s: %w", q.Collection, db.ErrCollectionNotFound)
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseKNNResult(raw, s.docPrefix(q.Collection))
}

// --- Result parsing ---

func parseKNNResult(raw []rueidis.RedisMessage, docPrefix string) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse key: %w", err)
		}
		fields, err := raw[i+1].ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse fields of %s: %w", key, err)
		}

		entry, err := parseEntry(strings.TrimPrefix(key, docPrefix), parseFieldPairs(fields))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Distance < entries[b].Distance
	})
	return &db.SearchResult{Entries: entries}, nil
}

func parseEntry(id string, fields map[string]string) (db.SearchEntry, error) {
	scoreStr, ok := fields[fieldScore]
	if !ok {
		return db.SearchEntry{}, fmt.Errorf("entry %s: missing %s", id, fieldScore)
	}
	score, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return db.SearchEntry{}, fmt.Errorf("entry %s: parse score: %w", id, err)
	}

	entry := db.SearchEntry{
		ID:       id,
		Content:  fields[fieldContent],
		Distance: db.NormalizeDistance(score),
	}
	if raw := fields[fieldMetadata]; raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &entry.Metadata); err != nil {
			return db.SearchEntry{}, fmt.Errorf("entry %s: parse metadata: %w", id, err)
		}
	}
	return entry, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}
