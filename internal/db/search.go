package db

// Record is a single document written into a collection.
type Record struct {
	ID       string
	Content  string
	Metadata map[string]any
	Vector   []float32
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	Collection string
	Vector     []float32
	K          int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Entries []SearchEntry
}

// SearchEntry is a single document hit. Distance is the cosine distance
// reported by the backend after NormalizeDistance.
type SearchEntry struct {
	ID       string
	Content  string
	Metadata map[string]any
	Distance float64
}

// DistanceEpsilon bounds the floating point error tolerated below zero.
const DistanceEpsilon = 1e-6

// NormalizeDistance snaps rounding noise in (-DistanceEpsilon, 0) to 0.
// Anything further below zero is returned unchanged so callers can reject it.
func NormalizeDistance(d float64) float64 {
	if d < 0 && d > -DistanceEpsilon {
		return 0
	}
	return d
}
