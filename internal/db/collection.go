package db

import (
	"errors"
	"fmt"
)

// DistanceMetric used by vector similarity queries.
type DistanceMetric string

const (
	// DistanceL2 is Euclidean distance.
	DistanceL2 DistanceMetric = "L2"
	// DistanceIP is inner product distance.
	DistanceIP DistanceMetric = "IP"
	// DistanceCosine is cosine distance.
	DistanceCosine DistanceMetric = "COSINE"
)

// VectorAlgorithm selects the indexing algorithm where the backend supports a choice.
type VectorAlgorithm string

const (
	// VectorHNSW uses the HNSW algorithm.
	VectorHNSW VectorAlgorithm = "HNSW"
	// VectorFlat uses the FLAT (brute-force) algorithm.
	VectorFlat VectorAlgorithm = "FLAT"
)

// CollectionDefinition describes a vector collection.
type CollectionDefinition struct {
	Name        string
	Dimensions  int
	Distance    DistanceMetric
	Algorithm   VectorAlgorithm
	M           int // HNSW max edges per node
	EFConstruct int // HNSW build-time dynamic list size
	Metadata    map[string]string
}

// Validate checks that the collection definition is well-formed.
func (d *CollectionDefinition) Validate() error {
	if d.Name == "" {
		return errors.New("collection name is required")
	}
	if !IsValidIdentifier(d.Name) {
		return fmt.Errorf("collection name %q contains invalid characters", d.Name)
	}
	if d.Dimensions <= 0 {
		return errors.New("vector dimensions must be positive")
	}
	switch d.Distance {
	case DistanceCosine, DistanceL2, DistanceIP:
	default:
		return fmt.Errorf("unknown distance metric %q", d.Distance)
	}
	switch d.Algorithm {
	case VectorHNSW, VectorFlat:
	default:
		return fmt.Errorf("unknown vector algorithm %q", d.Algorithm)
	}
	return nil
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
