package inference

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// MDEKind selects the outcome scale for MinimumDetectableEffect.
type MDEKind string

// Outcome scales.
const (
	MDEProportion MDEKind = "proportion"
	MDEMean       MDEKind = "mean"
)

// MDE is the minimum detectable effect and its size relative to the baseline.
type MDE struct {
	Effect     float64
	Percentage float64
}

// MinimumDetectableEffect returns the smallest effect detectable with nPerGroup
// observations per arm.
//
//	proportion: (zα+zβ)·√(2·p·(1−p)/n), p = baseline
//	mean:       (zα+zβ)/√(n/2), in standard deviation units
func MinimumDetectableEffect(kind MDEKind, nPerGroup, baseline, alpha, power float64) (MDE, error) {
	if !(nPerGroup > 0) {
		return MDE{}, fmt.Errorf("n_per_group must be positive: %w", domain.ErrInvalidInput)
	}
	if baseline == 0 || math.IsNaN(baseline) {
		return MDE{}, fmt.Errorf("baseline must be non-zero: %w", domain.ErrInvalidInput)
	}
	if err := openUnit("alpha", alpha); err != nil {
		return MDE{}, err
	}
	if err := openUnit("power", power); err != nil {
		return MDE{}, err
	}
	z := NormalQuantile(1-alpha/2) + NormalQuantile(power)

	var mde float64
	switch kind {
	case MDEProportion, "":
		if err := openUnit("baseline", baseline); err != nil {
			return MDE{}, err
		}
		mde = z * math.Sqrt(2*baseline*(1-baseline)/nPerGroup)
	case MDEMean:
		mde = z / math.Sqrt(nPerGroup/2)
	default:
		return MDE{}, fmt.Errorf("unknown test type %q: %w", kind, domain.ErrInvalidInput)
	}

	return MDE{Effect: mde, Percentage: mde / baseline * 100}, nil
}
