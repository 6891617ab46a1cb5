package inference

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// TestType selects the sample-size formula.
type TestType string

// Supported designs. Anything else uses the generic two-sample formula.
const (
	TTestTwo    TestType = "t_test_two"
	TTestPaired TestType = "t_test_paired"
	ANOVA       TestType = "anova"
	Regression  TestType = "regression"
	Proportion  TestType = "proportion"
	ChiSquare   TestType = "chi_square"
)

// Design defaults.
const (
	DefaultGroups     = 3
	DefaultPredictors = 5
)

// Design describes a planned study. Zero Alpha, Power, Groups and Predictors take defaults.
type Design struct {
	Test       TestType
	EffectSize float64
	Alpha      float64
	Power      float64
	Groups     int
	Predictors int
}

// SampleSize is the required n with the formula that produced it.
type SampleSize struct {
	N       int
	Formula string
}

// WithDefaults returns d with zero-valued optional fields defaulted.
func (d Design) WithDefaults() Design {
	if d.Alpha == 0 {
		d.Alpha = DefaultAlpha
	}
	if d.Power == 0 {
		d.Power = DefaultPower
	}
	if d.Groups == 0 {
		d.Groups = DefaultGroups
	}
	if d.Predictors == 0 {
		d.Predictors = DefaultPredictors
	}
	return d
}

// SampleSizeFor computes the required sample size for the design.
//
//   - t_test_two: n per group = 2·((zα+zβ)/d)²
//   - t_test_paired: n = ((zα+zβ)/d)²
//   - anova: n per group = k·(zα+zβ)²/f²
//   - regression: n ≈ 8/f² + predictors (Green, 1991)
//   - otherwise: the two-sample formula
func SampleSizeFor(d Design) (SampleSize, error) {
	d = d.WithDefaults()
	z, err := zSum(d.EffectSize, d.Alpha, d.Power)
	if err != nil {
		return SampleSize{}, err
	}

	var n float64
	var formula string
	switch d.Test {
	case TTestTwo:
		n = 2 * math.Pow(z/d.EffectSize, 2)
		formula = "n per group = 2 × ((z_α + z_β) / d)²"
	case TTestPaired:
		n = math.Pow(z/d.EffectSize, 2)
		formula = "n = ((z_α + z_β) / d)²"
	case ANOVA:
		if d.Groups < 2 {
			return SampleSize{}, fmt.Errorf("anova needs at least 2 groups, got %d: %w", d.Groups, domain.ErrInvalidInput)
		}
		n = float64(d.Groups) * z * z / (d.EffectSize * d.EffectSize)
		formula = "n per group = k × (z_α + z_β)² / f²"
	case Regression:
		if d.Predictors < 0 {
			return SampleSize{}, fmt.Errorf("predictors must be non-negative: %w", domain.ErrInvalidInput)
		}
		n = 8/(d.EffectSize*d.EffectSize) + float64(d.Predictors)
		formula = "n ≈ 8/f² + k (Green, 1991 rule)"
	default:
		n = 2 * math.Pow(z/d.EffectSize, 2)
		formula = "generic two-sample formula"
	}

	size, err := ceilSampleSize(n)
	if err != nil {
		return SampleSize{}, err
	}
	return SampleSize{N: size, Formula: formula}, nil
}
