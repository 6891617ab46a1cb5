package inference

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// Conventional defaults.
const (
	DefaultAlpha = 0.05
	DefaultPower = 0.80
)

// maxSampleSize bounds CalculateSampleSize results; anything larger means the
// effect size is too small to be meaningful.
const maxSampleSize = math.MaxInt32

// CalculatePower returns the power of a two-sided two-sample test with n
// observations per group, clamped to [0, 1].
func CalculatePower(n, effectSize, alpha float64) (float64, error) {
	if !(n > 0) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("n must be positive, got %v: %w", n, domain.ErrInvalidInput)
	}
	if math.IsNaN(effectSize) || math.IsInf(effectSize, 0) {
		return 0, fmt.Errorf("effect size must be finite: %w", domain.ErrInvalidInput)
	}
	if err := openUnit("alpha", alpha); err != nil {
		return 0, err
	}

	zAlpha := NormalQuantile(1 - alpha/2)
	ncp := effectSize * math.Sqrt(n/2)
	return clamp01(1 - NormalCDF(zAlpha-ncp)), nil
}

// CalculateSampleSize returns the per-group n for a two-sided two-sample test.
func CalculateSampleSize(effectSize, alpha, power float64) (int, error) {
	zSum, err := zSum(effectSize, alpha, power)
	if err != nil {
		return 0, err
	}
	return ceilSampleSize(2 * math.Pow(zSum/effectSize, 2))
}

// zSum validates the common inputs and returns zAlpha + zBeta.
func zSum(effectSize, alpha, power float64) (float64, error) {
	if effectSize == 0 || math.IsNaN(effectSize) || math.IsInf(effectSize, 0) {
		return 0, fmt.Errorf("effect size must be finite and non-zero, got %v: %w", effectSize, domain.ErrInvalidInput)
	}
	if err := openUnit("alpha", alpha); err != nil {
		return 0, err
	}
	if err := openUnit("power", power); err != nil {
		return 0, err
	}
	return NormalQuantile(1-alpha/2) + NormalQuantile(power), nil
}

func ceilSampleSize(n float64) (int, error) {
	if math.IsNaN(n) || n > maxSampleSize {
		return 0, fmt.Errorf("required sample size is unbounded: %w", domain.ErrInvalidInput)
	}
	return max(1, int(math.Ceil(n))), nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
