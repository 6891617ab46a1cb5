// Package inference implements closed-form normal approximations for
// statistical power, sample size and effect sizes.
//
// Erf and ErfInv are deliberately low-order approximations. Power and sample
// size figures are expected to agree with tools built on the same formulas, so
// the approximations must not be replaced with higher-precision ones.
package inference

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// Abramowitz and Stegun 7.1.26.
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// Winitzki constant.
const erfInvA = 0.147

// Erf approximates the error function (max absolute error about 1.5e-7).
func Erf(x float64) float64 {
	s := sign(x)
	x = math.Abs(x)
	t := 1 / (1 + erfP*x)
	y := 1 - (((((erfA5*t+erfA4)*t+erfA3)*t+erfA2)*t+erfA1)*t)*math.Exp(-x*x)
	return s * y
}

// NormalCDF is the standard normal distribution function.
func NormalCDF(x float64) float64 {
	return 0.5 * (1 + Erf(x/math.Sqrt2))
}

// ErfInv approximates the inverse error function on (-1, 1).
// The result at ±1 is undefined.
func ErfInv(x float64) float64 {
	s := sign(x)
	x = math.Abs(x)
	ln := math.Log(1 - x*x)
	t1 := 2/(math.Pi*erfInvA) + ln/2
	t2 := ln / erfInvA
	return s * math.Sqrt(math.Sqrt(t1*t1-t2)-t1)
}

// NormalQuantile is the inverse of NormalCDF on (0, 1).
func NormalQuantile(p float64) float64 {
	return math.Sqrt2 * ErfInv(2*p-1)
}

// NormalQuantileChecked is NormalQuantile with the domain enforced.
func NormalQuantileChecked(p float64) (float64, error) {
	if err := openUnit("probability", p); err != nil {
		return 0, err
	}
	return NormalQuantile(p), nil
}

// sign follows the IEEE convention of returning 0 for ±0, so Erf(0) == 0 exactly.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func openUnit(name string, v float64) error {
	if !(v > 0 && v < 1) {
		return fmt.Errorf("%s must be in (0, 1), got %v: %w", name, v, domain.ErrInvalidInput)
	}
	return nil
}
