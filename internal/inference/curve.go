package inference

import (
	"fmt"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// curveSteps is the approximate number of sample sizes evaluated by PowerCurve.
const curveSteps = 20

// CurvePoint is the power at one (n, effect size) pair.
type CurvePoint struct {
	N          int
	EffectSize float64
	Power      float64
}

// Curve is a power curve sampled every Step observations.
type Curve struct {
	Step   int
	Points []CurvePoint
}

// PowerCurve evaluates CalculatePower on about 20 evenly spaced sample sizes in
// [nMin, nMax] for every effect size.
func PowerCurve(nMin, nMax int, effectSizes []float64, alpha float64) (Curve, error) {
	if nMin <= 0 || nMax < nMin {
		return Curve{}, fmt.Errorf("n range [%d, %d] is invalid: %w", nMin, nMax, domain.ErrInvalidInput)
	}
	if len(effectSizes) == 0 {
		return Curve{}, fmt.Errorf("at least one effect size is required: %w", domain.ErrInvalidInput)
	}

	step := max(1, (nMax-nMin+curveSteps-1)/curveSteps)
	curve := Curve{Step: step}
	for n := nMin; n <= nMax; n += step {
		for _, d := range effectSizes {
			p, err := CalculatePower(float64(n), d, alpha)
			if err != nil {
				return Curve{}, err
			}
			curve.Points = append(curve.Points, CurvePoint{N: n, EffectSize: d, Power: p})
		}
	}
	return curve, nil
}
