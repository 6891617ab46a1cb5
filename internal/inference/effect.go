package inference

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// EffectSizeKind selects the effect size measure.
type EffectSizeKind string

// Supported measures.
const (
	CohensD     EffectSizeKind = "cohens_d"
	EtaSquared  EffectSizeKind = "eta_squared"
	FSquared    EffectSizeKind = "f_squared"
	OddsRatio   EffectSizeKind = "odds_ratio"
	Correlation EffectSizeKind = "correlation"
)

// Benchmarks are the conventional small/medium/large thresholds.
type Benchmarks struct {
	Small  float64 `json:"small"`
	Medium float64 `json:"medium"`
	Large  float64 `json:"large"`
}

var benchmarks = map[EffectSizeKind]Benchmarks{
	CohensD:     {0.2, 0.5, 0.8},
	EtaSquared:  {0.01, 0.06, 0.14},
	FSquared:    {0.02, 0.15, 0.35},
	OddsRatio:   {1.68, 3.47, 6.71},
	Correlation: {0.1, 0.3, 0.5},
}

// EffectSizeResult is a computed effect size. CohensD is set for measures
// that convert to a standardized mean difference.
type EffectSizeResult struct {
	Kind       EffectSizeKind
	Value      float64
	CohensD    *float64
	Benchmarks Benchmarks
}

// EffectSize computes the measure from named inputs:
//
//	cohens_d:    mean1, mean2, sd_pooled  or  t, n1, n2
//	eta_squared: ss_effect, ss_total
//	f_squared:   r_squared
//	odds_ratio:  or
//	correlation: r
func EffectSize(kind EffectSizeKind, values map[string]float64) (EffectSizeResult, error) {
	b, ok := benchmarks[kind]
	if !ok {
		return EffectSizeResult{}, fmt.Errorf("unknown effect size type %q: %w", kind, domain.ErrInvalidInput)
	}
	res := EffectSizeResult{Kind: kind, Benchmarks: b}

	switch kind {
	case CohensD:
		if has(values, "mean1", "mean2", "sd_pooled") {
			if values["sd_pooled"] <= 0 {
				return res, invalid("sd_pooled must be positive")
			}
			res.Value = (values["mean1"] - values["mean2"]) / values["sd_pooled"]
		} else if has(values, "t", "n1", "n2") {
			n1, n2 := values["n1"], values["n2"]
			if n1 <= 0 || n2 <= 0 {
				return res, invalid("n1 and n2 must be positive")
			}
			res.Value = values["t"] * math.Sqrt((n1+n2)/(n1*n2))
		} else {
			return res, invalid("cohens_d needs mean1, mean2, sd_pooled or t, n1, n2")
		}
	case EtaSquared:
		if !has(values, "ss_effect", "ss_total") {
			return res, invalid("eta_squared needs ss_effect and ss_total")
		}
		if values["ss_total"] <= 0 {
			return res, invalid("ss_total must be positive")
		}
		res.Value = values["ss_effect"] / values["ss_total"]
	case FSquared:
		if !has(values, "r_squared") {
			return res, invalid("f_squared needs r_squared")
		}
		r2 := values["r_squared"]
		if r2 < 0 || r2 >= 1 {
			return res, invalid("r_squared must be in [0, 1)")
		}
		res.Value = r2 / (1 - r2)
	case OddsRatio:
		if !has(values, "or") {
			return res, invalid("odds_ratio needs or")
		}
		or := values["or"]
		if or <= 0 {
			return res, invalid("or must be positive")
		}
		res.Value = or
		d := math.Log(or) * math.Sqrt(3) / math.Pi
		res.CohensD = &d
	case Correlation:
		if !has(values, "r") {
			return res, invalid("correlation needs r")
		}
		r := values["r"]
		if r <= -1 || r >= 1 {
			return res, invalid("r must be in (-1, 1)")
		}
		res.Value = r
		d := 2 * r / math.Sqrt(1-r*r)
		res.CohensD = &d
	}

	if math.IsNaN(res.Value) || math.IsInf(res.Value, 0) {
		return res, invalid("effect size is not finite")
	}
	return res, nil
}

func has(values map[string]float64, keys ...string) bool {
	for _, k := range keys {
		if _, ok := values[k]; !ok {
			return false
		}
	}
	return true
}

func invalid(msg string) error {
	return fmt.Errorf("%s: %w", msg, domain.ErrInvalidInput)
}
