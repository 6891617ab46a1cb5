package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/inference"
)

// maxReportedPower caps displayed power so a curve never claims certainty.
const maxReportedPower = 0.999

const adequatePower = 0.80

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// --- calc_sample_size ---

type sampleSizeArgs struct {
	TestType   string  `json:"test_type"`
	EffectSize float64 `json:"effect_size"`
	Alpha      float64 `json:"alpha"`
	Power      float64 `json:"power"`
	Groups     int     `json:"groups"`
	Predictors int     `json:"predictors"`
}

// SampleSizeResponse is the calc_sample_size output.
type SampleSizeResponse struct {
	TestType       string  `json:"test_type"`
	EffectSize     float64 `json:"effect_size"`
	Alpha          float64 `json:"alpha"`
	Power          float64 `json:"power"`
	RequiredN      int     `json:"required_n"`
	Formula        string  `json:"formula"`
	Interpretation string  `json:"interpretation"`
	Note           string  `json:"note"`
}

func (d *Dispatcher) calcSampleSize(_ context.Context, raw json.RawMessage) (any, error) {
	var args sampleSizeArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	design := inference.Design{
		Test:       inference.TestType(args.TestType),
		EffectSize: args.EffectSize,
		Alpha:      args.Alpha,
		Power:      args.Power,
		Groups:     args.Groups,
		Predictors: args.Predictors,
	}.WithDefaults()

	size, err := inference.SampleSizeFor(design)
	if err != nil {
		return nil, err
	}
	return SampleSizeResponse{
		TestType:   args.TestType,
		EffectSize: design.EffectSize,
		Alpha:      design.Alpha,
		Power:      design.Power,
		RequiredN:  size.N,
		Formula:    size.Formula,
		Interpretation: fmt.Sprintf("Minimum sample to detect an effect of %s with %s%% power: %d",
			num(design.EffectSize), num(design.Power*100), size.N),
		Note: "Normal approximation; confirm with G*Power or the R pwr package",
	}, nil
}

// --- calc_power ---

type powerArgs struct {
	TestType   string  `json:"test_type"`
	N          float64 `json:"n"`
	EffectSize float64 `json:"effect_size"`
	Alpha      float64 `json:"alpha"`
}

// PowerResponse is the calc_power output.
type PowerResponse struct {
	N              float64 `json:"n"`
	EffectSize     float64 `json:"effect_size"`
	Alpha          float64 `json:"alpha"`
	EstimatedPower string  `json:"estimated_power"`
	Interpretation string  `json:"interpretation"`
	RCode          string  `json:"r_code"`
}

func (d *Dispatcher) calcPower(_ context.Context, raw json.RawMessage) (any, error) {
	var args powerArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	alpha := orDefault(args.Alpha, inference.DefaultAlpha)

	power, err := inference.CalculatePower(args.N, args.EffectSize, alpha)
	if err != nil {
		return nil, err
	}

	interpretation := "Low power: consider a larger sample"
	if power >= adequatePower {
		interpretation = "Adequate power (≥80%)"
	}
	return PowerResponse{
		N:              args.N,
		EffectSize:     args.EffectSize,
		Alpha:          alpha,
		EstimatedPower: fmt.Sprintf("%.3f", math.Min(power, maxReportedPower)),
		Interpretation: interpretation,
		RCode: fmt.Sprintf(`pwr.t.test(n = %s, d = %s, sig.level = %s, type = "two.sample")`,
			num(args.N), num(args.EffectSize), num(alpha)),
	}, nil
}

// --- calc_effect_size ---

type effectSizeArgs struct {
	Type   string             `json:"type"`
	Values map[string]float64 `json:"values"`
}

// EffectSizeResponse is the calc_effect_size output.
type EffectSizeResponse struct {
	Type           string               `json:"type"`
	EffectSize     string               `json:"effect_size"`
	CohensDApprox  string               `json:"cohens_d_approx,omitempty"`
	Interpretation inference.Benchmarks `json:"interpretation"`
	Magnitude      string               `json:"magnitude"`
}

func (d *Dispatcher) calcEffectSize(_ context.Context, raw json.RawMessage) (any, error) {
	var args effectSizeArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	res, err := inference.EffectSize(inference.EffectSizeKind(args.Type), args.Values)
	if err != nil {
		return nil, err
	}

	out := EffectSizeResponse{
		Type:           args.Type,
		EffectSize:     fmt.Sprintf("%.3f", res.Value),
		Interpretation: res.Benchmarks,
		Magnitude:      magnitude(res),
	}
	if res.CohensD != nil {
		out.CohensDApprox = fmt.Sprintf("%.3f", *res.CohensD)
	}
	return out, nil
}

// magnitude labels the effect against its benchmarks. Odds ratios below 1 are
// compared by their reciprocal, signed measures by absolute value.
func magnitude(res inference.EffectSizeResult) string {
	v := math.Abs(res.Value)
	if res.Kind == inference.OddsRatio && res.Value < 1 {
		v = 1 / res.Value
	}
	b := res.Benchmarks
	switch {
	case v >= b.Large:
		return "large"
	case v >= b.Medium:
		return "medium"
	case v >= b.Small:
		return "small"
	default:
		return "negligible"
	}
}

// --- mde_calculator ---

type mdeArgs struct {
	NPerGroup float64 `json:"n_per_group"`
	Baseline  float64 `json:"baseline"`
	Alpha     float64 `json:"alpha"`
	Power     float64 `json:"power"`
	TestType  string  `json:"test_type"`
}

// MDEResponse is the mde_calculator output.
type MDEResponse struct {
	NPerGroup      float64 `json:"n_per_group"`
	Baseline       float64 `json:"baseline"`
	Alpha          float64 `json:"alpha"`
	Power          float64 `json:"power"`
	MDE            string  `json:"mde"`
	MDEPercentage  string  `json:"mde_percentage"`
	Interpretation string  `json:"interpretation"`
}

func (d *Dispatcher) mdeCalculator(_ context.Context, raw json.RawMessage) (any, error) {
	var args mdeArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	alpha := orDefault(args.Alpha, inference.DefaultAlpha)
	power := orDefault(args.Power, inference.DefaultPower)

	mde, err := inference.MinimumDetectableEffect(inference.MDEKind(args.TestType), args.NPerGroup, args.Baseline, alpha, power)
	if err != nil {
		return nil, err
	}
	return MDEResponse{
		NPerGroup:     args.NPerGroup,
		Baseline:      args.Baseline,
		Alpha:         alpha,
		Power:         power,
		MDE:           fmt.Sprintf("%.4f", mde.Effect),
		MDEPercentage: fmt.Sprintf("%.2f%%", mde.Percentage),
		Interpretation: fmt.Sprintf("The current sample can detect a %.1f%% difference relative to the baseline",
			mde.Percentage),
	}, nil
}

// --- power_curve ---

type curveArgs struct {
	TestType    string    `json:"test_type"`
	NRange      []int     `json:"n_range"`
	EffectSizes []float64 `json:"effect_sizes"`
	Alpha       float64   `json:"alpha"`
}

// CurvePoint is one point of the power_curve output.
type CurvePoint struct {
	N          int     `json:"n"`
	EffectSize float64 `json:"effect_size"`
	Power      string  `json:"power"`
}

// CurveResponse is the power_curve output.
type CurveResponse struct {
	Alpha       float64      `json:"alpha"`
	NRange      []int        `json:"n_range"`
	EffectSizes []float64    `json:"effect_sizes"`
	Step        int          `json:"step"`
	CurveData   []CurvePoint `json:"curve_data"`
	RCode       string       `json:"r_code"`
}

func (d *Dispatcher) powerCurve(_ context.Context, raw json.RawMessage) (any, error) {
	var args curveArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if len(args.NRange) != 2 {
		return nil, fmt.Errorf("n_range must be [min, max]: %w", domain.ErrInvalidInput)
	}
	alpha := orDefault(args.Alpha, inference.DefaultAlpha)

	curve, err := inference.PowerCurve(args.NRange[0], args.NRange[1], args.EffectSizes, alpha)
	if err != nil {
		return nil, err
	}

	points := make([]CurvePoint, len(curve.Points))
	for i, p := range curve.Points {
		points[i] = CurvePoint{
			N:          p.N,
			EffectSize: p.EffectSize,
			Power:      fmt.Sprintf("%.3f", math.Min(p.Power, maxReportedPower)),
		}
	}

	sizes := make([]string, len(args.EffectSizes))
	for i, es := range args.EffectSizes {
		sizes[i] = num(es)
	}
	return CurveResponse{
		Alpha:       alpha,
		NRange:      args.NRange,
		EffectSizes: args.EffectSizes,
		Step:        curve.Step,
		CurveData:   points,
		RCode: fmt.Sprintf("library(pwr)\npower_curve <- pwr.t.test(n = seq(%d, %d, by=%d), d = c(%s), sig.level = %s, type = \"two.sample\")",
			args.NRange[0], args.NRange[1], curve.Step, strings.Join(sizes, ", "), num(alpha)),
	}, nil
}
