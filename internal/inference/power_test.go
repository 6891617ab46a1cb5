package inference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

func TestCalculateSampleSize_Medium(t *testing.T) {
	n, err := CalculateSampleSize(0.5, DefaultAlpha, DefaultPower)
	require.NoError(t, err)
	// Exact normal quantiles give 63; pwr.t.test gives 64.
	assert.InDelta(t, 64, n, 1)
}

func TestCalculateSampleSize_StricterDesign(t *testing.T) {
	n, err := CalculateSampleSize(0.5, 0.01, 0.90)
	require.NoError(t, err)
	assert.Equal(t, 119, n)
}

func TestCalculateSampleSize_SignOfEffectIgnored(t *testing.T) {
	pos, err := CalculateSampleSize(0.3, DefaultAlpha, DefaultPower)
	require.NoError(t, err)
	neg, err := CalculateSampleSize(-0.3, DefaultAlpha, DefaultPower)
	require.NoError(t, err)
	assert.Equal(t, pos, neg)
}

func TestCalculateSampleSize_InvalidInput(t *testing.T) {
	tests := []struct {
		name            string
		d, alpha, power float64
	}{
		{"zero effect", 0, 0.05, 0.8},
		{"nan effect", math.NaN(), 0.05, 0.8},
		{"inf effect", math.Inf(1), 0.05, 0.8},
		{"alpha zero", 0.5, 0, 0.8},
		{"alpha one", 0.5, 1, 0.8},
		{"power one", 0.5, 0.05, 1},
		{"power zero", 0.5, 0.05, 0},
		{"tiny effect overflows", 1e-9, 0.05, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateSampleSize(tt.d, tt.alpha, tt.power)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCalculatePower_Medium(t *testing.T) {
	p, err := CalculatePower(64, 0.5, DefaultAlpha)
	require.NoError(t, err)
	assert.InDelta(t, 0.80, p, 0.01)
}

func TestCalculatePower_Bounds(t *testing.T) {
	p, err := CalculatePower(1e6, 2, DefaultAlpha)
	require.NoError(t, err)
	assert.LessOrEqual(t, p, 1.0)

	p, err = CalculatePower(2, -5, DefaultAlpha)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p, 0.0)
}

func TestCalculatePower_MonotonicInN(t *testing.T) {
	prev := 0.0
	for n := 2.0; n <= 400; n += 2 {
		p, err := CalculatePower(n, 0.3, DefaultAlpha)
		require.NoError(t, err)
		require.GreaterOrEqual(t, p, prev, "n=%v", n)
		prev = p
	}
}

func TestCalculatePower_MonotonicInEffectSize(t *testing.T) {
	prev := 0.0
	for d := -3.0; d <= 3.0; d += 0.01 {
		p, err := CalculatePower(64, d, DefaultAlpha)
		require.NoError(t, err)
		require.GreaterOrEqual(t, p, prev, "d=%v", d)
		prev = p
	}
}

func TestCalculatePower_MonotonicInAlpha(t *testing.T) {
	prev := 0.0
	for alpha := 0.001; alpha < 0.999; alpha += 0.001 {
		p, err := CalculatePower(64, 0.5, alpha)
		require.NoError(t, err)
		require.GreaterOrEqual(t, p, prev, "alpha=%v", alpha)
		prev = p
	}
}

func TestCalculateSampleSize_NonIncreasingInEffectSize(t *testing.T) {
	prev := math.MaxInt
	for d := 0.01; d <= 5.0; d += 0.01 {
		n, err := CalculateSampleSize(d, DefaultAlpha, DefaultPower)
		require.NoError(t, err)
		require.LessOrEqual(t, n, prev, "d=%v", d)
		prev = n
	}
}

func TestCalculatePower_InvalidInput(t *testing.T) {
	for _, n := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := CalculatePower(n, 0.5, DefaultAlpha)
		require.ErrorIs(t, err, domain.ErrInvalidInput, "n=%v", n)
	}
	_, err := CalculatePower(10, 0.5, 1.2)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = CalculatePower(10, math.NaN(), 0.05)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSampleSizeAndPower_RoundTrip(t *testing.T) {
	for _, d := range []float64{0.1, 0.2, 0.3, 0.5, 0.8, 1.0, 1.5, 2.0, 3.0} {
		for _, alpha := range []float64{0.01, 0.05, 0.1} {
			for _, target := range []float64{0.5, 0.7, 0.8, 0.9, 0.95, 0.99} {
				n, err := CalculateSampleSize(d, alpha, target)
				require.NoError(t, err)
				require.Positive(t, n)

				p, err := CalculatePower(float64(n), d, alpha)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, p, target-1e-3, "d=%v alpha=%v power=%v n=%d", d, alpha, target, n)
			}
		}
	}
}
