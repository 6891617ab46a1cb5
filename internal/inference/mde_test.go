package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

func TestMinimumDetectableEffect_Proportion(t *testing.T) {
	got, err := MinimumDetectableEffect(MDEProportion, 1000, 0.1, DefaultAlpha, DefaultPower)
	require.NoError(t, err)
	assert.InDelta(t, 0.03758, got.Effect, 1e-4)
	assert.InDelta(t, 37.58, got.Percentage, 0.1)
}

func TestMinimumDetectableEffect_DefaultsToProportion(t *testing.T) {
	a, err := MinimumDetectableEffect("", 500, 0.2, DefaultAlpha, DefaultPower)
	require.NoError(t, err)
	b, err := MinimumDetectableEffect(MDEProportion, 500, 0.2, DefaultAlpha, DefaultPower)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMinimumDetectableEffect_Mean(t *testing.T) {
	got, err := MinimumDetectableEffect(MDEMean, 50, 10, DefaultAlpha, DefaultPower)
	require.NoError(t, err)
	assert.InDelta(t, 0.5602, got.Effect, 1e-4)
	assert.InDelta(t, 5.602, got.Percentage, 1e-3)
}

func TestMinimumDetectableEffect_ShrinksWithN(t *testing.T) {
	small, err := MinimumDetectableEffect(MDEMean, 20, 1, DefaultAlpha, DefaultPower)
	require.NoError(t, err)
	large, err := MinimumDetectableEffect(MDEMean, 2000, 1, DefaultAlpha, DefaultPower)
	require.NoError(t, err)
	assert.Less(t, large.Effect, small.Effect)
}

func TestMinimumDetectableEffect_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		kind    MDEKind
		n, base float64
	}{
		{"zero n", MDEMean, 0, 1},
		{"zero baseline", MDEMean, 10, 0},
		{"proportion baseline above one", MDEProportion, 10, 1.5},
		{"unknown kind", "ratio", 10, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MinimumDetectableEffect(tt.kind, tt.n, tt.base, DefaultAlpha, DefaultPower)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
