package npCorr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelate(t *testing.T) {
	a := []float64{1, 2, 3}
	v := []float64{0, 1, 0.5}

	full, err := Correlate(a, v, FULL_MODE)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 2, 3.5, 3, 0}, full, 1e-12)

	valid, err := Correlate(a, v, VALID_MODE)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3.5}, valid, 1e-12)

	_, err = Correlate(v[:1], a, VALID_MODE)
	assert.Error(t, err)
	_, err = Correlate(nil, a, FULL_MODE)
	assert.Error(t, err)
}

func TestConvolve(t *testing.T) {
	out, err := Convolve([]float64{1, 2, 3}, []float64{0, 1, 0.5}, FULL_MODE)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 2.5, 4, 1.5}, out, 1e-12)
}

func TestRollingMean(t *testing.T) {
	out, err := RollingMean([]float64{1, 2, 3, 4, 5, 6}, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3, 4, 5}, out, 1e-12)

	one, err := RollingMean([]float64{4, 5}, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4, 5}, one, 1e-12)
}
