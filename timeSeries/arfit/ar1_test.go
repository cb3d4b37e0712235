package arfit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitAR1_ShortSample(t *testing.T) {
	assert.Equal(t, 0.0, FitAR1(nil))
	assert.Equal(t, 0.0, FitAR1([]float64{}))
	assert.Equal(t, 0.0, FitAR1([]float64{3.7}))
	assert.Equal(t, 0.0, FitAR1([]float64{-1e9}))
}

func TestFitAR1_Noiseless(t *testing.T) {
	e := make([]float64, 30)
	e[0] = 1.0
	for i := 1; i < len(e); i++ {
		e[i] = 0.5 * e[i-1]
	}
	assert.Equal(t, 0.5, FitAR1(e))

	neg := []float64{-2, -1, -0.5, -0.25}
	assert.Equal(t, 0.5, FitAR1(neg))
}

func TestFitAR1_ZeroLags(t *testing.T) {
	assert.Equal(t, 0.0, FitAR1([]float64{0, 0, 0, 5}))
}

func TestFitAR1_RecoversCoefficient(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := make([]float64, 5000)
	for i := 1; i < len(e); i++ {
		e[i] = -0.3*e[i-1] + rng.NormFloat64()
	}
	assert.InDelta(t, -0.3, FitAR1(e), 0.05)
}

func TestWhiten(t *testing.T) {
	e := []float64{1, 2, 4, 3}
	xi := Whiten(e, 0.5)
	require.Len(t, xi, 3)
	assert.Equal(t, []float64{1.5, 3, 1}, xi)

	assert.Empty(t, Whiten([]float64{1}, 0.5))

	// φ拟合正确时, 无噪声序列白化后全为0
	ar := []float64{8, 4, 2, 1}
	for _, v := range Whiten(ar, FitAR1(ar)) {
		assert.InDelta(t, 0, v, 1e-12)
	}
}

func TestDetectAR(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	e := make([]float64, 2000)
	for i := 1; i < len(e); i++ {
		e[i] = 0.7*e[i-1] + rng.NormFloat64()
	}
	bestP, info := DetectAR(e, 4)
	assert.GreaterOrEqual(t, bestP, 1)
	require.NotEmpty(t, info)
	assert.Equal(t, 0, info[0].P)
	assert.InDelta(t, 0.7, info[1].Coeffs[0], 0.05)
}

func TestLjungBoxTest(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	white := make([]float64, 1000)
	for i := range white {
		white[i] = rng.NormFloat64()
	}
	reject, Q, p, err := LjungBoxTest(white, 10, 0.001)
	require.NoError(t, err)
	assert.False(t, reject)
	assert.Greater(t, Q, 0.0)
	assert.False(t, math.IsNaN(p))

	ar := make([]float64, 1000)
	for i := 1; i < len(ar); i++ {
		ar[i] = 0.8*ar[i-1] + white[i]
	}
	reject, _, _, err = LjungBoxTest(ar, 10, 0.01)
	require.NoError(t, err)
	assert.True(t, reject)

	_, _, _, err = LjungBoxTest(white[:5], 10, 0.05)
	assert.Error(t, err)
}
