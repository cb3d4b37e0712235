package acf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ar1Series(n int, phi float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	for i := 1; i < n; i++ {
		x[i] = phi*x[i-1] + rng.NormFloat64()
	}
	return x
}

func TestAutoCorrSingeSegment(t *testing.T) {
	x := ar1Series(4000, 0.6, 5)
	acf, err := AutoCorrSingeSegment(x, 5)
	require.NoError(t, err)
	require.Len(t, acf, 5)
	assert.InDelta(t, 1.0, acf[0], 1e-9)
	assert.InDelta(t, 0.6, acf[1], 0.05)
	assert.InDelta(t, 0.36, acf[2], 0.06)

	_, err = AutoCorrSingeSegment([]float64{1, 1, 1}, 2)
	assert.Error(t, err)
}

func TestSegmentsDirectMatchesFFT(t *testing.T) {
	x := ar1Series(600, 0.4, 9)
	x[100] = math.NaN()
	x[350] = math.NaN()
	segs := SplitByNaN(x)
	require.Len(t, segs, 3)

	ms, err := NewMultiSeg(segs)
	require.NoError(t, err)
	assert.Equal(t, 598, ms.Len())

	direct, err := ms.AutoCorrSegments(30)
	require.NoError(t, err)
	fft, err := ms.AutoCorrSegmentsFFT(30)
	require.NoError(t, err)
	assert.InDeltaSlice(t, direct, fft, 1e-9)
}

func TestSingleSegmentMatchesMulti(t *testing.T) {
	x := ar1Series(300, 0.5, 2)
	single, err := AutoCorrSingeSegment(x, 10)
	require.NoError(t, err)
	ms, err := NewMultiSeg([][]float64{x})
	require.NoError(t, err)
	multi, err := ms.AutoCorrSegments(10)
	require.NoError(t, err)
	assert.InDeltaSlice(t, single, multi, 1e-9)
}

func TestSplitByNaN(t *testing.T) {
	nan := math.NaN()
	segs := SplitByNaN([]float64{nan, 1, 2, nan, nan, 3, nan})
	assert.Equal(t, [][]float64{{1, 2}, {3}}, segs)
	assert.Empty(t, SplitByNaN([]float64{nan}))
}

func TestFitLogACF(t *testing.T) {
	acf := make([]float64, 60)
	acf[0] = 1
	for lag := 1; lag < len(acf); lag++ {
		acf[lag] = 0.8 * math.Pow(float64(lag), -0.4)
	}
	fit, err := FitLogACF(acf, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, fit.Gamma, 1e-9)
	assert.InDelta(t, math.Log(0.8), fit.Intercept, 1e-9)
	assert.InDelta(t, 1.0, fit.R2, 1e-9)

	s, e := AutoFitRange(acf)
	assert.Less(t, s, e)
	fit, err = FitLogACFRange(acf, s, e, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, fit.Gamma, 1e-9)

	_, err = FitLogACF([]float64{1, -0.1, -0.2}, 2)
	assert.Error(t, err)
}

// 等长的段共用一个FFT, 结果仍与直接法一致; 配对不足的lag为NaN
func TestSegmentsFFT_EqualLengthSegments(t *testing.T) {
	x := ar1Series(600, 0.5, 13)
	ms, err := NewMultiSeg([][]float64{x[:200], x[200:400], x[400:]})
	require.NoError(t, err)

	direct, err := ms.AutoCorrSegments(250)
	require.NoError(t, err)
	fft, err := ms.AutoCorrSegmentsFFT(250)
	require.NoError(t, err)
	require.Len(t, fft, 250)
	for k := 0; k < 200; k++ {
		assert.InDelta(t, direct[k], fft[k], 1e-9, "lag %d", k)
	}
	assert.True(t, math.IsNaN(fft[200]))
	assert.True(t, math.IsNaN(fft[249]))
}

func TestAutoCorrSingeSegment_ShortSeries(t *testing.T) {
	acf, err := AutoCorrSingeSegment([]float64{1, 2, 3, 5}, 10)
	require.NoError(t, err)
	require.Len(t, acf, 4)
	assert.InDelta(t, 1.0, acf[0], 1e-12)
	// u = [-1.75,-0.75,0.25,2.25], σ² = 8.75/4, C(3) = u0·u3 / (σ²·1)
	assert.InDelta(t, -1.75*2.25/(8.75/4), acf[3], 1e-12)
}
