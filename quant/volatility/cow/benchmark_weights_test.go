package cow

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var benchSigma = mat.NewSymDense(K, []float64{
	0.040, 0.012, 0.008,
	0.012, 0.030, 0.010,
	0.008, 0.010, 0.050,
})

// ------------------- 显式求逆 -------------------
func BenchmarkMinVarianceWeights(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = MinVarianceWeights(benchSigma)
	}
}

// ------------------- Cholesky 解 Σ̃x = 1 -------------------
func choleskyWeights(sigma *mat.SymDense) (Weights, bool) {
	var w Weights
	var chol mat.Cholesky
	if ok := chol.Factorize(sigma); !ok {
		return w, false
	}
	ones := mat.NewVecDense(K, []float64{1, 1, 1})
	var x mat.VecDense
	if err := chol.SolveVecTo(&x, ones); err != nil {
		return w, false
	}
	s := mat.Sum(&x)
	for k := range w {
		w[k] = x.AtVec(k) / s
	}
	return w, true
}

func BenchmarkCholeskyWeights(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = choleskyWeights(benchSigma)
	}
}

// ------------------- 端到端: 白化+协方差+权重 -------------------
func BenchmarkFitAndCombine(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	resids := [K][]float64{noise(rng, 2500, 1), noise(rng, 2500, 1), noise(rng, 2500, 1)}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FitAndCombine(resids)
	}
}

// ------------------- 验证两种解法一致 -------------------
func TestCholeskyMatchesInverse(t *testing.T) {
	w1, err := MinVarianceWeights(benchSigma)
	require.NoError(t, err)
	w2, ok := choleskyWeights(benchSigma)
	require.True(t, ok)

	t.Log("Inverse :", w1)
	t.Log("Cholesky:", w2)
	for k := range w1 {
		require.InDelta(t, w1[k], w2[k], 1e-12)
	}
}
