// Package cow 条件最优权重(conditionally optimal weights)组合
//
// 对K个子模型的样本内残差:
//
//	φ_k   = AR(1)系数
//	ξ_k,t = e_k,t - φ_k·e_k,t-1
//	b_k   = φ_k·e_k,T                  (下一期偏差预测)
//	Σ̃     = Cov(ξ) + b·bᵀ
//	w     = Σ̃⁻¹·1 / (1ᵀ·Σ̃⁻¹·1)
//
// 权重不做 [0,1] 截断, 最小方差解本身允许负权重和大于1的权重
package cow

import (
	"errors"
	"fmt"
	"math"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/infra/observe/log/staticLog"
	"volcombine/pkg/utils/myTools"
	"volcombine/timeSeries/arfit"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// K 子模型个数
const K = 3

const singularMsg = "bias-adjusted covariance is singular"

var (
	ErrSingular   = errorx.New(errCode.SINGULAR_MATRIX, singularMsg)
	ErrDegenerate = errorx.New(errCode.INVALID_VALUE, "too few whitened residuals for covariance")
	ErrNumerical  = errorx.New(errCode.INVALID_VALUE, "weights are not finite")
)

type Weights [K]float64

func (w Weights) Sum() float64 {
	s := 0.0
	for _, v := range w {
		s += v
	}
	return s
}

// Apply 加权组合预测
func (w Weights) Apply(f [K]float64) float64 {
	s := 0.0
	for k := range w {
		s += w[k] * f[k]
	}
	return s
}

// EqualWeights 等权基准
func EqualWeights() Weights {
	var w Weights
	for k := range w {
		w[k] = 1.0 / K
	}
	return w
}

// Estimate 一次组合的中间量, 便于诊断
type Estimate struct {
	Phi     [K]float64
	Bias    [K]float64
	L       int  // 对齐后的白化残差长度
	Aligned bool // 三个白化序列原本等长
	Sigma   *mat.SymDense
	Weights Weights
}

// TailAlign 截到最短长度, 保留每条序列最后L个(最新的)观测
func TailAlign(xs [K][]float64) (out [K][]float64, L int, aligned bool) {
	L = len(xs[0])
	aligned = true
	for k := 1; k < K; k++ {
		if len(xs[k]) != L {
			aligned = false
		}
		L = min(L, len(xs[k]))
	}
	for k := range xs {
		out[k] = myTools.TailF64(xs[k], L)
	}
	return out, L, aligned
}

// BiasAdjustedCov Σ̃ = 样本协方差(除以L-1) + b·bᵀ
func BiasAdjustedCov(resids [K][]float64, phis [K]float64) (*mat.SymDense, Estimate, error) {
	est := Estimate{Phi: phis}

	var xi [K][]float64
	for k := range resids {
		xi[k] = arfit.Whiten(resids[k], phis[k])
	}
	xi, est.L, est.Aligned = TailAlign(xi)
	if est.L < 2 {
		return nil, est, ErrDegenerate
	}

	X := mat.NewDense(est.L, K, nil)
	for k := range xi {
		X.SetCol(k, xi[k])
	}
	var sigma mat.SymDense
	stat.CovarianceMatrix(&sigma, X, nil)

	// 偏差用未截断序列的最后一个残差
	for k := range resids {
		est.Bias[k] = phis[k] * resids[k][len(resids[k])-1]
	}
	sigma.SymRankOne(&sigma, 1, mat.NewVecDense(K, est.Bias[:]))
	est.Sigma = &sigma
	return &sigma, est, nil
}

// MinVarianceWeights w = Σ̃⁻¹·1 / (1ᵀ·Σ̃⁻¹·1), 精确奇异返回 ErrSingular
func MinVarianceWeights(sigma mat.Symmetric) (Weights, error) {
	var w Weights
	if n := sigma.SymmetricDim(); n != K {
		return w, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("covariance must be %dx%d, got %dx%d", K, K, n, n))
	}

	// 病态但可逆时gonum仍给出逆矩阵, 只返回 Condition 提示; 条件数为Inf才是真正奇异
	var inv mat.Dense
	if err := inv.Inverse(sigma); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return w, errorx.Wrap(errCode.SINGULAR_MATRIX, err, singularMsg)
		}
		staticLog.Log.Debugf("ill-conditioned covariance, cond=%.4g", float64(cond))
	}

	// Σ̃⁻¹·1 即逆矩阵行和
	var u [K]float64
	denom := 0.0
	for i := 0; i < K; i++ {
		for j := 0; j < K; j++ {
			u[i] += inv.At(i, j)
		}
		denom += u[i]
	}
	if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return w, errorx.Wrap(errCode.INVALID_VALUE, ErrNumerical, fmt.Sprintf("1ᵀΣ̃⁻¹1 = %v", denom))
	}
	for i := range w {
		w[i] = u[i] / denom
		if math.IsNaN(w[i]) || math.IsInf(w[i], 0) {
			return w, ErrNumerical
		}
	}
	return w, nil
}

// Combine 由三个子模型的样本内残差和AR(1)系数得到条件最优权重
func Combine(resids [K][]float64, phis [K]float64) (Estimate, error) {
	for k := range resids {
		if len(resids[k]) == 0 {
			return Estimate{Phi: phis}, errorx.Wrap(errCode.EMPTY_VALUE, ErrDegenerate, fmt.Sprintf("submodel %d has no residuals", k))
		}
	}
	sigma, est, err := BiasAdjustedCov(resids, phis)
	if err != nil {
		return est, err
	}
	if !est.Aligned {
		staticLog.Log.WithField("lengths", [K]int{len(resids[0]), len(resids[1]), len(resids[2])}).
			Warn("whitened residual lengths differ, truncated to common tail")
	}
	est.Weights, err = MinVarianceWeights(sigma)
	return est, err
}

// FitAndCombine 先对每条残差拟合AR(1)再组合
func FitAndCombine(resids [K][]float64) (Estimate, error) {
	var phis [K]float64
	for k := range resids {
		phis[k] = arfit.FitAR1(resids[k])
	}
	return Combine(resids, phis)
}
