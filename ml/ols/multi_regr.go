package ols

import (
	"fmt"
	"math"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/infra/observe/log/staticLog"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

type MultiLinearModel struct {
	Coeffs      []float64 // 回归系数
	SE          []float64 // 标准误
	TStats      []float64 // t统计量
	PValues     []float64 // p值（双尾）
	Resids      []float64 // 残差
	AIC         float64
	BIC         float64
	Sigma2      float64 // 残差方差
	RSquared    float64
	AdjRSquared float64
}

// MultiRegressionMat β = (X'X)^(-1) X'Y, X'X不可逆时退化为SVD伪逆
func MultiRegressionMat(matX *mat.Dense, matY *mat.VecDense) (MultiLinearModel, error) {
	n, k := matX.Dims()
	if n == 0 || k == 0 {
		return MultiLinearModel{}, errorx.New(errCode.EMPTY_VALUE, "输入数据为空")
	}
	if matY.Len() != n {
		return MultiLinearModel{}, errorx.New(errCode.INVALID_VALUE, "数据长度不匹配")
	}
	df := float64(n - k)
	if df <= 0 {
		return MultiLinearModel{}, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("自由度 df=%v 非法：样本数 n 必须大于参数数 k", df))
	}

	var XTX mat.SymDense
	XTX.SymOuterK(1, matX.T())

	var invXTX mat.Dense
	if err := invXTX.Inverse(&XTX); err != nil {
		staticLog.Log.Debugf("X'X不可逆, 改用伪逆: %s", err)
		pinv, errSVD := pseudoInverse(&XTX)
		if errSVD != nil {
			return MultiLinearModel{}, errSVD
		}
		invXTX.CloneFrom(pinv)
	}

	var XTY mat.VecDense
	XTY.MulVec(matX.T(), matY)

	var beta mat.VecDense
	beta.MulVec(&invXTX, &XTY)

	// 预测值 & 残差
	var yhat, resid mat.VecDense
	yhat.MulVec(matX, &beta)
	resid.SubVec(matY, &yhat)

	RSS := mat.Dot(&resid, &resid)
	sigma2 := RSS / df

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	coeffs := make([]float64, k)
	SE := make([]float64, k)
	tStats := make([]float64, k)
	pValues := make([]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = beta.AtVec(i)
		SE[i] = math.Sqrt(sigma2 * invXTX.At(i, i))
		tStats[i] = coeffs[i] / SE[i]
		pValues[i] = 2 * tdist.Survival(math.Abs(tStats[i]))
	}

	// R² & 调整后R²
	Ymean := mat.Sum(matY) / float64(n)
	TSS := 0.0
	for i := 0; i < n; i++ {
		d := matY.AtVec(i) - Ymean
		TSS += d * d
	}
	RSq := 1 - RSS/TSS
	AdjRSq := 1 - (1-RSq)*float64(n-1)/df

	// AIC / BIC
	logLik := -0.5 * float64(n) * (1 + math.Log(2*math.Pi*RSS/float64(n)))
	AIC := -2*logLik + 2*float64(k)
	BIC := -2*logLik + float64(k)*math.Log(float64(n))

	return MultiLinearModel{
		Coeffs:      coeffs,
		SE:          SE,
		TStats:      tStats,
		PValues:     pValues,
		Resids:      resid.RawVector().Data,
		AIC:         AIC,
		BIC:         BIC,
		Sigma2:      sigma2,
		RSquared:    RSq,
		AdjRSquared: AdjRSq,
	}, nil
}

// 用SVD 求解广义逆矩阵
func pseudoInverse(A mat.Matrix) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return nil, errorx.New(errCode.SINGULAR_MATRIX, "SVD分解失败")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// 取 Σ 的倒数, 小奇异值截断
	sigma := svd.Values(nil)
	m, n := A.Dims()
	sInv := mat.NewDense(n, m, nil)
	const tol = 1e-12
	for i, val := range sigma {
		if val > tol {
			sInv.Set(i, i, 1.0/val)
		}
	}

	// A⁺ = V * Σ⁺ * Uᵀ
	var temp, pinv mat.Dense
	temp.Mul(&v, sInv)
	pinv.Mul(&temp, u.T())
	return &pinv, nil
}
