package arfit

import (
	"math"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/ml/ols"
	"volcombine/pkg/utils/myTools"

	"github.com/gonum/stat"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

type ARResult struct {
	P       int
	Coeffs  []float64 // [φ1..φp, c]
	AIC     float64
	BIC     float64
	PValues []float64
}

// DetectAR 检验残差是否存在AR(p)结构，按AIC选出最佳p
func DetectAR(resid []float64, pMax int) (bestP int, info []ARResult) {
	n := len(resid)
	if n < 3 {
		return 0, nil
	}
	results := make([]ARResult, 0, pMax+1)

	// AR(0) 基准模型（白噪声）
	mean := stat.Mean(resid, nil)
	var ss float64
	for _, v := range resid {
		d := v - mean
		ss += d * d
	}
	sigma2 := ss / float64(n)
	aic0 := float64(n)*math.Log(sigma2) + 2
	bic0 := float64(n)*math.Log(sigma2) + math.Log(float64(n))
	results = append(results, ARResult{P: 0, Coeffs: []float64{mean}, AIC: aic0, BIC: bic0})

	bestAIC := aic0
	for p := 1; p <= pMax; p++ {
		T := n - p
		if T <= p+1 {
			break
		}
		matX := mat.NewDense(T, p+1, nil)
		matY := mat.NewVecDense(T, nil)
		for t := p; t < n; t++ {
			for j := 0; j < p; j++ {
				matX.Set(t-p, j, resid[t-j-1])
			}
			matX.Set(t-p, p, 1) // 常数项
			matY.SetVec(t-p, resid[t])
		}

		model, err := ols.MultiRegressionMat(matX, matY)
		if err != nil {
			continue
		}
		results = append(results, ARResult{
			P:       p,
			Coeffs:  model.Coeffs,
			AIC:     model.AIC,
			BIC:     model.BIC,
			PValues: model.PValues,
		})
		if model.AIC < bestAIC {
			bestAIC = model.AIC
			bestP = p
		}
	}
	return bestP, results
}

// LjungBoxTest Ljung-Box检验
// 样本自相关系数: rk = Σ((rt - rmean)(rt-k - rmean)) / Σ((rt - rmean)^2)
// Q = n(n+2)Σ(rk^2/(n-k)), k=1~lags, 服从自由度为lags的卡方分布
// reject=true 表示拒绝白噪声原假设, 残差仍有自相关
func LjungBoxTest(resid []float64, lags int, alpha float64) (reject bool, Q float64, pValue float64, err error) {
	n := float64(len(resid))
	if lags <= 0 {
		return false, 0, 0, errorx.New(errCode.INVALID_VALUE, "lags must be > 0")
	}
	if n <= float64(lags) {
		return false, 0, 0, errorx.New(errCode.INVALID_VALUE, "样本量过小, 无法进行Ljung-Box检验")
	}
	rmean := myTools.ArrMean(resid)
	var denom float64
	for _, v := range resid {
		denom += (v - rmean) * (v - rmean)
	}
	if denom == 0 {
		return false, 0, 0, errorx.New(errCode.INVALID_VALUE, "残差方差为0")
	}
	for k := 1; k <= lags; k++ {
		var num float64
		for t := k; t < len(resid); t++ {
			num += (resid[t] - rmean) * (resid[t-k] - rmean)
		}
		rk := num / denom
		Q += rk * rk / (n - float64(k))
	}
	Q = n * (n + 2) * Q

	chi2 := distuv.ChiSquared{K: float64(lags)}
	pValue = 1 - chi2.CDF(Q)
	return pValue < alpha, Q, pValue, nil
}
