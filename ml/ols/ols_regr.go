package ols

import (
	"fmt"
	"math"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/pkg/utils/myTools"
)

// 单变量线性回归模型
type LinearRegressionModel struct {
	Slope     float64
	Intercept float64
	Resids    []float64 // 样本内残差, 与输入同序
	RSquared  float64
}

func (m LinearRegressionModel) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}

// RegressionThroughOrigin 无截距ols: β = Σxy / Σx²
// x恒为0时无解, 返回错误
func RegressionThroughOrigin(x, y []float64) (LinearRegressionModel, error) {
	if err := paramsValidate(x, y); err != nil {
		return LinearRegressionModel{}, err
	}
	sxx := myTools.SumSquares(x)
	if sxx == 0 {
		return LinearRegressionModel{}, errorx.New(errCode.INVALID_VALUE, "自变量恒为0, 无法估计斜率")
	}
	beta := myTools.DotProduct(x, y) / sxx
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return LinearRegressionModel{}, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("斜率非有限值 beta=%v", beta))
	}

	resid := make([]float64, len(y))
	for i := range y {
		resid[i] = y[i] - beta*x[i]
	}
	return LinearRegressionModel{Slope: beta, Resids: resid}, nil
}

// Regression 带截距ols, NaN位置成对剔除, 残差只对应剔除后的样本
func Regression(x, y []float64) (LinearRegressionModel, error) {
	if len(x) != len(y) {
		return LinearRegressionModel{}, errorx.New(errCode.INVALID_VALUE, "数据长度不匹配")
	}
	mx, my := myTools.MaskIsNaNBoth(x, y)
	n := float64(len(mx))
	if n < 2 {
		return LinearRegressionModel{}, errorx.New(errCode.EMPTY_VALUE, "有效样本不足")
	}
	xBar, yBar := myTools.ArrMean(mx), myTools.ArrMean(my)
	den := myTools.SumSquares(mx) - n*xBar*xBar
	if den == 0 {
		return LinearRegressionModel{}, errorx.New(errCode.INVALID_VALUE, "自变量方差为0")
	}
	m := (myTools.DotProduct(mx, my) - n*xBar*yBar) / den
	b := yBar - m*xBar

	resid := make([]float64, len(my))
	tss := 0.0
	for i := range my {
		resid[i] = my[i] - (b + m*mx[i])
		tss += (my[i] - yBar) * (my[i] - yBar)
	}
	rsq := math.NaN()
	if tss > 0 {
		rsq = 1 - myTools.SumSquares(resid)/tss
	}
	return LinearRegressionModel{Slope: m, Intercept: b, Resids: resid, RSquared: rsq}, nil
}

func paramsValidate(x, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return errorx.New(errCode.EMPTY_VALUE, "输入数据为空")
	}
	if len(x) != len(y) {
		return errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("数据长度不匹配 len(x)=%d len(y)=%d", len(x), len(y)))
	}
	return nil
}
