package acf

import (
	"fmt"
	"math"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/ml/ols"
)

// 幂律衰减拟合结果 ACF ~ lag^{-gamma}
type PowerLawFit struct {
	Gamma     float64
	Intercept float64
	R2        float64
	Start     int
	End       int
	Points    int
}

// FitLogACF 在 lag>=1 的第一段连续正值区间上拟合
func FitLogACF(acf []float64, minPoints int) (PowerLawFit, error) {
	n := len(acf)
	start := -1
	for i := 1; i < n; i++ {
		if acf[i] > 0 && !math.IsNaN(acf[i]) {
			start = i
			break
		}
	}
	if start == -1 {
		return PowerLawFit{}, errorx.New(errCode.INVALID_VALUE, "ACF 没有正值点")
	}
	end := start
	for end < n && acf[end] > 0 && !math.IsNaN(acf[end]) {
		end++
	}
	return FitLogACFRange(acf, start, end, minPoints)
}

// FitLogACFRange 在 [start, end) 上做 log(C) = a - gamma·log(lag), 非正值点跳过
func FitLogACFRange(acf []float64, start, end, minPoints int) (PowerLawFit, error) {
	if start < 1 || end > len(acf) || end <= start {
		return PowerLawFit{}, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("拟合区间不合法 [%d, %d)", start, end))
	}

	X := make([]float64, 0, end-start)
	Y := make([]float64, 0, end-start)
	for lag := start; lag < end; lag++ {
		c := acf[lag]
		if c <= 0 || math.IsNaN(c) {
			continue
		}
		X = append(X, math.Log(float64(lag)))
		Y = append(Y, math.Log(c))
	}
	if len(X) < minPoints {
		return PowerLawFit{}, errorx.New(errCode.INVALID_VALUE,
			fmt.Sprintf("有效 log-log 拟合点不足：只有 %d 个, 需要 >= %d", len(X), minPoints))
	}

	model, err := ols.Regression(X, Y)
	if err != nil {
		return PowerLawFit{}, errorx.Wrap(errCode.INVALID_VALUE, err, "拟合失败")
	}
	return PowerLawFit{
		Gamma:     -model.Slope,
		Intercept: model.Intercept,
		R2:        model.RSquared,
		Start:     start,
		End:       end,
		Points:    len(X),
	}, nil
}
