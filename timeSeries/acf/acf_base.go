package acf

import (
	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/numpy/npCorr"
	"volcombine/pkg/utils/myTools"
)

// AutoCorrSingeSegment 单一无缺失序列的自相关, 返回 lag=0..maxLag-1
// (序列短于maxLag时只到 n-1)
//
//	C(k) = Σ_{t=0}^{n-k-1} u_t·u_{t+k} / (σ²·(n-k)),  u = x - mean(x)
func AutoCorrSingeSegment(series []float64, maxLag int) ([]float64, error) {
	n := len(series)
	if n == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "input series empty")
	}
	if maxLag <= 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "maxLag must be > 0")
	}

	// 1) 去均值
	mean := myTools.ArrMean(series)
	u := make([]float64, n)
	for i, v := range series {
		u[i] = v - mean
	}

	// 2) 总体方差, 常数序列无法归一
	varValue := myTools.SumSquares(u) / float64(n)
	if varValue == 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "variance is zero")
	}

	// 3) u 与自身做 full 相关, 下标 n-1 对应 lag 0, 只取非负lag
	full, err := npCorr.Correlate(u, u, npCorr.FULL_MODE)
	if err != nil {
		return nil, err
	}
	acf := full[n-1 : n-1+min(n, maxLag)]

	// 4) 每个lag按自己的配对数 n-k 归一
	for k := range acf {
		acf[k] /= varValue * float64(n-k)
	}
	return acf, nil
}
