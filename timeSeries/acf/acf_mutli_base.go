// n段序列合并计算自相关
// 多段自相关函数为:
//
//	       ∑∑(εt - μ)⋅(εt+τ - μ)
//	C(τ) = —————————————————————
//	         σ**2⋅∑j(T - τ)
//
// 按lag把多段、同数据分布的segment合并计算autoCorr, 段间不配对
package acf

import (
	"math"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/pkg/utils/myTools"
)

type MultiSegments struct {
	eps      [][]float64 // 分段样本
	totalN   int         // 样本长度
	mean     float64     // 全局均值
	variance float64     // 全局方差
}

func NewMultiSeg(epsSegments [][]float64) (*MultiSegments, error) {
	if len(epsSegments) == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "segments is empty")
	}

	N := 0
	for _, seg := range epsSegments {
		N += len(seg)
	}
	if N == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "all segments is empty")
	}
	all := make([]float64, 0, N)
	for _, seg := range epsSegments {
		all = append(all, seg...)
	}
	varValue := myTools.WelfordVariancePopulation(all)
	if varValue == 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "variance is zero")
	}
	return &MultiSegments{eps: epsSegments, totalN: N, mean: myTools.ArrMean(all), variance: varValue}, nil
}

// SplitByNaN 按NaN切成连续无缺失的段
func SplitByNaN(series []float64) [][]float64 {
	segs := make([][]float64, 0)
	start := -1
	for i, v := range series {
		if math.IsNaN(v) {
			if start >= 0 {
				segs = append(segs, series[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		segs = append(segs, series[start:])
	}
	return segs
}

func (s *MultiSegments) Len() int { return s.totalN }

// AutoCorrSegments 直接法, O(N·maxLag), maxLag较小时使用
func (s *MultiSegments) AutoCorrSegments(maxLag int) ([]float64, error) {
	if maxLag <= 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "maxLag must be > 0")
	}

	acf := make([]float64, maxLag)
	for k := 0; k < maxLag; k++ {
		num := 0.0
		cnt := 0
		for _, seg := range s.eps {
			nk := len(seg) - k
			if nk <= 0 {
				continue
			}
			// 减少 bounds checking
			segk := seg[k:]  // t+k
			seg0 := seg[:nk] // t
			for i := 0; i < nk; i++ {
				num += (seg0[i] - s.mean) * (segk[i] - s.mean)
			}
			cnt += nk
		}

		if cnt == 0 {
			// 后面都没 pair 了，统一 NaN
			for j := k; j < maxLag; j++ {
				acf[j] = math.NaN()
			}
			break
		}
		acf[k] = num / (s.variance * float64(cnt))
	}
	return acf, nil
}
