package npHist

import "math"

// HistogramBin 每个分箱的结构, 区间 [From, To), 最后一箱包含右端点
type HistogramBin struct {
	From  float64
	To    float64
	Count int
}

// Hist 按指定 bins 对 data 做等宽分箱统计, NaN/Inf 不计入
func Hist(data []float64, bins int) []HistogramBin {
	if bins <= 0 {
		return nil
	}
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if math.IsInf(minV, 1) {
		return nil
	}

	// 避免 max == min 导致除0
	if maxV == minV {
		maxV = minV + 1e-9
	}
	width := (maxV - minV) / float64(bins)

	result := make([]HistogramBin, bins)
	for i := range result {
		result[i] = HistogramBin{
			From: minV + float64(i)*width,
			To:   minV + float64(i+1)*width,
		}
	}

	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		idx := int(math.Floor((v - minV) / width))
		if idx >= bins { // v == maxV 的边界
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}
