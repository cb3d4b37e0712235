// Package report 汇总walk-forward结果: MSE, 子模型与等权基准, 跳过统计, 权重分布
package report

import (
	"volcombine/numpy/npHist"
	"volcombine/pkg/utils/myTools"
	"volcombine/quant/volatility/cow"
	"volcombine/quant/volatility/harfeature"
	"volcombine/quant/volatility/walkforward"
)

type Summary struct {
	Key            walkforward.Key
	Name           string
	N              int
	NoData         bool    // bucket没有任何记录, 此时MSE等字段无意义
	MSE            float64 // 组合预测
	SubMSE         [harfeature.NumKinds]float64
	EqualWeightMSE float64
	MeanWeights    cow.Weights
	Skips          map[walkforward.SkipReason]int
	WeightHist     [harfeature.NumKinds][]npHist.HistogramBin
}

// Summarize 按 res.Keys() 的顺序每个bucket一条
func Summarize(res *walkforward.Result, names [harfeature.NumSeries]string, bins int) []Summary {
	keys := res.Keys()
	out := make([]Summary, 0, len(keys))
	for _, k := range keys {
		b, _ := res.Bucket(k)
		out = append(out, summarizeBucket(b, names[k.Series], bins))
	}
	return out
}

func summarizeBucket(b *walkforward.Bucket, name string, bins int) Summary {
	s := Summary{Key: b.Key, Name: name, N: len(b.Records), Skips: b.SkipCounts()}
	if s.N == 0 {
		s.NoData = true
		return s
	}

	eq := cow.EqualWeights()
	sq := make([]float64, s.N)
	eqSq := make([]float64, s.N)
	var subSq [harfeature.NumKinds][]float64
	var ws [harfeature.NumKinds][]float64
	for k := range subSq {
		subSq[k] = make([]float64, s.N)
		ws[k] = make([]float64, s.N)
	}
	for i, r := range b.Records {
		sq[i] = r.SqErr
		e := eq.Apply(r.SubForecasts) - r.Realized
		eqSq[i] = e * e
		for k := range subSq {
			d := r.SubForecasts[k] - r.Realized
			subSq[k][i] = d * d
			ws[k][i] = r.Weights[k]
		}
	}

	s.MSE = myTools.ArrMean(sq)
	s.EqualWeightMSE = myTools.ArrMean(eqSq)
	for k := range subSq {
		s.SubMSE[k] = myTools.ArrMean(subSq[k])
		s.MeanWeights[k] = myTools.ArrMean(ws[k])
		if bins > 0 {
			s.WeightHist[k] = npHist.Hist(ws[k], bins)
		}
	}
	return s
}
