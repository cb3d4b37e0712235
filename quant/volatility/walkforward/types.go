package walkforward

import (
	"time"

	"volcombine/quant/volatility/cow"
	"volcombine/quant/volatility/harfeature"
)

type Config struct {
	Horizons     []int // 为空则用特征表的全部horizon
	PurgeOverlap bool  // 训练集去掉最后h行, 其目标与评估日重叠
	Workers      int   // <=1 单线程
}

type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipAlignment
	SkipLookahead
	SkipSingular
	SkipNumerical
)

var SkipReasons = []SkipReason{SkipAlignment, SkipLookahead, SkipSingular, SkipNumerical}

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipAlignment:
		return "alignment"
	case SkipLookahead:
		return "lookahead"
	case SkipSingular:
		return "singular"
	case SkipNumerical:
		return "numerical"
	default:
		return "unknown"
	}
}

type Skip struct {
	Date   time.Time
	Reason SkipReason
	Err    error
}

// Record 一个(日期, horizon, 序列)的组合预测
type Record struct {
	Date         time.Time
	Forecast     float64
	Realized     float64 // mean(RV[i+1 .. i+h])
	SqErr        float64
	Weights      cow.Weights
	SubForecasts [harfeature.NumKinds]float64 // daily, weekly, monthly
}

// Outcome 单次迭代的结果, Skip.Reason == SkipNone 时 Record 有效
type Outcome struct {
	Record Record
	Skip   Skip
}

func (o Outcome) Skipped() bool { return o.Skip.Reason != SkipNone }

type Key struct {
	Series  harfeature.SeriesID
	Horizon int
}

// Bucket 按日期顺序累积, 只由driver追加
type Bucket struct {
	Key           Key
	Records       []Record
	WeightHistory []cow.Weights
	Skips         []Skip
}

func (b *Bucket) add(o Outcome) {
	if o.Skipped() {
		b.Skips = append(b.Skips, o.Skip)
		return
	}
	b.Records = append(b.Records, o.Record)
	b.WeightHistory = append(b.WeightHistory, o.Record.Weights)
}

func (b *Bucket) SkipCounts() map[SkipReason]int {
	out := make(map[SkipReason]int, len(SkipReasons))
	for _, s := range b.Skips {
		out[s.Reason]++
	}
	return out
}

type Result struct {
	keys    []Key
	buckets []*Bucket
}

// Keys 按 horizon 再按序列排列
func (r *Result) Keys() []Key {
	return append([]Key(nil), r.keys...)
}

func (r *Result) Bucket(k Key) (*Bucket, bool) {
	for i, key := range r.keys {
		if key == k {
			return r.buckets[i], true
		}
	}
	return nil, false
}
