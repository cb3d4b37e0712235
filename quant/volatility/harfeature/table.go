package harfeature

import (
	"fmt"
	"math"
	"slices"
	"time"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/numpy/npCorr"

	"github.com/bits-and-blooms/bitset"
)

// Table 特征/目标表, 只保留所有列都有定义的行, 构建后只读
//
// 行t:
//
//	pred[k][t] = mean(RV[t-w_k .. t-1])   (只用t之前的数据)
//	target[h][t] = mean(RV[t+1 .. t+h])   (不含t本身)
type Table struct {
	names    [NumSeries]string
	windows  Windows
	horizons []int
	dates    []time.Time
	index    map[int64]int
	raw      [NumSeries][]float64
	pred     [NumSeries][NumKinds][]float64
	target   [NumSeries]map[int][]float64
	dropped  int
}

// Build 由原始序列计算HAR特征和各horizon目标, 丢弃含未定义值的行
func Build(p *Panel, w Windows, horizons []int) (*Table, error) {
	n := p.Len()
	if n == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "panel is empty")
	}
	for _, k := range Kinds {
		if w.Of(k) <= 0 {
			return nil, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("%s window must be > 0", k))
		}
	}
	if len(horizons) == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "no horizons")
	}
	for _, h := range horizons {
		if h <= 0 {
			return nil, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("invalid horizon %d", h))
		}
	}

	var full struct {
		pred   [NumSeries][NumKinds][]float64
		target [NumSeries]map[int][]float64
	}
	for s := 0; s < NumSeries; s++ {
		rv := p.Values[s]
		for _, k := range Kinds {
			col, err := laggedMean(rv, w.Of(k))
			if err != nil {
				return nil, err
			}
			full.pred[s][k] = col
		}
		full.target[s] = make(map[int][]float64, len(horizons))
		for _, h := range horizons {
			col, err := forwardMean(rv, h)
			if err != nil {
				return nil, err
			}
			full.target[s][h] = col
		}
	}

	// 完整行掩码
	mask := bitset.New(uint(n))
	for t := 0; t < n; t++ {
		ok := true
		for s := 0; s < NumSeries && ok; s++ {
			ok = finite(p.Values[s][t])
			for _, k := range Kinds {
				ok = ok && finite(full.pred[s][k][t])
			}
			for _, h := range horizons {
				ok = ok && finite(full.target[s][h][t])
			}
		}
		if ok {
			mask.Set(uint(t))
		}
	}

	m := int(mask.Count())
	tbl := &Table{
		names:    p.Names,
		windows:  w,
		horizons: slices.Clone(horizons),
		dates:    make([]time.Time, 0, m),
		index:    make(map[int64]int, m),
		dropped:  n - m,
	}
	for s := 0; s < NumSeries; s++ {
		tbl.raw[s] = make([]float64, 0, m)
		for _, k := range Kinds {
			tbl.pred[s][k] = make([]float64, 0, m)
		}
		tbl.target[s] = make(map[int][]float64, len(horizons))
		for _, h := range horizons {
			tbl.target[s][h] = make([]float64, 0, m)
		}
	}
	for i, ok := mask.NextSet(0); ok; i, ok = mask.NextSet(i + 1) {
		t := int(i)
		tbl.index[p.Dates[t].Unix()] = len(tbl.dates)
		tbl.dates = append(tbl.dates, p.Dates[t])
		for s := 0; s < NumSeries; s++ {
			tbl.raw[s] = append(tbl.raw[s], p.Values[s][t])
			for _, k := range Kinds {
				tbl.pred[s][k] = append(tbl.pred[s][k], full.pred[s][k][t])
			}
			for _, h := range horizons {
				tbl.target[s][h] = append(tbl.target[s][h], full.target[s][h][t])
			}
		}
	}
	if len(tbl.dates) == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "没有完整的特征行, 样本过短或缺失过多")
	}
	return tbl, nil
}

// laggedMean out[t] = mean(rv[t-w .. t-1]), t<w 为NaN
func laggedMean(rv []float64, w int) ([]float64, error) {
	out := nanSlice(len(rv))
	if len(rv) <= w {
		return out, nil
	}
	rm, err := npCorr.RollingMean(rv, w) // rm[j] = mean(rv[j..j+w-1])
	if err != nil {
		return nil, err
	}
	for t := w; t < len(rv); t++ {
		out[t] = rm[t-w]
	}
	return out, nil
}

// forwardMean out[t] = mean(rv[t+1 .. t+h]), 超出末尾为NaN
func forwardMean(rv []float64, h int) ([]float64, error) {
	out := nanSlice(len(rv))
	if len(rv) <= h {
		return out, nil
	}
	rm, err := npCorr.RollingMean(rv, h)
	if err != nil {
		return nil, err
	}
	for t := 0; t+h < len(rv); t++ {
		out[t] = rm[t+1]
	}
	return out, nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (t *Table) Len() int { return len(t.dates) }
func (t *Table) Dropped() int { return t.dropped }
func (t *Table) Horizons() []int { return t.horizons }
func (t *Table) Windows() Windows { return t.windows }
func (t *Table) Date(i int) time.Time { return t.dates[i] }
func (t *Table) Name(s SeriesID) string { return t.names[s] }
func (t *Table) Raw(s SeriesID) []float64 { return t.raw[s] }

// Column 预测变量列, 返回内部切片, 调用方不得修改
func (t *Table) Column(s SeriesID, k Kind) []float64 {
	return t.pred[s][k]
}

func (t *Table) Target(s SeriesID, h int) ([]float64, error) {
	col, ok := t.target[s][h]
	if !ok {
		return nil, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("horizon %d 不在特征表中", h))
	}
	return col, nil
}

// Index 日期对应的行号
func (t *Table) Index(d time.Time) (int, bool) {
	i, ok := t.index[d.Unix()]
	return i, ok
}
