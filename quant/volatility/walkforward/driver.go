// Package walkforward 逐日期扩展窗口重估: 三个HAR子模型 → AR(1)白化 → 条件最优权重组合
package walkforward

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/infra/observe/log/staticLog"
	"volcombine/pkg/utils/myTools"
	"volcombine/quant/volatility/cow"
	"volcombine/quant/volatility/harfeature"
	"volcombine/quant/volatility/submodel"

	"github.com/sirupsen/logrus"
)

// Run 对每个 horizon × 序列 在 dates 上逐日做组合预测
// 迭代失败只记为skip, 返回的error只来自参数校验
func Run(tbl *harfeature.Table, dates []time.Time, cfg Config) (*Result, error) {
	if tbl == nil || tbl.Len() == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "feature table is empty")
	}
	horizons := cfg.Horizons
	if len(horizons) == 0 {
		horizons = tbl.Horizons()
	}
	for _, h := range horizons {
		if !slices.Contains(tbl.Horizons(), h) {
			return nil, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("horizon %d has no target column", h))
		}
	}

	res := &Result{}
	for _, h := range horizons {
		for s := harfeature.SeriesID(0); s < harfeature.NumSeries; s++ {
			k := Key{Series: s, Horizon: h}
			res.keys = append(res.keys, k)
			res.buckets = append(res.buckets, &Bucket{Key: k})
		}
	}

	staticLog.Log.Infof("walk-forward: %d buckets, %d dates, purge_overlap=%v, workers=%d",
		len(res.buckets), len(dates), cfg.PurgeOverlap, max(cfg.Workers, 1))

	if cfg.Workers <= 1 {
		for _, b := range res.buckets {
			runBucket(tbl, dates, cfg.PurgeOverlap, b)
		}
		return res, nil
	}

	// 每个bucket只归一个worker, 桶内日期顺序处理, 与单线程结果一致
	wg := sync.WaitGroup{}
	tasks := make(chan *Bucket, len(res.buckets))
	worker := func() {
		defer wg.Done()
		for b := range tasks {
			runBucket(tbl, dates, cfg.PurgeOverlap, b)
		}
	}
	numWorkers := min(cfg.Workers, len(res.buckets))
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go worker()
	}
	for _, b := range res.buckets {
		tasks <- b
	}
	close(tasks)
	wg.Wait()
	return res, nil
}

func runBucket(tbl *harfeature.Table, dates []time.Time, purge bool, b *Bucket) {
	for _, d := range dates {
		o := CombineForecast(tbl, b.Key.Series, b.Key.Horizon, d, purge)
		if o.Skipped() {
			staticLog.Log.WithFields(logrus.Fields{
				"series":  tbl.Name(b.Key.Series),
				"horizon": b.Key.Horizon,
				"date":    d.Format(time.DateOnly),
				"reason":  o.Skip.Reason,
			}).Warn(o.Skip.Err)
		}
		b.add(o)
	}
	staticLog.Log.Infof("series=%s h=%d: %d records, %d skipped",
		tbl.Name(b.Key.Series), b.Key.Horizon, len(b.Records), len(b.Skips))
}

// CombineForecast 单个(序列, horizon, 日期)的一次完整估计
//
// 训练行为 [0, i), purge 时为 [0, i-h); 预测变量只用 i 之前的RV
func CombineForecast(tbl *harfeature.Table, s harfeature.SeriesID, h int, date time.Time, purge bool) Outcome {
	skip := func(r SkipReason, err error) Outcome {
		return Outcome{Skip: Skip{Date: date, Reason: r, Err: err}}
	}

	i, ok := tbl.Index(date)
	if !ok {
		return skip(SkipAlignment, errorx.New(errCode.DATA_ALIGNMENT, "date not in feature table"))
	}
	if i+h >= tbl.Len() {
		return skip(SkipLookahead, errorx.New(errCode.DATA_ALIGNMENT,
			fmt.Sprintf("need %d future rows, have %d", h, tbl.Len()-1-i)))
	}

	to := i
	if purge {
		to = i - h
	}
	fits, err := submodel.EstimateAll(tbl, s, h, 0, to, i)
	if err != nil {
		return skip(SkipNumerical, err)
	}

	var resids [cow.K][]float64
	var subs [harfeature.NumKinds]float64
	for k, f := range fits {
		resids[k] = f.Resid
		subs[k] = f.Forecast
	}
	est, err := cow.FitAndCombine(resids)
	if err != nil {
		if errors.Is(err, cow.ErrSingular) {
			return skip(SkipSingular, err)
		}
		return skip(SkipNumerical, err)
	}

	forecast := est.Weights.Apply(subs)
	realized := myTools.ArrMean(tbl.Raw(s)[i+1 : i+h+1])
	if math.IsNaN(forecast) || math.IsInf(forecast, 0) {
		return skip(SkipNumerical, cow.ErrNumerical)
	}

	staticLog.Log.Debugf("series=%s h=%d date=%s phi=%v w=%v f=%.6g realized=%.6g",
		tbl.Name(s), h, date.Format(time.DateOnly), est.Phi, est.Weights, forecast, realized)

	return Outcome{Record: Record{
		Date:         date,
		Forecast:     forecast,
		Realized:     realized,
		SqErr:        (forecast - realized) * (forecast - realized),
		Weights:      est.Weights,
		SubForecasts: subs,
	}}
}
