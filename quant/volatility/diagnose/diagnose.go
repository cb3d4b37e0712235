// Package diagnose 全样本诊断: 对数RV的单位根检验和长记忆ACF, 日度子模型残差的AR结构
package diagnose

import (
	"fmt"
	"math"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/infra/observe/log/staticLog"
	"volcombine/quant/volatility/harfeature"
	"volcombine/quant/volatility/submodel"
	"volcombine/timeSeries/acf"
	"volcombine/timeSeries/adfuller"
	"volcombine/timeSeries/arfit"
)

// 直接法与FFT的切换点
const fftMinLag = 64

type Options struct {
	MaxLag     int // ACF最大滞后
	ADFMaxLag  int
	ADFLagMode string // "AIC", "BIC", "t-stat"
	ARMaxP     int
	LBLags     int
	Alpha      float64
}

func DefaultOptions() Options {
	return Options{MaxLag: 100, ADFMaxLag: 22, ADFLagMode: "AIC", ARMaxP: 5, LBLags: 10, Alpha: 0.05}
}

type SeriesReport struct {
	Name string
	N    int // 有效(正且有限)观测数
	ADFN int // ADF所用最长无缺失段的长度

	ADF      adfuller.ADFResult
	ADFErr   error
	ADFDrift float64 // 常数项估计

	ACF         []float64
	PowerLaw    acf.PowerLawFit
	PowerLawErr error

	// 日度子模型全样本残差
	Horizon   int
	DailyBeta float64
	Phi       float64
	BestP     int
	AR        []arfit.ARResult

	LBRaw      LjungBox // 白化前
	LBWhitened LjungBox
}

type LjungBox struct {
	Reject bool
	Q      float64
	PValue float64
	Err    error
}

// Run 各项检验互不影响, 单项失败只记在对应的Err字段
func Run(p *harfeature.Panel, tbl *harfeature.Table, opt Options) ([harfeature.NumSeries]SeriesReport, error) {
	var out [harfeature.NumSeries]SeriesReport
	if p == nil || p.Len() == 0 || tbl == nil || tbl.Len() == 0 {
		return out, errorx.New(errCode.EMPTY_VALUE, "nothing to diagnose")
	}
	if adfuller.GetMyLagMode(opt.ADFLagMode) == adfuller.LAG_MODE_ERROR {
		return out, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("unknown adf lag mode %q", opt.ADFLagMode))
	}
	for s := harfeature.SeriesID(0); s < harfeature.NumSeries; s++ {
		r := &out[s]
		r.Name = p.Names[s]
		logRV := logSeries(p.Values[s])
		longMemory(r, logRV, opt)
		residualStructure(r, tbl, s, opt)
	}
	return out, nil
}

// logSeries 非正或缺失的位置为NaN
func logSeries(rv []float64) []float64 {
	out := make([]float64, len(rv))
	for i, v := range rv {
		if v > 0 && !math.IsInf(v, 0) {
			out[i] = math.Log(v)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func longMemory(r *SeriesReport, logRV []float64, opt Options) {
	segs := acf.SplitByNaN(logRV)
	r.N = 0
	for _, seg := range segs {
		r.N += len(seg)
	}

	// ADF的滞后差分不能跨缺失拼接, 只用最长的连续段
	adfSeg := longestSegment(segs)
	r.ADFN = len(adfSeg)
	mode := adfuller.GetMyLagMode(opt.ADFLagMode)
	r.ADF, r.ADFErr = adfuller.AdfTest(adfSeg, adfuller.REGR_CONST, opt.ADFMaxLag, mode, adfuller.LEFT_TAIL)
	if r.ADFErr != nil {
		staticLog.Log.Warnf("%s: adf failed: %v", r.Name, r.ADFErr)
	} else {
		_, r.ADFDrift, _ = r.ADF.GetEstimate()
	}

	var err error
	r.ACF, err = autoCorr(segs, opt.MaxLag)
	if err != nil {
		r.PowerLawErr = err
		return
	}
	start, end := acf.AutoFitRange(r.ACF)
	r.PowerLaw, r.PowerLawErr = acf.FitLogACFRange(r.ACF, start, end, 5)
	if r.PowerLawErr != nil {
		staticLog.Log.Debugf("%s: fit range [%d, %d) failed, falling back to first positive run: %v", r.Name, start, end, r.PowerLawErr)
		r.PowerLaw, r.PowerLawErr = acf.FitLogACF(r.ACF, 5)
	}
}

// longestSegment 等长时取最早的一段
func longestSegment(segs [][]float64) []float64 {
	var best []float64
	for _, seg := range segs {
		if len(seg) > len(best) {
			best = seg
		}
	}
	return best
}

// autoCorr 无缺失时单段直接算, 否则按段合并, 滞后较大时走FFT
func autoCorr(segs [][]float64, maxLag int) ([]float64, error) {
	if len(segs) == 1 && maxLag <= fftMinLag {
		return acf.AutoCorrSingeSegment(segs[0], maxLag)
	}
	ms, err := acf.NewMultiSeg(segs)
	if err != nil {
		return nil, err
	}
	if maxLag > fftMinLag {
		return ms.AutoCorrSegmentsFFT(maxLag)
	}
	return ms.AutoCorrSegments(maxLag)
}

func residualStructure(r *SeriesReport, tbl *harfeature.Table, s harfeature.SeriesID, opt Options) {
	r.Horizon = tbl.Horizons()[0]
	y, err := tbl.Target(s, r.Horizon)
	if err != nil {
		r.LBRaw.Err = err
		r.LBWhitened.Err = err
		return
	}
	x := tbl.Column(s, harfeature.Daily)
	fit, err := submodel.Estimate(harfeature.Daily, x, y, x[len(x)-1])
	if err != nil {
		r.LBRaw.Err = err
		r.LBWhitened.Err = err
		return
	}
	r.DailyBeta = fit.Beta
	r.Phi = arfit.FitAR1(fit.Resid)
	r.BestP, r.AR = arfit.DetectAR(fit.Resid, opt.ARMaxP)

	r.LBRaw = ljungBox(fit.Resid, opt)
	r.LBWhitened = ljungBox(arfit.Whiten(fit.Resid, r.Phi), opt)
}

func ljungBox(e []float64, opt Options) LjungBox {
	var lb LjungBox
	lb.Reject, lb.Q, lb.PValue, lb.Err = arfit.LjungBoxTest(e, opt.LBLags, opt.Alpha)
	return lb
}
