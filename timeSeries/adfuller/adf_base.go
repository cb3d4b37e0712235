package adfuller

import (
	"fmt"
	"math"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/ml/ols"

	"gonum.org/v1/gonum/mat"
)

type ADFResult struct {
	Gamma     float64            // 单位根系数
	TStat     float64            // ADF统计量 (t值)
	PValue    float64            // 回归t检验p值, 仅供参考, 判定以Criticals为准
	UsedLag   int                // 选用的滞后阶数
	NObs      int                // 有效样本量
	AIC       float64            // Akaike信息准则
	BIC       float64            // 贝叶斯信息准则
	Method    LagMode            // autolag选择方法
	Trend     string             // 趋势类型 ("n"、"c"、"ct")
	Criticals map[string]float64 // 临界值（1%, 5%, 10%）
	Tail      string             // 左尾or右尾
	Resid     []float64          // 残差
	Coeffs    []float64          // 回归系数
}

// Reject 在给定显著性("1%","5%","10%")下是否拒绝原假设
// 左尾: 拒绝单位根(平稳); 右尾: 检测到爆炸性
func (r ADFResult) Reject(level string) bool {
	c, ok := r.Criticals[level]
	if !ok {
		return false
	}
	if r.Tail == RIGHT_TAIL {
		return r.TStat > c
	}
	return r.TStat < c
}

func diff(x []float64) []float64 {
	d := make([]float64, len(x)-1)
	for i := 1; i < len(x); i++ {
		d[i-1] = x[i] - x[i-1]
	}
	return d
}

// 构造ADF回归矩阵: Δy_t = γ·y_{t-1} [+ c] [+ τ·t] + Σ βj·Δy_{t-j}
// 所有lag共用同一段样本 dy[maxLag:], 保证信息准则可比
func buildADFDesign(series []float64, regr string, lag, maxLag int) (*mat.Dense, *mat.VecDense) {
	dy := diff(series)
	ylag := series[:len(series)-1]
	dy1 := dy[maxLag:]
	ylag1 := ylag[maxLag:]

	nRow := len(dy1)
	nCol := lag + 1
	if regr != REGR_NONE {
		nCol++
	}
	if regr == REGR_CONST_TREND {
		nCol++
	}

	X := mat.NewDense(nRow, nCol, nil)
	for i := 0; i < nRow; i++ {
		col := 0
		X.Set(i, col, ylag1[i])
		col++
		if regr != REGR_NONE {
			X.Set(i, col, 1)
			col++
		}
		if regr == REGR_CONST_TREND {
			X.Set(i, col, float64(i+1))
			col++
		}
		for j := 1; j <= lag; j++ {
			X.Set(i, col, dy[maxLag+i-j])
			col++
		}
	}
	return X, mat.NewVecDense(nRow, dy1)
}

// AdfTest ADF单位根检验, H0: 非平稳(存在单位根); H1: 序列平稳(左尾)或爆炸(右尾)
// input: series 如对数RV; regr: "n"、"c"、"ct"; maxLag: 最大滞后阶数; autolag: 滞后选择方法; tail: LEFT_TAIL / RIGHT_TAIL
func AdfTest(series []float64, regr string, maxLag int, autolag LagMode, tail string) (ADFResult, error) {
	var criticals map[string]float64
	switch tail {
	case LEFT_TAIL:
		criticals = adfLeftTailCriticalValues[regr]
	case RIGHT_TAIL:
		criticals = adfRightTailCriticalValues[regr]
	default:
		return ADFResult{}, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("未知的尾部类型 %q", tail))
	}
	if criticals == nil {
		return ADFResult{}, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("未知的趋势类型 %q", regr))
	}
	if maxLag < 0 || len(series)-1-maxLag < 10 {
		return ADFResult{}, errorx.New(errCode.INVALID_VALUE, "样本量过小, 无法进行ADF检验")
	}

	result := ADFResult{
		AIC:       math.Inf(1),
		BIC:       math.Inf(1),
		Tail:      tail,
		Method:    autolag,
		Criticals: criticals,
		Trend:     regr,
	}
	found := false
	for lag := 0; lag <= maxLag; lag++ {
		matX, matY := buildADFDesign(series, regr, lag, maxLag)
		model, err := ols.MultiRegressionMat(matX, matY)
		if err != nil {
			continue
		}
		tStat := model.TStats[0]

		better := false
		switch autolag {
		case LAG_MODE_AIC:
			better = model.AIC < result.AIC
		case LAG_MODE_BIC:
			better = model.BIC < result.BIC
		case LAG_MODE_TSTAT:
			better = !found || tStat < result.TStat
		}
		if !better {
			continue
		}
		found = true
		result.Gamma = model.Coeffs[0]
		result.TStat = tStat
		result.PValue = model.PValues[0]
		result.AIC = model.AIC
		result.BIC = model.BIC
		result.UsedLag = lag
		result.NObs = matY.Len()
		result.Resid = model.Resids
		result.Coeffs = model.Coeffs
	}

	if !found || math.IsNaN(result.TStat) {
		return result, errorx.New(errCode.INVALID_VALUE, "ADF检验失败, 可能样本量过小或数据异常")
	}
	return result, nil
}

// GetEstimate 从adf检验结果获取漂移/趋势项估计
func (f *ADFResult) GetEstimate() (regr string, muHat, tauHat float64) {
	switch f.Trend {
	case REGR_CONST:
		if len(f.Coeffs) >= 2 {
			muHat = f.Coeffs[1]
		}
	case REGR_CONST_TREND:
		if len(f.Coeffs) >= 3 {
			muHat = f.Coeffs[1]
			tauHat = f.Coeffs[2]
		}
	}
	return f.Trend, muHat, tauHat
}
