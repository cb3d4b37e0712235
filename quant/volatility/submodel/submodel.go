// Package submodel 单变量HAR子模型: 目标对单个分量做无截距回归
package submodel

import (
	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/ml/ols"
	"volcombine/quant/volatility/harfeature"
)

// Fit 每个(日期, horizon, 序列, 分量)一次, 用完即弃
type Fit struct {
	Kind     harfeature.Kind
	Beta     float64
	Resid    []float64 // 样本内残差, 最旧在前
	Forecast float64
}

func Estimate(kind harfeature.Kind, xTrain, yTrain []float64, xTest float64) (Fit, error) {
	m, err := ols.RegressionThroughOrigin(xTrain, yTrain)
	if err != nil {
		return Fit{}, errorx.Wrap(errorx.CodeOf(err), err, kind.String()+" submodel")
	}
	return Fit{
		Kind:     kind,
		Beta:     m.Slope,
		Resid:    m.Resids,
		Forecast: m.Predict(xTest),
	}, nil
}

// EstimateAll 三个分量共用同一段训练行 [from, to), 对行 test 做预测
func EstimateAll(tbl *harfeature.Table, s harfeature.SeriesID, h, from, to, test int) ([harfeature.NumKinds]Fit, error) {
	var fits [harfeature.NumKinds]Fit
	if from < 0 || to <= from || test >= tbl.Len() {
		return fits, errorx.New(errCode.EMPTY_VALUE, "训练窗口为空")
	}
	y, err := tbl.Target(s, h)
	if err != nil {
		return fits, err
	}
	for _, k := range harfeature.Kinds {
		x := tbl.Column(s, k)
		if fits[k], err = Estimate(k, x[from:to], y[from:to], x[test]); err != nil {
			return fits, err
		}
	}
	return fits, nil
}
