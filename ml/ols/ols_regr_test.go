package ols

import (
	"errors"
	"testing"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRegressionThroughOrigin(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{2.1, 3.9, 6.2, 7.8}

	m, err := RegressionThroughOrigin(x, y)
	require.NoError(t, err)

	// Σxy = 2.1+7.8+18.6+31.2 = 59.7, Σx² = 30
	assert.InDelta(t, 59.7/30, m.Slope, 1e-12)
	assert.Zero(t, m.Intercept)
	require.Len(t, m.Resids, len(y))
	for i := range y {
		assert.InDelta(t, y[i]-m.Slope*x[i], m.Resids[i], 1e-12)
	}
	assert.InDelta(t, m.Slope*5, m.Predict(5), 1e-12)
}

func TestRegressionThroughOrigin_Errors(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		code errCode.Code
	}{
		{"empty", nil, nil, errCode.EMPTY_VALUE},
		{"length mismatch", []float64{1, 2}, []float64{1}, errCode.INVALID_VALUE},
		{"zero predictor", []float64{0, 0, 0}, []float64{1, 2, 3}, errCode.INVALID_VALUE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RegressionThroughOrigin(tt.x, tt.y)
			require.Error(t, err)
			var e *errorx.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.code, e.Code)
		})
	}
}

func TestRegression(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11}

	m, err := Regression(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, m.Slope, 1e-12)
	assert.InDelta(t, 1.0, m.Intercept, 1e-12)
	assert.InDelta(t, 1.0, m.RSquared, 1e-12)
}

func TestMultiRegressionMat(t *testing.T) {
	// y = 1 + 2*x1 - x2
	rows := [][]float64{{1, 0}, {2, 1}, {3, 5}, {4, 2}, {5, 7}, {6, 3}}
	X := mat.NewDense(len(rows), 3, nil)
	Y := mat.NewVecDense(len(rows), nil)
	for i, r := range rows {
		X.Set(i, 0, 1)
		X.Set(i, 1, r[0])
		X.Set(i, 2, r[1])
		Y.SetVec(i, 1+2*r[0]-r[1])
	}

	m, err := MultiRegressionMat(X, Y)
	require.NoError(t, err)
	require.Len(t, m.Coeffs, 3)
	assert.InDelta(t, 1.0, m.Coeffs[0], 1e-9)
	assert.InDelta(t, 2.0, m.Coeffs[1], 1e-9)
	assert.InDelta(t, -1.0, m.Coeffs[2], 1e-9)
	assert.InDelta(t, 1.0, m.RSquared, 1e-9)
}

func TestMultiRegressionMat_TooFewRows(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 1, 1, 2})
	Y := mat.NewVecDense(2, []float64{1, 2})
	_, err := MultiRegressionMat(X, Y)
	require.Error(t, err)
}
