package myTools

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ArrMean 空切片返回NaN
func ArrMean(arr []float64) float64 {
	if len(arr) == 0 {
		return math.NaN()
	}
	return stat.Mean(arr, nil)
}

func DotProduct(a, b []float64) float64 {
	return floats.Dot(a, b)
}

func SumSquares(a []float64) float64 {
	return floats.Dot(a, a)
}

// MaskIsNaNBoth 去掉x或y任一为NaN的位置, 长度不一致时按短的截
func MaskIsNaNBoth(x, y []float64) ([]float64, []float64) {
	n := min(len(x), len(y))
	mx := make([]float64, 0, n)
	my := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		mx = append(mx, x[i])
		my = append(my, y[i])
	}
	return mx, my
}

// WelfordVariancePopulation 总体方差(除以n), 单遍计算
func WelfordVariancePopulation(arr []float64) float64 {
	if len(arr) == 0 {
		return math.NaN()
	}
	mean, m2 := 0.0, 0.0
	for i, v := range arr {
		d := v - mean
		mean += d / float64(i+1)
		m2 += d * (v - mean)
	}
	return m2 / float64(len(arr))
}

func ReverseSliceF64(arr []float64) []float64 {
	out := make([]float64, len(arr))
	copy(out, arr)
	floats.Reverse(out)
	return out
}

// TailF64 取最后n个元素(共享底层数组), n超出长度时原样返回
func TailF64(arr []float64, n int) []float64 {
	if n >= len(arr) {
		return arr
	}
	if n <= 0 {
		return arr[:0]
	}
	return arr[len(arr)-n:]
}
