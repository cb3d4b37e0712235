package npCorr

import (
	"volcombine/pkg/utils/myTools"
)

// Convolve 与 np.convolve 一致, 卷积核翻转后复用 Correlate
func Convolve(a, v []float64, mode CORRELATE_MODE) ([]float64, error) {
	return Correlate(a, myTools.ReverseSliceF64(v), mode)
}

// RollingMean 窗口均值, 输出第k个元素为 mean(a[k..k+w-1]), 长度 n-w+1
func RollingMean(a []float64, w int) ([]float64, error) {
	kernel := make([]float64, w)
	for i := range kernel {
		kernel[i] = 1.0 / float64(w)
	}
	return Convolve(a, kernel, VALID_MODE)
}
