// Package arfit 残差的自回归结构: AR(1)拟合与白化, AR阶数识别, Ljung-Box检验
package arfit

// FitAR1 无截距AR(1): e_t = φ·e_{t-1} + u_t
// φ = Σ e_t·e_{t-1} / Σ e_{t-1}²
// 样本不足2个时不拟合, 返回0; 滞后项全为0时同样返回0
func FitAR1(e []float64) float64 {
	n := len(e)
	if n < 2 {
		return 0.0
	}
	num, den := 0.0, 0.0
	prev := e[:n-1]
	cur := e[1:]
	for i := range cur {
		num += cur[i] * prev[i]
		den += prev[i] * prev[i]
	}
	if den == 0 {
		return 0.0
	}
	return num / den
}

// Whiten ξ_t = e_t - φ·e_{t-1}, t=1..n-1, 长度n-1
func Whiten(e []float64, phi float64) []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	xi := make([]float64, len(e)-1)
	for t := 1; t < len(e); t++ {
		xi[t-1] = e[t] - phi*e[t-1]
	}
	return xi
}
