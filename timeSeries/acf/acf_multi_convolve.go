// 多段自相关的FFT实现
//
// 自相关与卷积的关系:
//
//	C(τ)      = Σ_t x_t·x_{t+τ}
//	(y*h)[n]  = Σ_k y[k]·h[n-k]
//
// 令 y[k] = x_k, h[m] = x_{-m}, 则 (y*h)[n] = Σ_k x_k·x_{k-n}, 即 C 是 x 与翻转后的 x 的卷积
//
// 频域计算:
//  1. x 去全局均值, 零填充到 >= 2T, 避免循环卷积的回绕
//  2. 实数FFT得到 X
//  3. 翻转+卷积在频域等价于乘共轭: X·conj(X) = |X|²
//  4. IFFT 得到各lag的自相关和
//  5. 各段按lag累加后, 除以 σ²·配对数
//
// 复杂度 O(N·maxLag) => O(N·logN)
package acf

import (
	"math"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"

	"gonum.org/v1/gonum/dsp/fourier"
)

func (s *MultiSegments) AutoCorrSegmentsFFT(maxLag int) ([]float64, error) {
	if maxLag <= 0 {
		return nil, errorx.New(errCode.INVALID_VALUE, "maxLag must be > 0")
	}

	// 全局分子: 每段 Σ(x_t-μ)(x_{t+k}-μ) 之和
	numerator := make([]float64, maxLag)
	// 全局配对数
	pairCnt := make([]int, maxLag)
	// 长度相同的段共用一个FFT
	plans := make(map[int]*fourier.FFT)

	for _, seg := range s.eps {
		T := len(seg)
		if T == 0 {
			continue
		}

		// ---------- Step 1: 去均值 + 零填充 ----------
		L := nextPow2(2 * T)
		seq := make([]float64, L)
		for i, v := range seg {
			seq[i] = v - s.mean
		}

		// ---------- Step 2: 实数FFT ----------
		fft, ok := plans[L]
		if !ok {
			fft = fourier.NewFFT(L)
			plans[L] = fft
		}
		coeff := fft.Coefficients(nil, seq) // len = L/2 + 1

		// ---------- Step 3: |X|² ----------
		for i, c := range coeff {
			re, im := real(c), imag(c)
			coeff[i] = complex(re*re+im*im, 0) // 纯实数
		}

		// ---------- Step 4: IFFT ----------
		// Coefficients 之后再 Sequence 结果放大了 L 倍
		acTime := fft.Sequence(nil, coeff)
		scale := 1.0 / float64(L)

		// 本段只有 T 个lag有配对
		for k := 0; k < min(maxLag, T); k++ {
			numerator[k] += acTime[k] * scale
			pairCnt[k] += T - k
		}
	}

	// ---------- Step 5: 标准化 ----------
	acf := make([]float64, maxLag)
	for k := 0; k < maxLag; k++ {
		if pairCnt[k] == 0 {
			// 更大的lag也不会再有配对
			for j := k; j < maxLag; j++ {
				acf[j] = math.NaN()
			}
			break
		}
		acf[k] = numerator[k] / (s.variance * float64(pairCnt[k]))
	}
	return acf, nil
}

// nextPow2 >= n 的最小2的幂
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
