package npCorr

import (
	"fmt"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
)

type CORRELATE_MODE uint

const (
	FULL_MODE  CORRELATE_MODE = iota // 长度 n+m-1
	VALID_MODE                       // 长度 n-m+1, 仅完全重叠部分
)

// Correlate 与 np.correlate 一致: c[k] = Σ_j a[k+j]·v[j]
// FULL 输出下标 i 对应 k = i-(m-1)
func Correlate(a, v []float64, mode CORRELATE_MODE) ([]float64, error) {
	n, m := len(a), len(v)
	if n == 0 || m == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "input length is not enough")
	}

	var kFrom, kTo int // k ∈ [kFrom, kTo]
	switch mode {
	case FULL_MODE:
		kFrom, kTo = -(m - 1), n-1
	case VALID_MODE:
		if m > n {
			return []float64{}, errorx.New(errCode.INVALID_VALUE, fmt.Sprintf("valid模式要求 len(v)=%d <= len(a)=%d", m, n))
		}
		kFrom, kTo = 0, n-m
	default:
		return nil, errorx.New(errCode.INVALID_VALUE, "invalid mode, expected 'full' or 'valid'")
	}

	out := make([]float64, kTo-kFrom+1)
	for k := kFrom; k <= kTo; k++ {
		jFrom := max(0, -k)
		jTo := min(m, n-k)
		sum := 0.0
		for j := jFrom; j < jTo; j++ {
			sum += a[k+j] * v[j]
		}
		out[k-kFrom] = sum
	}
	return out, nil
}
