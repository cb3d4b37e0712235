package acf

// AutoFitRange 自动确定 log-log 的拟合区间 [start, end)
func AutoFitRange(acf []float64) (start, end int) {
	n := len(acf)

	// 找到所有 ACF>0 的 lag（log 不能取 <=0）, lag 从 1 开始
	valid := make([]int, 0, n)
	for lag := 1; lag < n; lag++ {
		if acf[lag] > 0 {
			valid = append(valid, lag)
		}
	}

	if len(valid) < 20 {
		// 区间太短, 退化为前30%
		return 1, max(2, int(float64(n)*0.3))
	}

	// 去掉前后各20%, 中间60%当作线性区
	s := valid[int(float64(len(valid))*0.2)]
	e := valid[int(float64(len(valid))*0.8)]
	if e <= s+5 {
		e = s + 5
	}
	if e > n {
		e = n
	}
	return s, e
}
