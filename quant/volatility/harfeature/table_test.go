package harfeature

import (
	"math"
	"strings"
	"testing"
	"time"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// RV_t = t+1 (A), 2(t+1) (B)
func linearPanel(n int) *Panel {
	p := &Panel{Names: [NumSeries]string{"A", "B"}}
	for t := 0; t < n; t++ {
		p.Dates = append(p.Dates, day0.AddDate(0, 0, t))
		p.Values[SeriesA] = append(p.Values[SeriesA], float64(t+1))
		p.Values[SeriesB] = append(p.Values[SeriesB], 2*float64(t+1))
	}
	return p
}

func TestBuild_Columns(t *testing.T) {
	p := linearPanel(40)
	tbl, err := Build(p, DefaultWindows(), []int{1, 5})
	require.NoError(t, err)

	// 有效行 t ∈ [22, 34]
	require.Equal(t, 13, tbl.Len())
	assert.Equal(t, 27, tbl.Dropped())
	assert.Equal(t, day0.AddDate(0, 0, 22), tbl.Date(0))

	y1, err := tbl.Target(SeriesA, 1)
	require.NoError(t, err)
	y5, err := tbl.Target(SeriesA, 5)
	require.NoError(t, err)
	for i := 0; i < tbl.Len(); i++ {
		tt := float64(i + 22)
		assert.InDelta(t, tt+1, tbl.Raw(SeriesA)[i], 1e-12)
		assert.InDelta(t, tt, tbl.Column(SeriesA, Daily)[i], 1e-12)
		assert.InDelta(t, tt-2, tbl.Column(SeriesA, Weekly)[i], 1e-9)
		assert.InDelta(t, tt-10.5, tbl.Column(SeriesA, Monthly)[i], 1e-9)
		assert.InDelta(t, tt+2, y1[i], 1e-12)
		assert.InDelta(t, tt+4, y5[i], 1e-9)
		assert.InDelta(t, 2*(tt+4), mustTarget(t, tbl, SeriesB, 5)[i], 1e-9)
	}

	_, err = tbl.Target(SeriesA, 10)
	require.Error(t, err)
}

func mustTarget(t *testing.T, tbl *Table, s SeriesID, h int) []float64 {
	col, err := tbl.Target(s, h)
	require.NoError(t, err)
	return col
}

// 预测变量只用t之前的数据, 目标不含t本身
func TestBuild_NoLeakage(t *testing.T) {
	p := linearPanel(60)
	// 在第30天放一个尖峰, 只应影响 t>30 的预测变量和 t<30 的目标
	p.Values[SeriesA][30] = 1000
	tbl, err := Build(p, DefaultWindows(), []int{3})
	require.NoError(t, err)

	i, ok := tbl.Index(day0.AddDate(0, 0, 30))
	require.True(t, ok)
	for _, k := range Kinds {
		assert.Less(t, tbl.Column(SeriesA, k)[i], 1000.0/float64(tbl.Windows().Of(k)), "kind %s", k)
	}
	y := mustTarget(t, tbl, SeriesA, 3)
	assert.Less(t, y[i], 100.0)
	assert.Greater(t, y[i-1], 300.0)
	assert.Greater(t, tbl.Column(SeriesA, Daily)[i+1], 999.0)
}

func TestBuild_DropsMissing(t *testing.T) {
	p := linearPanel(50)
	p.Values[SeriesB][30] = math.NaN()
	tbl, err := Build(p, Windows{Daily: 1, Weekly: 2, Monthly: 3}, []int{1})
	require.NoError(t, err)

	// 缺失影响: 自身行, 以它为目标的前一行, 以它为预测变量的后3行
	for _, d := range []int{29, 30, 31, 32, 33} {
		_, ok := tbl.Index(day0.AddDate(0, 0, d))
		assert.False(t, ok, "day %d should be dropped", d)
	}
	_, ok := tbl.Index(day0.AddDate(0, 0, 34))
	assert.True(t, ok)
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(linearPanel(10), DefaultWindows(), []int{1})
	require.Error(t, err)
	assert.Equal(t, errCode.EMPTY_VALUE, errorx.CodeOf(err))

	_, err = Build(linearPanel(40), Windows{Daily: 0, Weekly: 5, Monthly: 22}, []int{1})
	assert.Error(t, err)
	_, err = Build(linearPanel(40), DefaultWindows(), nil)
	assert.Error(t, err)
	_, err = Build(linearPanel(40), DefaultWindows(), []int{-1})
	assert.Error(t, err)
}

const csvDoc = `date,SPX,N225,other
2020-01-01,0.10,0.20,x
2020-01-02,0.11,,x
2020-01-03, 0.12 ,NA,x
`

func TestLoadCSV(t *testing.T) {
	p, err := LoadCSV(strings.NewReader(csvDoc), LoadOptions{
		DateColumn: "date",
		Columns:    [NumSeries]string{"SPX", "N225"},
		Names:      [NumSeries]string{"S&P 500", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "S&P 500", p.Names[SeriesA])
	assert.Equal(t, "N225", p.Names[SeriesB])
	assert.Equal(t, []float64{0.10, 0.11, 0.12}, p.Values[SeriesA])
	assert.Equal(t, 0.20, p.Values[SeriesB][0])
	assert.True(t, math.IsNaN(p.Values[SeriesB][1]))
	assert.True(t, math.IsNaN(p.Values[SeriesB][2]))

	ds := p.DatesBetween(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Len(t, ds, 2)
}

func TestLoadCSV_Errors(t *testing.T) {
	opt := LoadOptions{DateColumn: "date", Columns: [NumSeries]string{"SPX", "N225"}}
	tests := map[string]struct {
		doc  string
		code errCode.Code
	}{
		"missing column": {"date,SPX\n2020-01-01,1\n", errCode.DATA_ALIGNMENT},
		"not increasing": {"date,SPX,N225\n2020-01-02,1,1\n2020-01-01,1,1\n", errCode.DATA_ALIGNMENT},
		"bad number":     {"date,SPX,N225\n2020-01-01,abc,1\n", errCode.INVALID_VALUE},
		"bad date":       {"date,SPX,N225\n01/01/2020,1,1\n", errCode.INVALID_VALUE},
		"no rows":        {"date,SPX,N225\n", errCode.EMPTY_VALUE},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.doc), opt)
			require.Error(t, err)
			assert.Equal(t, tt.code, errorx.CodeOf(err))
		})
	}
}
