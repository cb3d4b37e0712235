package adfuller

const (
	LEFT_TAIL  = "left_tail"
	RIGHT_TAIL = "right_tail"
)

// 确定性项
const (
	REGR_NONE        = "n"
	REGR_CONST       = "c"
	REGR_CONST_TREND = "ct"
)

type LagMode int

const (
	LAG_MODE_AIC   LagMode = iota // "AIC"
	LAG_MODE_BIC                  // "BIC"
	LAG_MODE_TSTAT                // "t-stat"
	LAG_MODE_ERROR                // "ERROR"
)

func (s LagMode) String() string {
	switch s {
	case LAG_MODE_AIC:
		return "AIC"
	case LAG_MODE_BIC:
		return "BIC"
	case LAG_MODE_TSTAT:
		return "t-stat"
	default:
		return "ERROR"
	}
}

func GetMyLagMode(s string) LagMode {
	switch s {
	case "AIC":
		return LAG_MODE_AIC
	case "BIC":
		return LAG_MODE_BIC
	case "t-stat":
		return LAG_MODE_TSTAT
	default:
		return LAG_MODE_ERROR
	}
}

// 左尾临界值
var adfLeftTailCriticalValues = map[string]map[string]float64{
	"n":  {"1%": -2.58, "5%": -1.95, "10%": -1.62},
	"c":  {"1%": -3.43, "5%": -2.86, "10%": -2.57},
	"ct": {"1%": -3.96, "5%": -3.41, "10%": -3.13},
}

// 右尾ADF临界值
var adfRightTailCriticalValues = map[string]map[string]float64{
	"n":  {"1%": 2.58, "5%": 1.95, "10%": 1.62},
	"c":  {"1%": 3.43, "5%": 2.86, "10%": 2.57},
	"ct": {"1%": 3.96, "5%": 3.41, "10%": 3.13},
}
