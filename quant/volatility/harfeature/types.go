package harfeature

import "fmt"

// SeriesID 两条RV序列之一
type SeriesID int

const (
	SeriesA SeriesID = iota
	SeriesB
	NumSeries = 2
)

func (s SeriesID) String() string {
	switch s {
	case SeriesA:
		return "A"
	case SeriesB:
		return "B"
	default:
		return fmt.Sprintf("SeriesID(%d)", int(s))
	}
}

// Kind HAR分量, 每个分量对应一个单变量子模型
type Kind int

const (
	Daily Kind = iota
	Weekly
	Monthly
	NumKinds = 3
)

var Kinds = [NumKinds]Kind{Daily, Weekly, Monthly}

func (k Kind) String() string {
	switch k {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Windows 各分量回看窗口长度
type Windows struct {
	Daily   int
	Weekly  int
	Monthly int
}

func DefaultWindows() Windows {
	return Windows{Daily: 1, Weekly: 5, Monthly: 22}
}

func (w Windows) Of(k Kind) int {
	switch k {
	case Daily:
		return w.Daily
	case Weekly:
		return w.Weekly
	default:
		return w.Monthly
	}
}
