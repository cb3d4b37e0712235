package harfeature

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
)

// Panel 两条原始RV序列, 共用日期轴, 缺失值为NaN, 加载后只读
type Panel struct {
	Names  [NumSeries]string
	Dates  []time.Time
	Values [NumSeries][]float64
}

type LoadOptions struct {
	DateColumn string
	DateLayout string
	Columns    [NumSeries]string
	Names      [NumSeries]string // 为空时用列名
}

func LoadCSVFile(path string, opt LoadOptions) (*Panel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorx.Wrap(errCode.IO_FAILURE, err, "open csv")
	}
	defer f.Close()
	return LoadCSV(f, opt)
}

// LoadCSV 首行为表头; 日期必须严格递增; 空值/NA/NaN 记为缺失
func LoadCSV(r io.Reader, opt LoadOptions) (*Panel, error) {
	if opt.DateLayout == "" {
		opt.DateLayout = time.DateOnly
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, errorx.Wrap(errCode.IO_FAILURE, err, "read csv header")
	}
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}
	lookup := func(name string) (int, error) {
		i, ok := colIdx[name]
		if !ok {
			return 0, errorx.New(errCode.DATA_ALIGNMENT, fmt.Sprintf("csv缺少列 %q", name))
		}
		return i, nil
	}
	dateIdx, err := lookup(opt.DateColumn)
	if err != nil {
		return nil, err
	}
	p := &Panel{}
	var valIdx [NumSeries]int
	for s := 0; s < NumSeries; s++ {
		if valIdx[s], err = lookup(opt.Columns[s]); err != nil {
			return nil, err
		}
		p.Names[s] = opt.Names[s]
		if p.Names[s] == "" {
			p.Names[s] = opt.Columns[s]
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errorx.Wrap(errCode.IO_FAILURE, err, fmt.Sprintf("read csv line %d", line))
		}
		d, err := time.Parse(opt.DateLayout, strings.TrimSpace(rec[dateIdx]))
		if err != nil {
			return nil, errorx.Wrap(errCode.INVALID_VALUE, err, fmt.Sprintf("line %d: bad date", line))
		}
		if n := len(p.Dates); n > 0 && !d.After(p.Dates[n-1]) {
			return nil, errorx.New(errCode.DATA_ALIGNMENT, fmt.Sprintf("line %d: 日期 %s 未严格递增", line, d.Format(opt.DateLayout)))
		}
		p.Dates = append(p.Dates, d)
		for s := 0; s < NumSeries; s++ {
			v, err := parseValue(rec[valIdx[s]])
			if err != nil {
				return nil, errorx.Wrap(errCode.INVALID_VALUE, err, fmt.Sprintf("line %d column %q", line, opt.Columns[s]))
			}
			p.Values[s] = append(p.Values[s], v)
		}
	}
	if len(p.Dates) == 0 {
		return nil, errorx.New(errCode.EMPTY_VALUE, "csv没有数据行")
	}
	return p, nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func (p *Panel) Len() int { return len(p.Dates) }

// DatesBetween 取 [start, end] 内的日期; start为零值表示从头, end为零值或超出时截到最后一个日期
func (p *Panel) DatesBetween(start, end time.Time) []time.Time {
	if len(p.Dates) == 0 {
		return nil
	}
	last := p.Dates[len(p.Dates)-1]
	if end.IsZero() || end.After(last) {
		end = last
	}
	out := make([]time.Time, 0, len(p.Dates))
	for _, d := range p.Dates {
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, d)
	}
	return out
}
