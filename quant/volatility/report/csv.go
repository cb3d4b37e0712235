package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"
	"volcombine/quant/volatility/harfeature"
	"volcombine/quant/volatility/walkforward"
)

var csvHeader = []string{
	"series", "horizon", "date", "forecast", "realized", "sqerr",
	"w_daily", "w_weekly", "w_monthly", "f_daily", "f_weekly", "f_monthly",
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV 每条记录一行, 按 res.Keys() 再按日期排列
func WriteCSV(w io.Writer, res *walkforward.Result, names [harfeature.NumSeries]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, k := range res.Keys() {
		b, _ := res.Bucket(k)
		h := strconv.Itoa(k.Horizon)
		for _, r := range b.Records {
			row := []string{names[k.Series], h, r.Date.Format(time.DateOnly),
				ftoa(r.Forecast), ftoa(r.Realized), ftoa(r.SqErr)}
			for _, v := range r.Weights {
				row = append(row, ftoa(v))
			}
			for _, v := range r.SubForecasts {
				row = append(row, ftoa(v))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCSVFile(path string, res *walkforward.Result, names [harfeature.NumSeries]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errorx.Wrap(errCode.IO_FAILURE, err, "create "+path)
	}
	if err := WriteCSV(f, res, names); err != nil {
		f.Close()
		return errorx.Wrap(errCode.IO_FAILURE, err, "write "+path)
	}
	if err := f.Close(); err != nil {
		return errorx.Wrap(errCode.IO_FAILURE, err, "close "+path)
	}
	return nil
}
