package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"volcombine/quant/volatility/harfeature"
	"volcombine/quant/volatility/walkforward"

	"github.com/shopspring/decimal"
)

const noData = "no data"

func fixed(v float64, decimals int32) string {
	return decimal.NewFromFloat(v).StringFixed(decimals)
}

// Print MSE表, 之后是每个bucket的权重分布
func Print(w io.Writer, sums []Summary, decimals int32) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SERIES\tH\tN\tMSE(COW)\tMSE(DAILY)\tMSE(WEEKLY)\tMSE(MONTHLY)\tMSE(EQUAL)\tW̄(D/W/M)\tSKIPPED")
	for _, s := range sums {
		if s.NoData {
			fmt.Fprintf(tw, "%s\t%d\t0\t%s\t\t\t\t\t\t%s\n", s.Name, s.Key.Horizon, noData, skipString(s.Skips))
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Name, s.Key.Horizon, s.N,
			fixed(s.MSE, decimals),
			fixed(s.SubMSE[harfeature.Daily], decimals),
			fixed(s.SubMSE[harfeature.Weekly], decimals),
			fixed(s.SubMSE[harfeature.Monthly], decimals),
			fixed(s.EqualWeightMSE, decimals),
			weightString(s),
			skipString(s.Skips))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, s := range sums {
		if s.NoData || len(s.WeightHist[0]) == 0 {
			continue
		}
		fmt.Fprintf(w, "\nweights %s h=%d\n", s.Name, s.Key.Horizon)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, k := range harfeature.Kinds {
			fmt.Fprintf(tw, "  %s\t", k)
			for _, bin := range s.WeightHist[k] {
				fmt.Fprintf(tw, "[%s,%s):%d\t", fixed(bin.From, 2), fixed(bin.To, 2), bin.Count)
			}
			fmt.Fprintln(tw)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func weightString(s Summary) string {
	parts := make([]string, len(s.MeanWeights))
	for k, v := range s.MeanWeights {
		parts[k] = fixed(v, 3)
	}
	return strings.Join(parts, "/")
}

func skipString(m map[walkforward.SkipReason]int) string {
	parts := make([]string, 0, len(walkforward.SkipReasons))
	for _, r := range walkforward.SkipReasons {
		if n := m[r]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", r, n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
