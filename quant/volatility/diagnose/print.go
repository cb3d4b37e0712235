package diagnose

import (
	"fmt"
	"io"
	"text/tabwriter"

	"volcombine/quant/volatility/harfeature"
)

func Print(w io.Writer, reps [harfeature.NumSeries]SeriesReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range reps {
		fmt.Fprintf(tw, "== %s (n=%d)\t\n", r.Name, r.N)

		if r.ADFErr != nil {
			fmt.Fprintf(tw, "ADF(log RV)\terror: %v\n", r.ADFErr)
		} else {
			fmt.Fprintf(tw, "ADF(log RV)\tt=%.3f lag=%d(%s) seg=%d drift=%.4f 5%%=%.2f reject=%v\n",
				r.ADF.TStat, r.ADF.UsedLag, r.ADF.Method, r.ADFN, r.ADFDrift, r.ADF.Criticals["5%"], r.ADF.Reject("5%"))
		}

		if r.PowerLawErr != nil {
			fmt.Fprintf(tw, "ACF power law\terror: %v\n", r.PowerLawErr)
		} else {
			fmt.Fprintf(tw, "ACF power law\tgamma=%.3f R2=%.3f lags=[%d,%d) points=%d\n",
				r.PowerLaw.Gamma, r.PowerLaw.R2, r.PowerLaw.Start, r.PowerLaw.End, r.PowerLaw.Points)
		}

		fmt.Fprintf(tw, "daily submodel h=%d\tbeta=%.4f phi=%.4f best AR p=%d\n", r.Horizon, r.DailyBeta, r.Phi, r.BestP)
		printLB(tw, "Ljung-Box raw", r.LBRaw)
		printLB(tw, "Ljung-Box whitened", r.LBWhitened)
	}
	return tw.Flush()
}

func printLB(w io.Writer, label string, lb LjungBox) {
	if lb.Err != nil {
		fmt.Fprintf(w, "%s\terror: %v\n", label, lb.Err)
		return
	}
	fmt.Fprintf(w, "%s\tQ=%.2f p=%.4f reject=%v\n", label, lb.Q, lb.PValue, lb.Reject)
}
