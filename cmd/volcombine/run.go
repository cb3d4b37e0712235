package main

import (
	"volcombine/conf"
	"volcombine/infra/observe/log/staticLog"
	"volcombine/quant/volatility/report"
	"volcombine/quant/volatility/walkforward"

	"github.com/spf13/cobra"
)

var (
	runData  string
	runStart string
	runEnd   string
	runOut   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the walk-forward combination and print the MSE report",
	Long: `Run the walk-forward combination over walkforward.start..walkforward.end.

Example usage:
  volcombine run --config cfg.yaml
  volcombine run --config cfg.yaml --start 2012-01-03 --end 2019-12-31 --out preds.csv`,
	RunE: runWalkForward,
}

func init() {
	runCmd.Flags().StringVar(&runData, "data", "", "Override data.path")
	runCmd.Flags().StringVar(&runStart, "start", "", "Override walkforward.start")
	runCmd.Flags().StringVar(&runEnd, "end", "", "Override walkforward.end")
	runCmd.Flags().StringVar(&runOut, "out", "", "Override report.predictions_csv")
}

func runWalkForward(cmd *cobra.Command, args []string) error {
	c := *conf.Get()
	if runData != "" {
		c.Data.Path = runData
	}
	if runStart != "" {
		c.WalkForward.Start = runStart
	}
	if runEnd != "" {
		c.WalkForward.End = runEnd
	}
	if runOut != "" {
		c.Report.PredictionsCSV = runOut
	}
	start, err := c.StartTime()
	if err != nil {
		return err
	}
	end, err := c.EndTime()
	if err != nil {
		return err
	}
	conf.Set(&c)

	p, tbl, err := loadTable(&c)
	if err != nil {
		return err
	}
	dates := p.DatesBetween(start, end)

	res, err := walkforward.Run(tbl, dates, walkforward.Config{
		Horizons:     c.WalkForward.Horizons,
		PurgeOverlap: c.WalkForward.PurgeOverlap,
		Workers:      c.WalkForward.Workers,
	})
	if err != nil {
		return err
	}

	sums := report.Summarize(res, p.Names, c.Report.WeightBins)
	if err := report.Print(cmd.OutOrStdout(), sums, c.Report.Decimals); err != nil {
		return err
	}
	if c.Report.PredictionsCSV != "" {
		if err := report.WriteCSVFile(c.Report.PredictionsCSV, res, p.Names); err != nil {
			return err
		}
		staticLog.Log.Infof("predictions written to %s", c.Report.PredictionsCSV)
	}
	return nil
}
