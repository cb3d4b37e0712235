package main

import (
	"volcombine/conf"
	"volcombine/quant/volatility/diagnose"

	"github.com/spf13/cobra"
)

var (
	diagData    string
	diagMaxLag  int
	diagLagMode string
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Full-sample unit root, long memory and residual AR diagnostics",
	RunE:  runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringVar(&diagData, "data", "", "Override data.path")
	diagnoseCmd.Flags().IntVar(&diagMaxLag, "max-lag", 100, "Maximum ACF lag")
	diagnoseCmd.Flags().StringVar(&diagLagMode, "adf-lag-mode", "AIC", "ADF lag selection: AIC, BIC, t-stat")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	c := *conf.Get()
	if diagData != "" {
		c.Data.Path = diagData
	}
	p, tbl, err := loadTable(&c)
	if err != nil {
		return err
	}
	opt := diagnose.DefaultOptions()
	opt.MaxLag = diagMaxLag
	opt.ADFLagMode = diagLagMode
	reps, err := diagnose.Run(p, tbl, opt)
	if err != nil {
		return err
	}
	return diagnose.Print(cmd.OutOrStdout(), reps)
}
