package main

import (
	"fmt"
	"io"
	"os"

	"volcombine/conf"
	"volcombine/infra/observe/log/staticLog"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logCloser  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "volcombine",
	Short: "Walk-forward COW combination of HAR realized-volatility forecasts",
	Long: `volcombine fits daily, weekly and monthly HAR submodels on an expanding
window at every evaluation date, combines their forecasts with conditionally
optimal weights from the AR(1)-whitened, bias-adjusted error covariance, and
reports out-of-sample MSE per series and horizon.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := conf.Init(configPath); err != nil {
			return err
		}
		c := conf.Get()
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		closer, err := staticLog.Setup(staticLog.Options{
			Level:      c.Log.Level,
			File:       c.Log.File,
			MaxSizeMB:  c.Log.MaxSizeMB,
			MaxBackups: c.Log.MaxBackups,
			MaxAgeDays: c.Log.MaxAgeDays,
		})
		if err != nil {
			return fmt.Errorf("log setup: %w", err)
		}
		logCloser = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to yaml configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(diagnoseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
