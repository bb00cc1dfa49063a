package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/liucxer/confmiddleware/conflogger"
	"github.com/liucxer/perf-tools/pkg/config"
	"github.com/liucxer/perf-tools/pkg/line"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	var logger = conflogger.Log{
		Name:  "perf_analyze",
		Level: "Info",
	}
	logger.SetDefaults()
	logger.Init()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "perf_analyze",
		Short:         "Fit regression lines and detect anomalies in performance test results",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newFitCmd(), newAnalyzeCmd())
	return rootCmd
}

func newFitCmd() *cobra.Command {
	var x, y []float64
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Least squares line through the given points",
		RunE: func(cmd *cobra.Command, args []string) error {
			fit, err := line.LeastSquares(x, y)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), fit.Line.String())
			return err
		},
	}
	cmd.Flags().Float64SliceVar(&x, "x", nil, "x values, comma separated")
	cmd.Flags().Float64SliceVar(&y, "y", nil, "y values, comma separated")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var configFilePath string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyse csv result files for degradation and spikes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var conf config.ExecConfig
			err := conf.ReadConfig(configFilePath)
			if err != nil {
				return err
			}

			level, err := logrus.ParseLevel(conf.LogLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)

			_, err = Analyze(cmd.Context(), &conf, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVarP(&configFilePath, "config", "c", "config.json", "config file, .json or .toml")
	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		logrus.Errorf("perf_analyze err:%v", err)
		os.Exit(1)
	}
}
