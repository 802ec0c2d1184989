package main

import (
	"github.com/spf13/cobra"

	config "hpcsim/configs"
)

// flags holds the ambient, non-semantic settings the CLI layer
// resolves from Cobra flags (falling back to config.Config read from
// the environment). None of these change a run's reference makespan.
type flags struct {
	tracePath     string
	logLevel      string
	logEncoding   string
	progressEvery int
	metricsOut    string
}

func newRootCmd() *cobra.Command {
	cfg := config.LoadConfig()
	f := &flags{
		logLevel:      cfg.LogLevel,
		logEncoding:   cfg.LogEncoding,
		progressEvery: cfg.ProgressEvery,
		metricsOut:    cfg.MetricsOutPath,
	}

	root := &cobra.Command{
		Use:           "simulate",
		Short:         "Discrete-event simulator of a batch HPC job scheduler",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&f.tracePath, "trace", "ANL-Intrepid-2009-1.swf", "path to the SWF-like trace file")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", f.logLevel, "debug, info, warn, or error")
	root.PersistentFlags().StringVar(&f.logEncoding, "log-encoding", f.logEncoding, "json or console")
	root.PersistentFlags().IntVar(&f.progressEvery, "progress-every", f.progressEvery, "log a progress line every N scheduled jobs (0 disables)")
	root.PersistentFlags().StringVar(&f.metricsOut, "metrics-out", f.metricsOut, "write a one-shot Prometheus text dump here after the run ('-' for stdout, empty to disable)")

	root.AddCommand(newRunCmd(f))
	return root
}
