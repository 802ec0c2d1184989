package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hpcsim/pkg/cluster"
	"hpcsim/pkg/engine"
	"hpcsim/pkg/logger"
	"hpcsim/pkg/metrics"
	"hpcsim/pkg/models"
	"hpcsim/pkg/scheduler"
	"hpcsim/pkg/stats"
	"hpcsim/pkg/trace"
)

func newRunCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <algorithm> <nodes> [task_limit]",
		Short: "Replay a trace under a named scheduling policy",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(f, args)
		},
	}
}

func runSimulation(f *flags, args []string) error {
	algorithm := args[0]

	nodes, err := strconv.Atoi(args[1])
	if err != nil || nodes <= 0 {
		return fmt.Errorf("config: nodes must be a positive integer, got %q", args[1])
	}

	taskLimit := -1
	if len(args) == 3 {
		taskLimit, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("config: task_limit must be an integer, got %q", args[2])
		}
	}

	policy, err := scheduler.Lookup(algorithm)
	if err != nil {
		return fmt.Errorf("config: %w (available: %s)", err, strings.Join(scheduler.Names(), ", "))
	}

	log, err := logger.Init(logger.Config{
		Level:      f.logLevel,
		Encoding:   f.logEncoding,
		OutputPath: "stdout",
		Service:    logger.DefaultServiceName,
	})
	if err != nil {
		return fmt.Errorf("config: initializing logger: %w", err)
	}
	defer logger.Sync()

	runID := uuid.New().String()
	log = log.With(zap.String("run_id", runID), zap.String("algorithm", algorithm))

	traceFile, err := os.Open(f.tracePath)
	if err != nil {
		return fmt.Errorf("opening trace file: %w", err)
	}
	defer traceFile.Close()

	c := cluster.New(nodes)
	obs := &cliObserver{log: log, algorithm: algorithm, progressEvery: f.progressEvery}
	eng := engine.New(c, policy, obs)

	log.Info("reading trace to populate the simulation", zap.String("path", f.tracePath))
	src := trace.NewReader(traceFile, nodes, taskLimit, obs.onSkip)
	loaded, err := eng.Load(src)
	if err != nil {
		return fmt.Errorf("input-data: %w", err)
	}
	log.Info("finished reading trace, ready for simulation",
		zap.Int("jobs_loaded", loaded),
		zap.Int("total_nodes", nodes),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Warn("received signal, will stop at the next tick boundary", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Info("starting the simulation")
	result, err := eng.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	printReport(result, c)

	if f.metricsOut != "" {
		metrics.Makespan.Set(float64(result.Makespan))
		if result.Makespan > 0 {
			metrics.ClusterUtilisation.Set(float64(c.UsedResources()) / float64(result.Makespan*int64(nodes)))
		}
		if err := writeMetricsDump(f.metricsOut); err != nil {
			return fmt.Errorf("writing metrics dump: %w", err)
		}
	}

	return nil
}

func writeMetricsDump(path string) error {
	if path == "-" {
		return metrics.Dump(os.Stdout)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return metrics.Dump(out)
}

// printReport prints the final statistics block to stdout, in the
// same plain-text shape the original simulator used, so the §8
// reference fixtures remain diffable against real output.
func printReport(result engine.Result, c *cluster.Cluster) {
	ws := stats.Summarize(result.WaitTimes)
	totalCompletion := stats.SumCompletionTimes(result.CompletionTimes)

	fmt.Println("Simulation finished.")
	fmt.Println("Statistics:")
	fmt.Printf("- makespan: %d\n", result.Makespan)
	fmt.Printf("- total completion time: %d\n", totalCompletion)
	fmt.Println("- wait times:")
	fmt.Printf("-- min: %d\n", ws.Min)
	fmt.Printf("-- max: %d\n", ws.Max)
	fmt.Printf("-- mean: %.4f\n", ws.Mean)
	fmt.Printf("-- median: %.1f\n", ws.Median)
	fmt.Printf("-- total (sum): %d\n", ws.Sum)
	fmt.Println(c.ReportUtilisation(result.Makespan))
}

// cliObserver wires the engine's Observer callbacks to structured
// logging and Prometheus recording, without the engine package
// importing either.
type cliObserver struct {
	log           *zap.Logger
	algorithm     string
	progressEvery int
	scheduled     int
}

func (o *cliObserver) onSkip(jobID, nodesRequested int64, totalNodes int) {
	o.OnJobSkipped(jobID, nodesRequested, totalNodes)
}

func (o *cliObserver) OnJobSkipped(jobID, nodesRequested int64, totalNodes int) {
	metrics.JobsSkipped.Inc()
	o.log.Warn("skipping job: requires more nodes than the cluster has",
		zap.Int64("job_id", jobID),
		zap.Int64("nodes_requested", nodesRequested),
		zap.Int("total_nodes", totalNodes),
	)
}

func (o *cliObserver) OnJobScheduled(job *models.Job, clock int64, backfilled bool) {
	metrics.JobsScheduled.WithLabelValues(o.algorithm).Inc()
	metrics.WaitTimeSeconds.Observe(float64(job.WaitTime()))
	if backfilled && o.algorithm == "fcfs_easy" {
		metrics.BackfillDispatches.Inc()
	}
	o.scheduled++

	if o.progressEvery > 0 && o.scheduled%o.progressEvery == 0 {
		o.log.Info("scheduling progress", zap.Int("scheduled_jobs", o.scheduled), zap.Int64("clock", clock))
	}
}

func (o *cliObserver) OnTick(clock int64, queueDepth, availableNodes int) {
	metrics.QueueDepth.Set(float64(queueDepth))
	o.log.Debug("tick", zap.Int64("clock", clock), zap.Int("queue_depth", queueDepth), zap.Int("available_nodes", availableNodes))
}

func (o *cliObserver) OnDone(makespan int64, scheduledJobs int) {
	o.log.Info("simulation done", zap.Int64("makespan", makespan), zap.Int("scheduled_jobs", scheduledJobs))
}
