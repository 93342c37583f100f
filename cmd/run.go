package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/debuti/bitslides/common"
	"github.com/debuti/bitslides/discoverer"
	"github.com/debuti/bitslides/indexer"
	"github.com/debuti/bitslides/planner"
	"github.com/debuti/bitslides/ste"
	"github.com/debuti/bitslides/trace"
)

// runOnce wires the five components together for a single pass (spec.md §2:
// "Data flows strictly forward: discoverer -> indexer -> planner ->
// executor. The tracer is a side channel written by every stage.").
//
// Exit codes follow spec.md §6: 0 on success, including "no jobs to do";
// non-zero on configuration failure or a fatal discovery error.
func runOnce(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		return common.Stage(common.PhaseConfiguration, "", fmt.Errorf("--config is required"))
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := common.LoadMainConfig(configPath)
	if err != nil {
		return err
	}

	logger := common.NewRunLogger(logLevelFromFlags(), "")
	logger.OpenLog()
	defer logger.CloseLog()

	now := time.Now()
	tracer, err := trace.New(cfg.Trace, now)
	if err != nil {
		return err
	}
	defer tracer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel() // spec.md §5 "Cancellation": stop starting new work, finish or abort in-flight
		case <-ctx.Done():
		}
	}()

	volumes, err := discoverer.Discover(ctx, cfg.RootSet(), logger, tracer)
	if err != nil {
		return common.Stage(common.PhaseDiscovery, "", err)
	}
	if len(volumes) == 0 {
		fmt.Fprintln(os.Stdout, "no volumes discovered; nothing to do")
		return nil
	}

	slidesBySrc, err := indexer.IndexAll(ctx, volumes, cfg.RootSet().KeywordOrDefault(), logger, tracer)
	if err != nil {
		return common.Stage(common.PhaseDiscovery, "", err)
	}

	jobs := planner.Plan(volumes, slidesBySrc, tracer)
	if len(jobs) == 0 {
		fmt.Fprintln(os.Stdout, "no sync jobs to do")
		return nil
	}

	if dryRun {
		for _, j := range jobs {
			fmt.Fprintln(os.Stdout, "would run: "+j.String())
		}
		return nil
	}

	exec := ste.New(ste.Config{
		CollisionPolicy:  cfg.CollisionPolicy,
		IntegrityPolicy:  cfg.IntegrityPolicy,
		RetryBudget:      cfg.RetryBudget,
		PerFileTimeout:   cfg.PerFileTimeout,
		FileConcurrency:  int64(cfg.FileConcurrency),
		JobConcurrency:   int64(cfg.JobConcurrency),
		TidyDestinations: cfg.TidyDestinations,
	}, logger, tracer)

	summary, err := exec.Run(ctx, cfg.RootSet().KeywordOrDefault(), jobs)
	fmt.Fprintf(os.Stdout, "done: %d moved, %d skipped, %d failed\n", summary.FilesDone, summary.FilesSkipped, summary.FilesFailed)
	if err != nil {
		// Per-file failures are traced and counted, not fatal (spec.md §6,
		// §7): only a genuine run-level error (e.g. cancellation) exits
		// non-zero here.
		return common.Stage(common.PhaseExecution, "", err)
	}
	return nil
}
