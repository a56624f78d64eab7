package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/okian/trustscore/internal/adapters/codec"
	app "github.com/okian/trustscore/internal/app"
	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/pkg/logger"
)

// submitRetryInterval is how long batch waits before resubmitting a job the
// queue rejected.
const submitRetryInterval = 10 * time.Millisecond

func newBatchCmd(c *cli) *cobra.Command {
	var (
		outDir string
		format string
		audit  bool
	)

	cmd := &cobra.Command{
		Use:   "batch -d outdir cohort [cohort...]",
		Short: "Score many cohorts concurrently, one report per input",
		Long: `Score every cohort file on the worker pool. Each cohort is scored on its
own; wallets are never compared across files. Reports are written to the
output directory as <name>.report.<ext>.

Examples:
  trustscore batch -d reports week1.json week2.yaml week3.msgpack`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = c.cfg.OutputFormat
			}
			enc, err := codec.ParseFormat(format)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			jobs, err := readJobs(args)
			if err != nil {
				return err
			}
			return runBatch(cmd, c.service(audit), jobs, reportPaths(outDir, enc, jobs), enc)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "d", ".", "Directory receiving the reports")
	cmd.Flags().StringVar(&format, "format", "", "Report format: json, yaml, msgpack")
	cmd.Flags().BoolVar(&audit, "audit", false, "Validate every score and embed the outcome in the report")
	return cmd
}

// readJobs decodes every input before any scoring starts, so a bad file fails
// the batch without writing partial output.
func readJobs(paths []string) ([]model.Job, error) {
	jobs := make([]model.Job, 0, len(paths))
	var errs []error
	for _, p := range paths {
		cohort, err := codec.ReadFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		jobs = append(jobs, model.Job{ID: uuid.NewString(), Source: p, Cohort: cohort})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return jobs, nil
}

// reportPaths maps job ids to output files. Inputs sharing a base name get a
// numeric suffix.
func reportPaths(dir, format string, jobs []model.Job) map[string]string {
	seen := make(map[string]int, len(jobs))
	paths := make(map[string]string, len(jobs))
	for _, j := range jobs {
		name := strings.TrimSuffix(filepath.Base(j.Source), filepath.Ext(j.Source))
		if name == "" || name == "-" {
			name = "stdin"
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		paths[j.ID] = filepath.Join(dir, name+".report"+codec.Extension(format))
	}
	return paths
}

func runBatch(cmd *cobra.Command, svc *app.Service, jobs []model.Job, paths map[string]string, format string) error {
	ctx := cmd.Context()
	log := logger.Get()

	var (
		mu   sync.Mutex
		done = make(map[string]bool, len(jobs))
	)
	sink := func(_ context.Context, r app.Report) error {
		if err := codec.WriteFile(paths[r.RunID], format, r); err != nil {
			return err
		}
		mu.Lock()
		done[r.RunID] = true
		mu.Unlock()
		return nil
	}

	if err := svc.Start(ctx, sink); err != nil {
		return err
	}
	defer svc.Stop()

	for _, job := range jobs {
		if err := submit(ctx, svc, job); err != nil {
			return err
		}
	}
	if err := svc.Drain(ctx); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	var failed []string
	for _, job := range jobs {
		if !done[job.ID] {
			failed = append(failed, job.Source)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", job.Source, paths[job.ID])
	}
	log.Info(ctx, "batch finished",
		logger.Int("jobs", len(jobs)),
		logger.Int("failed", len(failed)))
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d cohorts failed: %s", len(failed), len(jobs), strings.Join(failed, ", "))
	}
	return nil
}

// submit queues job, waiting while the queue is full.
func submit(ctx context.Context, svc *app.Service, job model.Job) error {
	ticker := time.NewTicker(submitRetryInterval)
	defer ticker.Stop()
	for {
		err := svc.Submit(ctx, job)
		if !errors.Is(err, app.ErrBackpressure) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
