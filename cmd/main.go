package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/okian/trustscore/internal/app"
	"github.com/okian/trustscore/internal/config"
	"github.com/okian/trustscore/pkg/logger"
	"github.com/okian/trustscore/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// cli carries state shared by every subcommand: the loaded configuration and
// the values of the persistent flags.
type cli struct {
	cfg *config.Config

	logLevel    string
	metricsFile string
}

// newRootCmd builds the trustscore command tree.
func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "trustscore",
		Short: "Score wallet cohorts by risk-adjusted trading performance",
		Long: `trustscore computes a 0-100 trust score for every wallet in a cohort.
Eligible wallets are normalized against each other, scored from Sharpe ratio,
ROI and maximum drawdown, then ranked and assigned a tier from S to D.

Configuration is layered from defaults, an optional YAML file named by
TRUSTSCORE_CONFIG and TRUSTSCORE_* environment variables. Flags win over both.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.flushMetrics(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")

	root.AddCommand(
		newScoreCmd(c),
		newBatchCmd(c),
		newLeaderboardCmd(c),
		newGenerateCmd(c),
		newParamsCmd(c),
	)
	return root
}

// setup loads configuration, applies flag overrides and initializes logging.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = c.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	c.cfg = cfg
	logger.Get().Debug(cmd.Context(), "configuration loaded",
		logger.String("command", cmd.Name()),
		logger.Int("workers", cfg.WorkerCount),
		logger.Int("queueSize", cfg.QueueSize),
		logger.String("outputFormat", cfg.OutputFormat))
	return nil
}

// flushMetrics writes the metrics textfile when one is configured.
func (c *cli) flushMetrics(ctx context.Context) error {
	if c.cfg == nil || c.cfg.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(c.cfg.MetricsFile); err != nil {
		return err
	}
	logger.Get().Debug(ctx, "metrics written", logger.String("path", c.cfg.MetricsFile))
	return nil
}

// service builds a scoring service from the loaded configuration.
func (c *cli) service(audit bool) *app.Service {
	return app.New(
		app.WithWorkerCount(c.cfg.WorkerCount),
		app.WithQueueSize(c.cfg.QueueSize),
		app.WithDedupeSize(c.cfg.DedupeSize),
		app.WithAudit(audit || c.cfg.Audit),
		app.WithMaxLeaderboardLimit(c.cfg.MaxLeaderboardLimit),
		app.WithLogger(logger.Named("service")),
	)
}
