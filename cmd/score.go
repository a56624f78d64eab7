package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/trustscore/internal/adapters/codec"
	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/pkg/logger"
)

func newScoreCmd(c *cli) *cobra.Command {
	var (
		input string
		audit bool
		out   outputFlags
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one cohort and write its report",
		Long: `Score every wallet of a cohort file and write a report holding the
run id, algorithm parameters, per-wallet scores and cohort statistics.

Examples:
  trustscore score -i cohort.json
  trustscore score -i cohort.yaml -o report.yaml --audit
  cat cohort.json | trustscore score -i - --format msgpack -o report.msgpack`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := out.resolve(c.cfg.OutputFormat)
			if err != nil {
				return err
			}
			cohort, err := codec.ReadFile(input)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			report, err := c.service(audit).Score(ctx, model.Job{Source: input, Cohort: cohort})
			if err != nil {
				return err
			}
			if err := out.write(cmd, format, report); err != nil {
				return err
			}

			logger.Get().Info(ctx, "report written",
				logger.String("run_id", report.RunID),
				logger.String("input", input),
				logger.String("output", out.path),
				logger.String("format", format))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Cohort file (json, yaml, msgpack); - reads JSON from stdin")
	cmd.Flags().BoolVar(&audit, "audit", false, "Validate every score and embed the outcome in the report")
	out.register(cmd)
	return cmd
}
