package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/trustscore/internal/adapters/codec"
	"github.com/okian/trustscore/internal/domain/leaderboard"
	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/pkg/logger"
)

func newLeaderboardCmd(c *cli) *cobra.Command {
	var (
		input    string
		limit    int
		minScore float64
		out      outputFlags
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Score a cohort and list its top wallets",
		Long: `Score a cohort and write the ranked eligible wallets at or above a score
floor, with the score distribution and the eligibility breakdown.

Examples:
  trustscore leaderboard -i cohort.json
  trustscore leaderboard -i cohort.json --limit 10 --min-score 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := out.resolve(c.cfg.OutputFormat)
			if err != nil {
				return err
			}
			q := leaderboard.Query{Limit: c.cfg.LeaderboardLimit, MinTrustScore: c.cfg.MinTrustScore}
			if cmd.Flags().Changed("limit") {
				// A zero limit would otherwise fall back to the query default.
				if limit < 1 {
					return fmt.Errorf("%w: --limit must be at least 1, got %d", leaderboard.ErrInvalidQuery, limit)
				}
				q.Limit = limit
			}
			if cmd.Flags().Changed("min-score") {
				q.MinTrustScore = minScore
			}

			cohort, err := codec.ReadFile(input)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			board, err := c.service(false).Leaderboard(ctx, model.Job{Source: input, Cohort: cohort}, q)
			if err != nil {
				return err
			}
			if err := out.write(cmd, format, board); err != nil {
				return err
			}

			logger.Get().Info(ctx, "leaderboard written",
				logger.String("input", input),
				logger.Int("entries", len(board.Entries)),
				logger.Int("limit", board.Query.Limit),
				logger.Float64("minScore", board.Query.MinTrustScore))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Cohort file (json, yaml, msgpack); - reads JSON from stdin")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries (default from config)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Minimum trust score to list (default from config)")
	out.register(cmd)
	return cmd
}
