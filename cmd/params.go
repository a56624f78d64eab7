package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/trustscore/internal/domain/scoring"
)

func newParamsCmd(c *cli) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the scoring weights, eligibility thresholds and tier cutoffs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := out.resolve(c.cfg.OutputFormat)
			if err != nil {
				return err
			}
			return out.write(cmd, format, scoring.Parameters())
		},
	}

	out.register(cmd)
	return cmd
}
