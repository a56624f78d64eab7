// Package leaderboard derives ranked views and summary statistics from a
// completed scoring run. It never re-scores: order, rank and tier come from the
// engine result.
package leaderboard

import (
	"errors"
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"github.com/okian/trustscore/internal/domain/eligibility"
	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/internal/domain/scoring"
	"github.com/okian/trustscore/internal/domain/types"
)

var validate = validator.New()

// Query selects which wallets make the leaderboard. Zero fields take their
// defaults.
type Query struct {
	Limit         int     `json:"limit" yaml:"limit" msgpack:"limit" default:"100" validate:"gte=1"`
	MinTrustScore float64 `json:"minTrustScore" yaml:"minTrustScore" msgpack:"minTrustScore" default:"0" validate:"gte=0,lte=100"`
}

// Prepare applies defaults and checks q against maxLimit.
func (q *Query) Prepare(maxLimit int) error {
	if err := defaults.Set(q); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s must satisfy %s=%s", ErrInvalidQuery, verrs[0].Field(), verrs[0].Tag(), verrs[0].Param())
		}
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		return fmt.Errorf("%w: %d > %d", ErrLimitExceeded, q.Limit, maxLimit)
	}
	return nil
}

// Leaderboard is the ranked view of one run plus its summaries.
type Leaderboard struct {
	Entries      []types.Entry      `json:"entries" yaml:"entries" msgpack:"entries"`
	Distribution Distribution       `json:"distribution" yaml:"distribution" msgpack:"distribution"`
	Eligibility  Breakdown          `json:"eligibility" yaml:"eligibility" msgpack:"eligibility"`
	Tiers        map[model.Tier]int `json:"tiers" yaml:"tiers" msgpack:"tiers"`
	Query        Query              `json:"query" yaml:"query" msgpack:"query"`
}

// Build selects eligible wallets scoring at least q.MinTrustScore, keeps the
// engine's rank order, truncates to q.Limit and numbers entries from 1.
// cohort is the input res was computed from; each entry carries its wallet's
// raw metrics. q must have been prepared.
func Build(res model.Result, cohort []model.WalletMetrics, q Query) Leaderboard {
	qualifying := make([]model.TrustScore, 0, len(res.Scores))
	for _, s := range res.Scores {
		if s.Eligibility.IsEligible && s.TrustScore >= q.MinTrustScore {
			qualifying = append(qualifying, s)
		}
	}

	entries := make([]types.Entry, 0, min(q.Limit, len(qualifying)))
	for _, s := range qualifying {
		if len(entries) == q.Limit {
			break
		}
		var w model.WalletMetrics
		if s.CohortIndex >= 0 && s.CohortIndex < len(cohort) {
			w = cohort[s.CohortIndex]
		}
		if e, ok := types.NewEntry(len(entries)+1, s, w); ok {
			entries = append(entries, e)
		}
	}

	scores := make([]float64, len(qualifying))
	for i, s := range qualifying {
		scores[i] = s.TrustScore
	}

	return Leaderboard{
		Entries:      entries,
		Distribution: Distribute(scores, res.CohortStats),
		Eligibility:  BreakdownOf(res.Scores),
		Tiers:        scoring.TierDistribution(res.Scores),
		Query:        q,
	}
}

// Breakdown counts wallets per eligibility criterion. A wallet failing several
// rules is counted under each of them.
type Breakdown struct {
	Eligible            int `json:"eligible" yaml:"eligible" msgpack:"eligible"`
	InsufficientHistory int `json:"insufficientHistory" yaml:"insufficientHistory" msgpack:"insufficientHistory"`
	InsufficientTrades  int `json:"insufficientTrades" yaml:"insufficientTrades" msgpack:"insufficientTrades"`
	ExtremeROISpike     int `json:"extremeRoiSpike" yaml:"extremeRoiSpike" msgpack:"extremeRoiSpike"`
}

// BreakdownOf tallies eligibility outcomes over scores.
func BreakdownOf(scores []model.TrustScore) Breakdown {
	var b Breakdown
	for _, s := range scores {
		for _, c := range eligibility.Failures(s.Eligibility) {
			switch c {
			case eligibility.CriterionEligible:
				b.Eligible++
			case eligibility.CriterionInsufficientHistory:
				b.InsufficientHistory++
			case eligibility.CriterionInsufficientTrades:
				b.InsufficientTrades++
			case eligibility.CriterionExtremeROISpike:
				b.ExtremeROISpike++
			}
		}
	}
	return b
}

// Counts returns the breakdown keyed by criterion.
func (b Breakdown) Counts() map[eligibility.Criterion]int {
	return map[eligibility.Criterion]int{
		eligibility.CriterionEligible:            b.Eligible,
		eligibility.CriterionInsufficientHistory: b.InsufficientHistory,
		eligibility.CriterionInsufficientTrades:  b.InsufficientTrades,
		eligibility.CriterionExtremeROISpike:     b.ExtremeROISpike,
	}
}
