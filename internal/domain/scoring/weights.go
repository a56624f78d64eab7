// Package scoring implements the trust score engine: a pure, deterministic
// transform from a cohort of wallet metrics to bounded, ranked, tiered scores.
//
// The package holds no state. Every exported function works on its arguments
// only, so independent runs may execute concurrently without coordination.
package scoring

import "github.com/okian/trustscore/internal/domain/eligibility"

// Formula weights. Performance weights sum to 0.65; the drawdown penalty
// weight is 0.35.
const (
	SharpeWeight          = 0.40
	ROIWeight             = 0.25
	DrawdownPenaltyWeight = 0.35
)

// Tier cutoffs on the rounded trust score. Intervals are lower-closed.
const (
	TierSCutoff = 80.0
	TierACutoff = 65.0
	TierBCutoff = 50.0
	TierCCutoff = 30.0
)

const (
	maxTrustScore = 100.0
	// degenerateNormalized is used when every eligible wallet shares a value.
	degenerateNormalized = 0.5
)

// Weights exposes the formula weights for display.
type Weights struct {
	Sharpe          float64 `json:"sharpe" yaml:"sharpe" msgpack:"sharpe"`
	ROI             float64 `json:"roi" yaml:"roi" msgpack:"roi"`
	DrawdownPenalty float64 `json:"drawdownPenalty" yaml:"drawdownPenalty" msgpack:"drawdownPenalty"`
}

// Thresholds exposes the eligibility thresholds for display.
type Thresholds struct {
	MinTradingDays       int     `json:"minTradingDays" yaml:"minTradingDays" msgpack:"minTradingDays"`
	MinTrades            int     `json:"minTrades" yaml:"minTrades" msgpack:"minTrades"`
	MaxSingleDayROISpike float64 `json:"maxSingleDayROISpike" yaml:"maxSingleDayROISpike" msgpack:"maxSingleDayROISpike"`
}

// TierCutoffs exposes the minimum score of each tier above D.
type TierCutoffs struct {
	S float64 `json:"S" yaml:"S" msgpack:"S"`
	A float64 `json:"A" yaml:"A" msgpack:"A"`
	B float64 `json:"B" yaml:"B" msgpack:"B"`
	C float64 `json:"C" yaml:"C" msgpack:"C"`
}

// Algorithm is the informational metadata published alongside results.
type Algorithm struct {
	Weights     Weights     `json:"weights" yaml:"weights" msgpack:"weights"`
	Eligibility Thresholds  `json:"eligibility" yaml:"eligibility" msgpack:"eligibility"`
	Tiers       TierCutoffs `json:"tiers" yaml:"tiers" msgpack:"tiers"`
}

// Parameters returns the fixed algorithm constants.
func Parameters() Algorithm {
	return Algorithm{
		Weights: Weights{
			Sharpe:          SharpeWeight,
			ROI:             ROIWeight,
			DrawdownPenalty: DrawdownPenaltyWeight,
		},
		Eligibility: Thresholds{
			MinTradingDays:       eligibility.MinTradingDays,
			MinTrades:            eligibility.MinTotalTrades,
			MaxSingleDayROISpike: eligibility.MaxSingleDayROISpike,
		},
		Tiers: TierCutoffs{S: TierSCutoff, A: TierACutoff, B: TierBCutoff, C: TierCCutoff},
	}
}
