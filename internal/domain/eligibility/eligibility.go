// Package eligibility gates wallets before they can be scored.
//
// A wallet is eligible when its analysis window spans at least MinTradingDays,
// it has at least MinTotalTrades trades, and no single UTC day shows a P&L swing
// larger than MaxSingleDayROISpike percent of the capital entered that day.
package eligibility

import (
	"fmt"

	"github.com/okian/trustscore/internal/domain/model"
)

// Eligibility thresholds. They are fixed per algorithm version.
const (
	MinTradingDays       = 90
	MinTotalTrades       = 50
	MaxSingleDayROISpike = 500.0 // percent
)

// ReasonEligible is the single reason recorded for a wallet that passes every rule.
const ReasonEligible = "All eligibility criteria met"

// Criterion identifies a single eligibility rule.
type Criterion string

// Criteria used for breakdown reporting.
const (
	CriterionEligible            Criterion = "eligible"
	CriterionInsufficientHistory Criterion = "insufficient_history"
	CriterionInsufficientTrades  Criterion = "insufficient_trades"
	CriterionExtremeROISpike     Criterion = "extreme_roi_spike"
)

// Check evaluates every rule for w. Rules do not short-circuit: all failing
// reasons are recorded and the spike detector always runs.
func Check(w model.WalletMetrics) model.EligibilityResult {
	tradingDays := w.TradingDays()
	maxSpike := MaxSingleDayROI(w.CompletedTrades)
	risky := maxSpike > MaxSingleDayROISpike

	var reasons []string
	if tradingDays < MinTradingDays {
		reasons = append(reasons, fmt.Sprintf(
			"Insufficient trading history: %d days (minimum %d required)", tradingDays, MinTradingDays))
	}
	if w.TotalTrades < MinTotalTrades {
		reasons = append(reasons, fmt.Sprintf(
			"Insufficient trades: %d (minimum %d required)", w.TotalTrades, MinTotalTrades))
	}
	if risky {
		reasons = append(reasons, fmt.Sprintf(
			"Single-day ROI spike of %.2f%% exceeds %.0f%% limit", maxSpike, MaxSingleDayROISpike))
	}

	eligible := len(reasons) == 0
	if eligible {
		reasons = []string{ReasonEligible}
	}

	return model.EligibilityResult{
		IsEligible:      eligible,
		Reasons:         reasons,
		TradingDays:     tradingDays,
		TotalTrades:     w.TotalTrades,
		MaxSingleDayROI: maxSpike,
		HasRiskySpikes:  risky,
	}
}

// Failures lists the criteria a computed result failed, or CriterionEligible
// when it passed. The thresholds are re-applied to the recorded values.
func Failures(r model.EligibilityResult) []Criterion {
	if r.IsEligible {
		return []Criterion{CriterionEligible}
	}
	var out []Criterion
	if r.TradingDays < MinTradingDays {
		out = append(out, CriterionInsufficientHistory)
	}
	if r.TotalTrades < MinTotalTrades {
		out = append(out, CriterionInsufficientTrades)
	}
	if r.HasRiskySpikes {
		out = append(out, CriterionExtremeROISpike)
	}
	return out
}
