package scoring

import (
	"github.com/okian/trustscore/internal/domain/eligibility"
	"github.com/okian/trustscore/internal/domain/model"
)

// Assessment pairs a wallet with its eligibility outcome. It is the first
// stage of the pipeline; bounds can only be derived from assessments.
type Assessment struct {
	Wallet      model.WalletMetrics
	Eligibility model.EligibilityResult
}

// Assess runs the eligibility gate over the cohort, preserving input order.
func Assess(cohort []model.WalletMetrics) []Assessment {
	out := make([]Assessment, len(cohort))
	for i, w := range cohort {
		out[i] = Assessment{Wallet: w, Eligibility: eligibility.Check(w)}
	}
	return out
}

// Bounds is the second pipeline stage. The zero value is not usable; obtain it
// from ComputeBounds.
type Bounds struct {
	model.NormalizationBounds
	eligible int
}

// Eligible returns the number of wallets the bounds were computed from.
func (b Bounds) Eligible() int { return b.eligible }

// ComputeBounds returns the min/max of each raw metric over the eligible
// assessments. ok is false when no wallet is eligible.
func ComputeBounds(assessments []Assessment) (b Bounds, ok bool) {
	for _, a := range assessments {
		if !a.Eligibility.IsEligible {
			continue
		}
		w := a.Wallet
		if b.eligible == 0 {
			b.NormalizationBounds = model.NormalizationBounds{
				MinROI: w.NetROI, MaxROI: w.NetROI,
				MinSharpe: w.SharpeRatio, MaxSharpe: w.SharpeRatio,
				MinDrawdown: w.MaxDrawdown, MaxDrawdown: w.MaxDrawdown,
			}
		} else {
			b.MinROI = min(b.MinROI, w.NetROI)
			b.MaxROI = max(b.MaxROI, w.NetROI)
			b.MinSharpe = min(b.MinSharpe, w.SharpeRatio)
			b.MaxSharpe = max(b.MaxSharpe, w.SharpeRatio)
			b.MinDrawdown = min(b.MinDrawdown, w.MaxDrawdown)
			b.MaxDrawdown = max(b.MaxDrawdown, w.MaxDrawdown)
		}
		b.eligible++
	}
	return b, b.eligible > 0
}
