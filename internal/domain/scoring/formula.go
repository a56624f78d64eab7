package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/okian/trustscore/internal/domain/model"
)

// Components is the breakdown of one wallet's score.
type Components struct {
	TrustScore       float64
	PerformanceScore float64
	RiskPenalty      float64
}

// Compute applies the weighted formula:
//
//	performance = sharpe*0.40 + roi*0.25
//	penalty     = drawdown*0.35
//	trust       = round2(max(0, performance-penalty) * 100)
func Compute(n model.NormalizedMetrics) Components {
	perf := PerformanceScore(n)
	penalty := RiskPenalty(n)
	return Components{
		TrustScore:       Round2(max(0, perf-penalty) * maxTrustScore),
		PerformanceScore: perf,
		RiskPenalty:      penalty,
	}
}

// PerformanceScore is the weighted Sharpe and ROI contribution.
func PerformanceScore(n model.NormalizedMetrics) float64 {
	return n.NormalizedSharpe*SharpeWeight + n.NormalizedROI*ROIWeight
}

// RiskPenalty is the weighted drawdown contribution.
func RiskPenalty(n model.NormalizedMetrics) float64 {
	return n.NormalizedMaxDrawdown * DrawdownPenaltyWeight
}

// Round2 rounds half away from zero to two decimal places in decimal space,
// so values such as 12.345 do not drift because of their binary form.
func Round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
