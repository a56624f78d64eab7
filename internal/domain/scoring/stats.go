package scoring

import "github.com/okian/trustscore/internal/domain/model"

// Aggregate summarises a run. Average and top score only consider eligible
// wallets; when nothing is eligible every numeric field is zero.
func Aggregate(cohort []model.WalletMetrics, scores []model.TrustScore, bounds Bounds, haveBounds bool) model.CohortStats {
	stats := model.CohortStats{TotalWallets: len(cohort)}

	var sum, top float64
	for _, s := range scores {
		if !s.Eligibility.IsEligible {
			continue
		}
		stats.EligibleWallets++
		sum += s.TrustScore
		if stats.EligibleWallets == 1 || s.TrustScore > top {
			top = s.TrustScore
		}
	}
	stats.DisqualifiedWallets = stats.TotalWallets - stats.EligibleWallets

	if stats.EligibleWallets == 0 || !haveBounds {
		return stats
	}

	stats.AvgTrustScore = Round2(sum / float64(stats.EligibleWallets))
	stats.TopScore = top
	stats.MinROI = bounds.MinROI
	stats.MaxROI = bounds.MaxROI
	stats.MinSharpe = bounds.MinSharpe
	stats.MaxSharpe = bounds.MaxSharpe
	stats.MinDrawdown = bounds.MinDrawdown
	stats.MaxDrawdown = bounds.MaxDrawdown
	return stats
}
