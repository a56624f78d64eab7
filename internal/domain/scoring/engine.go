package scoring

import "github.com/okian/trustscore/internal/domain/model"

// Run executes one scoring run over cohort:
// eligibility, bounds, normalization, scoring, ranking, aggregation.
// The result is a pure function of the input.
func Run(cohort []model.WalletMetrics) model.Result {
	assessments := Assess(cohort)
	bounds, ok := ComputeBounds(assessments)
	scores := ScoreAll(assessments, bounds, ok)
	ranked := RankAndTier(scores)

	return model.Result{
		Scores:      ranked,
		CohortStats: Aggregate(cohort, ranked, bounds, ok),
	}
}

// ScoreAll produces an unranked record per assessment, in input order.
// Ineligible wallets, and every wallet when haveBounds is false, get a zero
// score with zeroed normalized metrics.
func ScoreAll(assessments []Assessment, bounds Bounds, haveBounds bool) []model.TrustScore {
	scores := make([]model.TrustScore, len(assessments))
	for i, a := range assessments {
		scores[i] = score(a, bounds, haveBounds)
		scores[i].CohortIndex = i
	}
	return scores
}

func score(a Assessment, bounds Bounds, haveBounds bool) model.TrustScore {
	s := model.TrustScore{
		WalletAddress: a.Wallet.WalletAddress,
		Eligibility:   a.Eligibility,
	}
	if !a.Eligibility.IsEligible || !haveBounds {
		return s
	}

	n := Normalize(a.Wallet, bounds)
	c := Compute(n)
	s.NormalizedMetrics = n
	s.TrustScore = c.TrustScore
	s.PerformanceScore = c.PerformanceScore
	s.RiskPenalty = c.RiskPenalty
	return s
}
