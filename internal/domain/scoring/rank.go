package scoring

import (
	"sort"

	"github.com/okian/trustscore/internal/domain/model"
)

// TierFor maps a trust score to its tier. Cutoffs are lower-closed.
func TierFor(score float64) model.Tier {
	switch {
	case score >= TierSCutoff:
		return model.TierS
	case score >= TierACutoff:
		return model.TierA
	case score >= TierBCutoff:
		return model.TierB
	case score >= TierCCutoff:
		return model.TierC
	default:
		return model.TierD
	}
}

// RankAndTier returns the scores ordered by trust score descending with rank and
// tier set on every record, ineligible ones included. Ties keep input order.
// The input slice is not modified.
func RankAndTier(scores []model.TrustScore) []model.TrustScore {
	out := make([]model.TrustScore, len(scores))
	copy(out, scores)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TrustScore > out[j].TrustScore
	})

	for i := range out {
		rank := i + 1
		tier := TierFor(out[i].TrustScore)
		out[i].Rank = &rank
		out[i].Tier = &tier
	}
	return out
}

// TierDistribution counts ranked records per tier. Every tier is present.
func TierDistribution(scores []model.TrustScore) map[model.Tier]int {
	dist := make(map[model.Tier]int, len(model.Tiers))
	for _, t := range model.Tiers {
		dist[t] = 0
	}
	for _, s := range scores {
		if s.Tier != nil {
			dist[*s.Tier]++
		}
	}
	return dist
}
