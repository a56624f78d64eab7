package leaderboard

import (
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/internal/domain/scoring"
)

// Distribution summarises a set of trust scores. Values are rounded to two
// decimals; everything is zero for an empty set.
type Distribution struct {
	Count           int     `json:"count" yaml:"count" msgpack:"count"`
	Mean            float64 `json:"mean" yaml:"mean" msgpack:"mean"`
	Median          float64 `json:"median" yaml:"median" msgpack:"median"`
	Min             float64 `json:"min" yaml:"min" msgpack:"min"`
	Max             float64 `json:"max" yaml:"max" msgpack:"max"`
	StdDev          float64 `json:"stdDev" yaml:"stdDev" msgpack:"stdDev"`
	EligibilityRate float64 `json:"eligibilityRate" yaml:"eligibilityRate" msgpack:"eligibilityRate"`
}

// Distribute computes the distribution of scores. The median is the middle
// sorted value, the upper one for even counts. StdDev is the population
// standard deviation and is zero below two scores.
func Distribute(scores []float64, stats model.CohortStats) Distribution {
	d := Distribution{Count: len(scores)}
	if stats.TotalWallets > 0 {
		d.EligibilityRate = scoring.Round2(float64(stats.EligibleWallets) / float64(stats.TotalWallets))
	}
	if len(scores) == 0 {
		return d
	}

	sorted := slices.Clone(scores)
	slices.Sort(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}

	d.Mean = scoring.Round2(mean)
	d.Median = scoring.Round2(sorted[len(sorted)/2])
	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]
	d.StdDev = scoring.Round2(std)
	return d
}
