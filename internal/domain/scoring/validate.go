package scoring

import (
	"fmt"
	"math"

	"github.com/okian/trustscore/internal/domain/model"
)

// ValidationTolerance is the allowed absolute difference between a stored
// component and its re-derived value.
const ValidationTolerance = 0.01

// Validation is the outcome of an audit over computed scores.
type Validation struct {
	IsValid bool     `json:"isValid" yaml:"isValid" msgpack:"isValid"`
	Issues  []string `json:"issues" yaml:"issues" msgpack:"issues"`
}

// Validate re-derives each record's components from its stored normalized
// metrics and reports arithmetic or range violations. It never mutates scores
// and is meant for audits and tests; an issue indicates an engine bug.
func Validate(scores []model.TrustScore) Validation {
	issues := []string{}
	for _, s := range scores {
		issues = append(issues, validateOne(s)...)
	}
	return Validation{IsValid: len(issues) == 0, Issues: issues}
}

func validateOne(s model.TrustScore) []string {
	var issues []string
	addr := s.WalletAddress

	if !inRange(s.TrustScore, 0, maxTrustScore) {
		issues = append(issues, fmt.Sprintf("%s: trust score %.4f outside [0,100]", addr, s.TrustScore))
	}

	n := s.NormalizedMetrics
	for _, m := range []struct {
		name  string
		value float64
	}{
		{"normalizedRoi", n.NormalizedROI},
		{"normalizedSharpe", n.NormalizedSharpe},
		{"normalizedMaxDrawdown", n.NormalizedMaxDrawdown},
	} {
		if !inRange(m.value, 0, 1) {
			issues = append(issues, fmt.Sprintf("%s: %s %.4f outside [0,1]", addr, m.name, m.value))
		}
	}

	if want := PerformanceScore(n); !within(s.PerformanceScore, want) {
		issues = append(issues, fmt.Sprintf("%s: performance score %.4f, expected %.4f", addr, s.PerformanceScore, want))
	}
	if want := RiskPenalty(n); !within(s.RiskPenalty, want) {
		issues = append(issues, fmt.Sprintf("%s: risk penalty %.4f, expected %.4f", addr, s.RiskPenalty, want))
	}
	if !s.Eligibility.IsEligible && s.TrustScore != 0 {
		issues = append(issues, fmt.Sprintf("%s: ineligible wallet has trust score %.2f", addr, s.TrustScore))
	}
	return issues
}

func inRange(x, lo, hi float64) bool {
	return !math.IsNaN(x) && x >= lo && x <= hi
}

func within(got, want float64) bool {
	return math.Abs(got-want) <= ValidationTolerance
}
