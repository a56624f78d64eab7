// Package types contains common types used across the application
package types

import "github.com/okian/trustscore/internal/domain/model"

// Metrics are the raw wallet metrics a score was computed from.
type Metrics struct {
	NetROI      float64 `json:"netRoi" yaml:"netRoi" msgpack:"netRoi"`
	SharpeRatio float64 `json:"sharpeRatio" yaml:"sharpeRatio" msgpack:"sharpeRatio"`
	MaxDrawdown float64 `json:"maxDrawdown" yaml:"maxDrawdown" msgpack:"maxDrawdown"`
	TotalTrades int     `json:"totalTrades" yaml:"totalTrades" msgpack:"totalTrades"`
}

// MetricsOf copies the scored metrics of w.
func MetricsOf(w model.WalletMetrics) Metrics {
	return Metrics{
		NetROI:      w.NetROI,
		SharpeRatio: w.SharpeRatio,
		MaxDrawdown: w.MaxDrawdown,
		TotalTrades: w.TotalTrades,
	}
}

// Entry represents a leaderboard entry. Rank is the position on the
// leaderboard; CohortRank is the wallet's rank among the whole scored cohort.
type Entry struct {
	Rank             int        `json:"rank" yaml:"rank" msgpack:"rank"`
	WalletAddress    string     `json:"walletAddress" yaml:"walletAddress" msgpack:"walletAddress"`
	TrustScore       float64    `json:"trustScore" yaml:"trustScore" msgpack:"trustScore"`
	Tier             model.Tier `json:"tier" yaml:"tier" msgpack:"tier"`
	CohortRank       int        `json:"cohortRank" yaml:"cohortRank" msgpack:"cohortRank"`
	PerformanceScore float64    `json:"performanceScore" yaml:"performanceScore" msgpack:"performanceScore"`
	RiskPenalty      float64    `json:"riskPenalty" yaml:"riskPenalty" msgpack:"riskPenalty"`
	OriginalMetrics  Metrics    `json:"originalMetrics" yaml:"originalMetrics" msgpack:"originalMetrics"`
}

// NewEntry builds an entry at leaderboard position rank from a ranked score
// and the wallet it was computed from. It returns false when s has not been
// ranked.
func NewEntry(rank int, s model.TrustScore, w model.WalletMetrics) (Entry, bool) {
	if !s.Ranked() {
		return Entry{}, false
	}
	return Entry{
		Rank:             rank,
		WalletAddress:    s.WalletAddress,
		TrustScore:       s.TrustScore,
		Tier:             *s.Tier,
		CohortRank:       *s.Rank,
		PerformanceScore: s.PerformanceScore,
		RiskPenalty:      s.RiskPenalty,
		OriginalMetrics:  MetricsOf(w),
	}, true
}
