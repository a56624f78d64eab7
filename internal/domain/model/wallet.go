// Package model contains domain models passed between layers.
package model

// SecondsPerDay converts epoch-second spans into calendar days.
const SecondsPerDay = 86400

// CompletedTrade is a closed position taken from a wallet's trade ledger.
// Only the fields needed for single-day spike detection are carried.
type CompletedTrade struct {
	ExitTimestamp  int64   `json:"exitTimestamp" yaml:"exitTimestamp" msgpack:"exitTimestamp" validate:"gte=0"`
	RealizedPnlUSD float64 `json:"realizedPnlUsd" yaml:"realizedPnlUsd" msgpack:"realizedPnlUsd" validate:"finite"`
	EntryValueUSD  float64 `json:"entryValueUsd" yaml:"entryValueUsd" msgpack:"entryValueUsd" validate:"finite"`
}

// WalletMetrics is the performance summary of one wallet for one scoring run,
// as supplied by the analytics upstream.
type WalletMetrics struct {
	WalletAddress string `json:"walletAddress" yaml:"walletAddress" msgpack:"walletAddress" validate:"required"`
	// NetROI is the realized return on investment in percent (signed).
	NetROI float64 `json:"netRoi" yaml:"netRoi" msgpack:"netRoi" validate:"finite"`
	// SharpeRatio is the risk-adjusted return (signed).
	SharpeRatio float64 `json:"sharpeRatio" yaml:"sharpeRatio" msgpack:"sharpeRatio" validate:"finite"`
	// MaxDrawdown is the peak-to-trough loss in percent.
	MaxDrawdown float64 `json:"maxDrawdown" yaml:"maxDrawdown" msgpack:"maxDrawdown" validate:"finite,gte=0"`
	TotalTrades int     `json:"totalTrades" yaml:"totalTrades" msgpack:"totalTrades" validate:"gte=0"`
	// AnalysisStartDate and AnalysisEndDate are epoch seconds.
	AnalysisStartDate int64            `json:"analysisStartDate" yaml:"analysisStartDate" msgpack:"analysisStartDate" validate:"gte=0"`
	AnalysisEndDate   int64            `json:"analysisEndDate" yaml:"analysisEndDate" msgpack:"analysisEndDate" validate:"gtefield=AnalysisStartDate"`
	CompletedTrades   []CompletedTrade `json:"completedTrades" yaml:"completedTrades" msgpack:"completedTrades" validate:"dive"`
}

// TradingDays returns the analysis window length in whole days, rounded up.
func (w WalletMetrics) TradingDays() int {
	span := w.AnalysisEndDate - w.AnalysisStartDate
	if span <= 0 {
		return 0
	}
	days := span / SecondsPerDay
	if span%SecondsPerDay != 0 {
		days++
	}
	return int(days)
}
