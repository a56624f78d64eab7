package scoring_test

import "github.com/okian/trustscore/internal/domain/model"

const day = int64(model.SecondsPerDay)

const start = int64(1_700_000_000)

// eligibleWallet returns a wallet that passes every eligibility rule.
func eligibleWallet(addr string, roi, sharpe, drawdown float64) model.WalletMetrics {
	return model.WalletMetrics{
		WalletAddress:     addr,
		NetROI:            roi,
		SharpeRatio:       sharpe,
		MaxDrawdown:       drawdown,
		TotalTrades:       100,
		AnalysisStartDate: start,
		AnalysisEndDate:   start + 120*day,
	}
}

// thinWallet returns a wallet that fails the trade-count rule.
func thinWallet(addr string, roi, sharpe, drawdown float64) model.WalletMetrics {
	w := eligibleWallet(addr, roi, sharpe, drawdown)
	w.TotalTrades = 20
	return w
}

func scoreOf(res model.Result, addr string) model.TrustScore {
	for _, s := range res.Scores {
		if s.WalletAddress == addr {
			return s
		}
	}
	return model.TrustScore{}
}
