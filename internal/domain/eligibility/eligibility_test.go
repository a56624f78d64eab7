package eligibility_test

import (
	"testing"

	"github.com/okian/trustscore/internal/domain/eligibility"
	"github.com/okian/trustscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const start = int64(1_700_000_000)

func wallet(days int64, trades int, ledger ...model.CompletedTrade) model.WalletMetrics {
	return model.WalletMetrics{
		WalletAddress:     "wallet-1",
		NetROI:            12,
		SharpeRatio:       1.1,
		MaxDrawdown:       8,
		TotalTrades:       trades,
		AnalysisStartDate: start,
		AnalysisEndDate:   start + days*model.SecondsPerDay,
		CompletedTrades:   ledger,
	}
}

func spikeTrade(pnl float64) model.CompletedTrade {
	return model.CompletedTrade{ExitTimestamp: start + 3600, RealizedPnlUSD: pnl, EntryValueUSD: 100}
}

func TestCheck(t *testing.T) {
	Convey("Given the eligibility gate", t, func() {
		Convey("When a wallet sits exactly on every threshold", func() {
			res := eligibility.Check(wallet(90, 50, spikeTrade(500)))

			Convey("Then it is eligible with the single success reason", func() {
				So(res.IsEligible, ShouldBeTrue)
				So(res.Reasons, ShouldResemble, []string{eligibility.ReasonEligible})
				So(res.TradingDays, ShouldEqual, 90)
				So(res.TotalTrades, ShouldEqual, 50)
				So(res.MaxSingleDayROI, ShouldAlmostEqual, 500, 1e-9)
				So(res.HasRiskySpikes, ShouldBeFalse)
			})
		})

		Convey("When the history is one day short", func() {
			res := eligibility.Check(wallet(89, 50))

			Convey("Then it is disqualified for history only", func() {
				So(res.IsEligible, ShouldBeFalse)
				So(res.Reasons, ShouldHaveLength, 1)
				So(res.Reasons[0], ShouldContainSubstring, "Insufficient trading history: 89 days")
			})
		})

		Convey("When a partial day is left over", func() {
			w := wallet(89, 50)
			w.AnalysisEndDate++

			Convey("Then trading days round up", func() {
				res := eligibility.Check(w)
				So(res.TradingDays, ShouldEqual, 90)
				So(res.IsEligible, ShouldBeTrue)
			})
		})

		Convey("When the wallet has 49 trades", func() {
			res := eligibility.Check(wallet(120, 49))

			Convey("Then it is disqualified for trade count only", func() {
				So(res.IsEligible, ShouldBeFalse)
				So(res.Reasons, ShouldHaveLength, 1)
				So(res.Reasons[0], ShouldContainSubstring, "Insufficient trades: 49")
			})
		})

		Convey("When a single day swings 500.01%", func() {
			res := eligibility.Check(wallet(120, 80, spikeTrade(500.01)))

			Convey("Then it is disqualified as a risky spike", func() {
				So(res.IsEligible, ShouldBeFalse)
				So(res.HasRiskySpikes, ShouldBeTrue)
				So(res.Reasons, ShouldHaveLength, 1)
				So(res.Reasons[0], ShouldContainSubstring, "Single-day ROI spike of 500.01%")
			})
		})

		Convey("When every rule fails", func() {
			res := eligibility.Check(wallet(10, 5, spikeTrade(-900)))

			Convey("Then all reasons are recorded and the spike is still measured", func() {
				So(res.IsEligible, ShouldBeFalse)
				So(res.Reasons, ShouldHaveLength, 3)
				So(res.MaxSingleDayROI, ShouldAlmostEqual, 900, 1e-9)
				So(res.HasRiskySpikes, ShouldBeTrue)
				So(eligibility.Failures(res), ShouldResemble, []eligibility.Criterion{
					eligibility.CriterionInsufficientHistory,
					eligibility.CriterionInsufficientTrades,
					eligibility.CriterionExtremeROISpike,
				})
			})
		})

		Convey("When the analysis window is inverted", func() {
			w := wallet(0, 60)
			w.AnalysisEndDate = w.AnalysisStartDate - 10

			Convey("Then trading days are zero", func() {
				So(eligibility.Check(w).TradingDays, ShouldEqual, 0)
			})
		})

		Convey("When the wallet passes", func() {
			res := eligibility.Check(wallet(100, 60))

			Convey("Then its failures report eligible", func() {
				So(eligibility.Failures(res), ShouldResemble, []eligibility.Criterion{eligibility.CriterionEligible})
			})
		})
	})
}
