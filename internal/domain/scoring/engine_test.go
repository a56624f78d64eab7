package scoring_test

import (
	"testing"

	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRun_ThreeWalletScenario(t *testing.T) {
	Convey("Given a high-ROI wallet, a thin wallet and a low-drawdown wallet", t, func() {
		a := eligibleWallet("A", 90, 1.8, 10)
		b := thinWallet("B", 300, 4, 1)
		c := eligibleWallet("C", 20, 1.8, 2)
		c.TotalTrades = 200
		c.CompletedTrades = []model.CompletedTrade{
			{ExitTimestamp: start + 5*day, RealizedPnlUSD: 950, EntryValueUSD: 1000},
		}

		res := scoring.Run([]model.WalletMetrics{a, b, c})

		Convey("Then the thin wallet is ineligible with a zero score", func() {
			sb := scoreOf(res, "B")
			So(sb.Eligibility.IsEligible, ShouldBeFalse)
			So(sb.TrustScore, ShouldEqual, 0)
			So(sb.PerformanceScore, ShouldEqual, 0)
			So(sb.RiskPenalty, ShouldEqual, 0)
			So(sb.NormalizedMetrics, ShouldResemble, model.NormalizedMetrics{})
			So(*sb.Tier, ShouldEqual, model.TierD)
			So(*sb.Rank, ShouldEqual, 3)
		})

		Convey("And the spike within threshold keeps C eligible", func() {
			sc := scoreOf(res, "C")
			So(sc.Eligibility.IsEligible, ShouldBeTrue)
			So(sc.Eligibility.MaxSingleDayROI, ShouldAlmostEqual, 95, 1e-9)
		})

		Convey("And the drawdown penalty lets C outrank A", func() {
			sa, sc := scoreOf(res, "A"), scoreOf(res, "C")
			So(sa.TrustScore, ShouldEqual, 10.0)
			So(sc.TrustScore, ShouldEqual, 20.0)
			So(*sc.Rank, ShouldEqual, 1)
			So(*sa.Rank, ShouldEqual, 2)
			So(sa.NormalizedMetrics.NormalizedMaxDrawdown, ShouldEqual, 1)
			So(sc.NormalizedMetrics.NormalizedMaxDrawdown, ShouldEqual, 0)
			So(sa.RiskPenalty, ShouldAlmostEqual, 0.35, 1e-12)
		})

		Convey("And the cohort stats only consider eligible wallets", func() {
			So(res.CohortStats, ShouldResemble, model.CohortStats{
				TotalWallets:        3,
				EligibleWallets:     2,
				DisqualifiedWallets: 1,
				AvgTrustScore:       15,
				TopScore:            20,
				MinROI:              20,
				MaxROI:              90,
				MinSharpe:           1.8,
				MaxSharpe:           1.8,
				MinDrawdown:         2,
				MaxDrawdown:         10,
			})
		})

		Convey("And the audit finds nothing", func() {
			v := scoring.Validate(res.Scores)
			So(v.IsValid, ShouldBeTrue)
			So(v.Issues, ShouldBeEmpty)
		})
	})
}

func TestRun_EdgeCases(t *testing.T) {
	Convey("Given the scoring pipeline", t, func() {
		Convey("When the cohort is empty", func() {
			res := scoring.Run(nil)

			Convey("Then there are no scores and every stat is zero", func() {
				So(res.Scores, ShouldBeEmpty)
				So(res.CohortStats, ShouldResemble, model.CohortStats{})
			})
		})

		Convey("When no wallet is eligible", func() {
			cohort := []model.WalletMetrics{
				thinWallet("x", 50, 2, 5),
				thinWallet("y", 80, 3, 1),
				thinWallet("z", 10, 1, 9),
			}
			res := scoring.Run(cohort)

			Convey("Then every wallet scores zero in tier D, ranked by input order", func() {
				So(res.Scores, ShouldHaveLength, 3)
				for i, s := range res.Scores {
					So(s.WalletAddress, ShouldEqual, cohort[i].WalletAddress)
					So(s.TrustScore, ShouldEqual, 0)
					So(*s.Rank, ShouldEqual, i+1)
					So(*s.Tier, ShouldEqual, model.TierD)
				}
			})

			Convey("And the stats report only counts", func() {
				So(res.CohortStats, ShouldResemble, model.CohortStats{
					TotalWallets:        3,
					DisqualifiedWallets: 3,
				})
			})
		})

		Convey("When a single wallet is eligible", func() {
			res := scoring.Run([]model.WalletMetrics{eligibleWallet("solo", 40, 2, 12)})

			Convey("Then every metric normalizes to the midpoint", func() {
				s := res.Scores[0]
				So(s.NormalizedMetrics, ShouldResemble, model.NormalizedMetrics{
					NormalizedROI: 0.5, NormalizedSharpe: 0.5, NormalizedMaxDrawdown: 0.5,
				})
				So(s.TrustScore, ShouldEqual, 15.0)
				So(*s.Tier, ShouldEqual, model.TierD)
			})
		})

		Convey("When addresses are duplicated", func() {
			w := eligibleWallet("dup", 10, 1, 3)
			res := scoring.Run([]model.WalletMetrics{w, w})

			Convey("Then both records are kept and ranked independently", func() {
				So(res.Scores, ShouldHaveLength, 2)
				So(*res.Scores[0].Rank, ShouldEqual, 1)
				So(*res.Scores[1].Rank, ShouldEqual, 2)
				So(res.CohortStats.TotalWallets, ShouldEqual, 2)
			})
		})
	})
}

func TestRun_Properties(t *testing.T) {
	cohort := []model.WalletMetrics{
		eligibleWallet("w1", 15, 0.4, 22),
		eligibleWallet("w2", 120, 2.9, 35),
		thinWallet("w3", 500, 5, 1),
		eligibleWallet("w4", -8, -0.3, 4),
		eligibleWallet("w5", 60, 1.7, 11),
		eligibleWallet("w6", 60, 1.7, 11),
	}

	Convey("Given a mixed cohort", t, func() {
		res := scoring.Run(cohort)

		Convey("Then running it again yields an identical result", func() {
			So(scoring.Run(cohort), ShouldResemble, res)
		})

		Convey("Then every score and normalized metric is in range", func() {
			for _, s := range res.Scores {
				So(s.TrustScore, ShouldBeBetweenOrEqual, 0, 100)
				So(s.NormalizedMetrics.NormalizedROI, ShouldBeBetweenOrEqual, 0, 1)
				So(s.NormalizedMetrics.NormalizedSharpe, ShouldBeBetweenOrEqual, 0, 1)
				So(s.NormalizedMetrics.NormalizedMaxDrawdown, ShouldBeBetweenOrEqual, 0, 1)
			}
		})

		Convey("Then ranks follow descending scores with ties in input order", func() {
			for i, s := range res.Scores {
				So(*s.Rank, ShouldEqual, i+1)
				if i > 0 {
					So(res.Scores[i-1].TrustScore, ShouldBeGreaterThanOrEqualTo, s.TrustScore)
				}
			}
			r5, r6 := *scoreOf(res, "w5").Rank, *scoreOf(res, "w6").Rank
			So(r6, ShouldEqual, r5+1)
		})

		Convey("Then the tier always matches the score", func() {
			for _, s := range res.Scores {
				So(*s.Tier, ShouldEqual, scoring.TierFor(s.TrustScore))
			}
		})

		Convey("Then every score points back at its input wallet", func() {
			for _, s := range res.Scores {
				So(cohort[s.CohortIndex].WalletAddress, ShouldEqual, s.WalletAddress)
			}
		})

		Convey("Then the input is left untouched", func() {
			So(cohort[0].WalletAddress, ShouldEqual, "w1")
			So(cohort[2].TotalTrades, ShouldEqual, 20)
		})
	})

	Convey("Given a wallet strictly inside the cohort's extremes", t, func() {
		base := scoring.Run(cohort)
		before := scoreOf(base, "w5").TrustScore

		Convey("When its ROI rises without crossing the maximum", func() {
			bumped := append([]model.WalletMetrics(nil), cohort...)
			bumped[4].NetROI = 100
			after := scoreOf(scoring.Run(bumped), "w5").TrustScore

			Convey("Then its score does not decrease", func() {
				So(after, ShouldBeGreaterThanOrEqualTo, before)
			})
		})

		Convey("When its Sharpe ratio rises without crossing the maximum", func() {
			bumped := append([]model.WalletMetrics(nil), cohort...)
			bumped[4].SharpeRatio = 2.5
			after := scoreOf(scoring.Run(bumped), "w5").TrustScore

			Convey("Then its score does not decrease", func() {
				So(after, ShouldBeGreaterThanOrEqualTo, before)
			})
		})

		Convey("When its drawdown rises without crossing the maximum", func() {
			bumped := append([]model.WalletMetrics(nil), cohort...)
			bumped[4].MaxDrawdown = 30
			after := scoreOf(scoring.Run(bumped), "w5").TrustScore

			Convey("Then its score does not increase", func() {
				So(after, ShouldBeLessThanOrEqualTo, before)
			})
		})
	})
}

func TestRun_ExtremeMagnitudes(t *testing.T) {
	Convey("Given eligible wallets at opposite ends of the float64 range", t, func() {
		cohort := []model.WalletMetrics{
			eligibleWallet("top", 10, 1e308, 5),
			eligibleWallet("bottom", 10, -1e308, 5),
			eligibleWallet("middle", 10, 0, 5),
		}

		Convey("When the cohort is scored", func() {
			var res model.Result
			So(func() { res = scoring.Run(cohort) }, ShouldNotPanic)

			Convey("Then the metric spans [0,1] and every score is finite", func() {
				So(scoreOf(res, "top").NormalizedMetrics.NormalizedSharpe, ShouldEqual, 1)
				So(scoreOf(res, "bottom").NormalizedMetrics.NormalizedSharpe, ShouldEqual, 0)
				So(scoreOf(res, "middle").NormalizedMetrics.NormalizedSharpe, ShouldEqual, 0.5)
				So(scoreOf(res, "top").TrustScore, ShouldEqual, 35)
				So(scoreOf(res, "bottom").TrustScore, ShouldEqual, 0)
				So(scoring.Validate(res.Scores).IsValid, ShouldBeTrue)
			})
		})
	})
}
