package scoring_test

import (
	"testing"

	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValidate(t *testing.T) {
	Convey("Given the scores of a valid run", t, func() {
		res := scoring.Run([]model.WalletMetrics{
			eligibleWallet("a", 10, 1, 3),
			eligibleWallet("b", 50, 2, 9),
			thinWallet("c", 5, 0.2, 1),
		})

		Convey("Then validation passes", func() {
			v := scoring.Validate(res.Scores)
			So(v.IsValid, ShouldBeTrue)
			So(v.Issues, ShouldNotBeNil)
			So(v.Issues, ShouldBeEmpty)
		})

		Convey("When a record is tampered with", func() {
			tampered := append([]model.TrustScore(nil), res.Scores...)
			tampered[0].PerformanceScore += 0.5
			tampered[1].TrustScore = 140

			v := scoring.Validate(tampered)

			Convey("Then each violation is reported", func() {
				So(v.IsValid, ShouldBeFalse)
				So(v.Issues, ShouldHaveLength, 2)
			})

			Convey("And the input is left as it was", func() {
				So(tampered[1].TrustScore, ShouldEqual, 140)
			})
		})

		Convey("When an ineligible record carries a score", func() {
			bad := []model.TrustScore{{
				WalletAddress: "x",
				TrustScore:    12,
				Eligibility:   model.EligibilityResult{IsEligible: false},
			}}

			Convey("Then it is flagged", func() {
				v := scoring.Validate(bad)
				So(v.IsValid, ShouldBeFalse)
				So(v.Issues[0], ShouldContainSubstring, "ineligible")
			})
		})

		Convey("When a normalized metric is out of range", func() {
			bad := []model.TrustScore{{
				WalletAddress:     "y",
				Eligibility:       model.EligibilityResult{IsEligible: true},
				NormalizedMetrics: model.NormalizedMetrics{NormalizedSharpe: 1.5},
				PerformanceScore:  0.6,
			}}

			Convey("Then it is flagged", func() {
				v := scoring.Validate(bad)
				So(v.IsValid, ShouldBeFalse)
				So(v.Issues[0], ShouldContainSubstring, "normalizedSharpe")
			})
		})
	})
}

func TestParameters(t *testing.T) {
	Convey("Given the algorithm parameters", t, func() {
		p := scoring.Parameters()

		Convey("Then they describe the fixed formula and gates", func() {
			So(p.Weights.Sharpe, ShouldEqual, 0.40)
			So(p.Weights.ROI, ShouldEqual, 0.25)
			So(p.Weights.DrawdownPenalty, ShouldEqual, 0.35)
			So(p.Eligibility.MinTradingDays, ShouldEqual, 90)
			So(p.Eligibility.MinTrades, ShouldEqual, 50)
			So(p.Eligibility.MaxSingleDayROISpike, ShouldEqual, 500.0)
			So(p.Tiers, ShouldResemble, scoring.TierCutoffs{S: 80, A: 65, B: 50, C: 30})
		})
	})
}
