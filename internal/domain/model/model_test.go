package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/trustscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWalletMetrics_TradingDays(t *testing.T) {
	Convey("Given an analysis window", t, func() {
		w := model.WalletMetrics{AnalysisStartDate: 1_000_000}

		Convey("When it spans whole days", func() {
			w.AnalysisEndDate = w.AnalysisStartDate + 90*model.SecondsPerDay

			Convey("Then the day count is exact", func() {
				So(w.TradingDays(), ShouldEqual, 90)
			})
		})

		Convey("When it ends one second into a day", func() {
			w.AnalysisEndDate = w.AnalysisStartDate + 89*model.SecondsPerDay + 1

			Convey("Then the partial day counts", func() {
				So(w.TradingDays(), ShouldEqual, 90)
			})
		})

		Convey("When it is empty or inverted", func() {
			w.AnalysisEndDate = w.AnalysisStartDate - 10

			Convey("Then there are no trading days", func() {
				So(w.TradingDays(), ShouldEqual, 0)
			})
		})
	})
}

func TestTrustScore_JSON(t *testing.T) {
	Convey("Given a trust score record", t, func() {
		s := model.TrustScore{WalletAddress: "0xabc", TrustScore: 42.5}

		Convey("When it has not been ranked", func() {
			raw, err := json.Marshal(s)

			Convey("Then rank and tier encode as null", func() {
				So(err, ShouldBeNil)
				So(s.Ranked(), ShouldBeFalse)
				So(string(raw), ShouldContainSubstring, `"rank":null`)
				So(string(raw), ShouldContainSubstring, `"tier":null`)
			})
		})

		Convey("When it has been ranked", func() {
			rank, tier := 3, model.TierC
			s.Rank, s.Tier = &rank, &tier
			raw, err := json.Marshal(s)

			Convey("Then rank and tier are present", func() {
				So(err, ShouldBeNil)
				So(s.Ranked(), ShouldBeTrue)
				So(string(raw), ShouldContainSubstring, `"rank":3`)
				So(string(raw), ShouldContainSubstring, `"tier":"C"`)
			})
		})
	})
}
