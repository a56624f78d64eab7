package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/trustscore/internal/adapters/codec"
	service "github.com/okian/trustscore/internal/app"
	"github.com/okian/trustscore/internal/domain/leaderboard"
	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const day = int64(model.SecondsPerDay)

func wallet(addr string, roi, sharpe, drawdown float64, trades int) model.WalletMetrics {
	return model.WalletMetrics{
		WalletAddress:     addr,
		NetROI:            roi,
		SharpeRatio:       sharpe,
		MaxDrawdown:       drawdown,
		TotalTrades:       trades,
		AnalysisStartDate: 1_700_000_000,
		AnalysisEndDate:   1_700_000_000 + 120*day,
	}
}

func cohort() []model.WalletMetrics {
	return []model.WalletMetrics{
		wallet("A", 90, 1.8, 10, 100),
		wallet("B", 300, 4, 1, 20),
		wallet("C", 20, 1.8, 2, 200),
	}
}

func TestService_Score(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given a service with auditing enabled", t, func() {
		svc := service.New(service.WithAudit(true), service.WithClock(func() time.Time { return fixed }))
		ctx := context.Background()

		Convey("When a cohort is scored", func() {
			r, err := svc.Score(ctx, model.Job{ID: "run-1", Source: "cohort.json", Cohort: cohort()})

			Convey("Then the report wraps the engine result", func() {
				So(err, ShouldBeNil)
				So(r.RunID, ShouldEqual, "run-1")
				So(r.Source, ShouldEqual, "cohort.json")
				So(r.GeneratedAt, ShouldEqual, fixed)
				So(r.Scores, ShouldHaveLength, 3)
				So(r.Scores[0].WalletAddress, ShouldEqual, "C")
				So(r.Scores[0].TrustScore, ShouldEqual, 20.0)
				So(r.CohortStats.EligibleWallets, ShouldEqual, 2)
				So(r.Algorithm.Weights.Sharpe, ShouldEqual, 0.40)
			})

			Convey("Then the audit is attached and clean", func() {
				So(r.Audit, ShouldNotBeNil)
				So(r.Audit.IsValid, ShouldBeTrue)
			})

			Convey("Then Result returns the engine output", func() {
				res := r.Result()
				So(res.Scores, ShouldResemble, r.Scores)
				So(res.CohortStats, ShouldResemble, r.CohortStats)
			})
		})

		Convey("When the job has no id", func() {
			r, err := svc.Score(ctx, model.Job{Cohort: cohort()})

			Convey("Then one is generated", func() {
				So(err, ShouldBeNil)
				So(r.RunID, ShouldNotBeBlank)
			})
		})

		Convey("When the cohort is invalid", func() {
			bad := cohort()
			bad[1].WalletAddress = ""
			_, err := svc.Score(ctx, model.Job{ID: "bad", Cohort: bad})

			Convey("Then the validation error surfaces", func() {
				So(errors.Is(err, codec.ErrInvalidCohort), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Score(cctx, model.Job{Cohort: cohort()})

			Convey("Then the run does not start", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service without auditing", t, func() {
		svc := service.New()
		r, err := svc.Score(context.Background(), model.Job{Cohort: cohort()})

		Convey("Then no audit is attached", func() {
			So(err, ShouldBeNil)
			So(r.Audit, ShouldBeNil)
		})
	})
}

func TestService_Leaderboard(t *testing.T) {
	Convey("Given a service with a small leaderboard cap", t, func() {
		svc := service.New(service.WithMaxLeaderboardLimit(5))
		ctx := context.Background()

		Convey("When a leaderboard is requested", func() {
			lb, err := svc.Leaderboard(ctx, model.Job{Cohort: cohort()}, leaderboard.Query{Limit: 5})

			Convey("Then only eligible wallets are listed", func() {
				So(err, ShouldBeNil)
				So(lb.Entries, ShouldHaveLength, 2)
				So(lb.Entries[0].WalletAddress, ShouldEqual, "C")
				So(lb.Eligibility.InsufficientTrades, ShouldEqual, 1)
			})
		})

		Convey("When the limit exceeds the cap", func() {
			_, err := svc.Leaderboard(ctx, model.Job{Cohort: cohort()}, leaderboard.Query{Limit: 50})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, leaderboard.ErrLimitExceeded), ShouldBeTrue)
			})
		})
	})
}

func TestService_Batch(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var mu sync.Mutex
		reports := make(map[string]service.Report)
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(2), service.WithAudit(true))
		So(svc.Start(ctx, func(_ context.Context, r service.Report) error {
			mu.Lock()
			defer mu.Unlock()
			reports[r.RunID] = r
			return nil
		}), ShouldBeNil)
		defer svc.Stop()

		Convey("When jobs are submitted and drained", func() {
			So(svc.Submit(ctx, model.Job{ID: "a", Cohort: cohort()}), ShouldBeNil)
			So(svc.Submit(ctx, model.Job{ID: "b", Cohort: cohort()[:1]}), ShouldBeNil)
			So(svc.Drain(ctx), ShouldBeNil)

			Convey("Then a report arrives per job", func() {
				mu.Lock()
				defer mu.Unlock()
				So(reports, ShouldHaveLength, 2)
				So(reports["a"].Scores, ShouldHaveLength, 3)
				So(reports["b"].Scores[0].TrustScore, ShouldEqual, 15.0)
				So(reports["a"].Audit.IsValid, ShouldBeTrue)
			})

			Convey("Then the stats show the processed jobs", func() {
				stats := svc.GetStats()
				So(stats["processed"], ShouldEqual, 2)
				So(stats["failed"], ShouldEqual, 0)
				So(stats["started"], ShouldEqual, false)
			})

			Convey("Then further submissions are refused", func() {
				So(errors.Is(svc.Submit(ctx, model.Job{Cohort: cohort()}), service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When it is stopped", func() {
			svc.Stop()

			Convey("Then it is marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("Then submitting and draining fail", func() {
			So(errors.Is(svc.Submit(context.Background(), model.Job{}), service.ErrNotStarted), ShouldBeTrue)
			So(errors.Is(svc.Drain(context.Background()), service.ErrNotStarted), ShouldBeTrue)
		})
	})
}

func TestService_Backpressure(t *testing.T) {
	Convey("Given a started service whose workers are blocked", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		release := make(chan struct{})
		svc := service.New(service.WithWorkerCount(1), service.WithQueueSize(1))
		So(svc.Start(ctx, func(context.Context, service.Report) error {
			<-release
			return nil
		}), ShouldBeNil)

		Convey("When more jobs are submitted than fit", func() {
			var rejected error
			for i := 0; i < 10 && rejected == nil; i++ {
				rejected = svc.Submit(ctx, model.Job{Cohort: cohort()})
			}
			close(release)

			Convey("Then the overflow is rejected with backpressure", func() {
				So(errors.Is(rejected, service.ErrBackpressure), ShouldBeTrue)
				So(svc.Drain(ctx), ShouldBeNil)
			})
		})
	})
}

func TestService_DuplicateRun(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(1), service.WithDedupeSize(8))
		So(svc.Start(ctx, func(context.Context, service.Report) error { return nil }), ShouldBeNil)

		Convey("When the same run ID is submitted twice", func() {
			job := model.Job{ID: "run-dup", Cohort: cohort()}
			first := svc.Submit(ctx, job)
			second := svc.Submit(ctx, job)

			Convey("Then only the first is accepted", func() {
				So(first, ShouldBeNil)
				So(errors.Is(second, service.ErrDuplicateRun), ShouldBeTrue)
				So(svc.Drain(ctx), ShouldBeNil)
			})
		})
	})
}
