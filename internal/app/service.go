// Package service wires the scoring engine to metrics, logging, auditing and
// the batch worker pool.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/trustscore/internal/adapters/codec"
	jobqueue "github.com/okian/trustscore/internal/adapters/mq/queue"
	workerpool "github.com/okian/trustscore/internal/adapters/mq/worker"
	"github.com/okian/trustscore/internal/domain/dedupe"
	"github.com/okian/trustscore/internal/domain/eligibility"
	"github.com/okian/trustscore/internal/domain/leaderboard"
	"github.com/okian/trustscore/internal/domain/model"
	"github.com/okian/trustscore/internal/domain/scoring"
	"github.com/okian/trustscore/pkg/logger"
	"github.com/okian/trustscore/pkg/metrics"
)

// ReportSink receives the report of every batch job.
type ReportSink func(ctx context.Context, r Report) error

// Service runs scoring jobs synchronously or through a worker pool.
type Service struct {
	mu sync.RWMutex

	queue   *jobqueue.InMemoryQueue
	pool    *workerpool.Pool
	deduper dedupe.Deduper

	// Configuration
	workerCount         int
	queueSize           int
	dedupeSize          int
	audit               bool
	maxLeaderboardLimit int
	now                 func() time.Time

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of batch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of queued batch jobs.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many submitted run IDs are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithAudit runs the score validator on every report.
func WithAudit(enabled bool) Option {
	return func(s *Service) { s.audit = enabled }
}

// WithMaxLeaderboardLimit caps leaderboard queries.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLeaderboardLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:         runtime.NumCPU(),
		queueSize:           1024,
		dedupeSize:          dedupe.DefaultMaxSize,
		maxLeaderboardLimit: 1000,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// ScoreJob validates the job's cohort and runs the engine over it. It checks
// ctx before starting; a run in progress is not interrupted.
func (s *Service) ScoreJob(ctx context.Context, job model.Job) (model.Result, error) {
	if err := ctx.Err(); err != nil {
		metrics.RecordRunError()
		return model.Result{}, err
	}
	if err := codec.Validate(job.Cohort); err != nil {
		metrics.RecordRunError()
		metrics.RecordErrorByComponent("service", "invalid_cohort")
		return model.Result{}, err
	}

	start := time.Now()
	res := scoring.Run(job.Cohort)
	took := time.Since(start)

	s.observe(res, took)
	s.logger.Info(ctx, "scored cohort",
		logger.String("run_id", job.ID),
		logger.String("source", job.Source),
		logger.Int("wallets", res.CohortStats.TotalWallets),
		logger.Int("eligible", res.CohortStats.EligibleWallets),
		logger.Float64("avg_trust_score", res.CohortStats.AvgTrustScore),
		logger.Duration("took", took))
	return res, nil
}

func (s *Service) observe(res model.Result, took time.Duration) {
	stats := res.CohortStats
	metrics.RecordRun(took, stats.TotalWallets, stats.EligibleWallets, stats.AvgTrustScore, stats.TopScore)

	failures := make(map[eligibility.Criterion]int)
	for _, sc := range res.Scores {
		if sc.Eligibility.IsEligible {
			continue
		}
		for _, c := range eligibility.Failures(sc.Eligibility) {
			failures[c]++
		}
	}
	for c, n := range failures {
		metrics.RecordDisqualified(string(c), n)
	}
	for tier, n := range scoring.TierDistribution(res.Scores) {
		metrics.UpdateTierWallets(tier.String(), n)
	}
}

// Report wraps res into a Report for job, auditing it when enabled.
func (s *Service) Report(ctx context.Context, job model.Job, res model.Result) Report {
	r := Report{
		RunID:       job.ID,
		Source:      job.Source,
		GeneratedAt: s.now().UTC(),
		Algorithm:   scoring.Parameters(),
		Scores:      res.Scores,
		CohortStats: res.CohortStats,
	}
	if s.audit {
		v := scoring.Validate(res.Scores)
		if !v.IsValid {
			metrics.RecordValidationIssues(len(v.Issues))
			for _, issue := range v.Issues {
				s.logger.Warn(ctx, "score audit issue", logger.String("run_id", job.ID), logger.String("issue", issue))
			}
		}
		r.Audit = &v
	}
	return r
}

// Score runs one job synchronously and returns its report. An empty job ID is
// replaced with a random one.
func (s *Service) Score(ctx context.Context, job model.Job) (Report, error) {
	job = withID(job)
	res, err := s.ScoreJob(ctx, job)
	if err != nil {
		return Report{}, fmt.Errorf("run %s: %w", job.ID, err)
	}
	return s.Report(ctx, job, res), nil
}

// Leaderboard scores job and derives its leaderboard for q.
func (s *Service) Leaderboard(ctx context.Context, job model.Job, q leaderboard.Query) (leaderboard.Leaderboard, error) {
	if err := q.Prepare(s.maxLeaderboardLimit); err != nil {
		return leaderboard.Leaderboard{}, err
	}
	job = withID(job)
	res, err := s.ScoreJob(ctx, job)
	if err != nil {
		return leaderboard.Leaderboard{}, fmt.Errorf("run %s: %w", job.ID, err)
	}
	return leaderboard.Build(res, job.Cohort, q), nil
}

func withID(job model.Job) model.Job {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	return job
}

// Start creates the job queue and worker pool. Every finished job's report
// goes to sink.
func (s *Service) Start(ctx context.Context, sink ReportSink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.queue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	deliver := workerpool.SinkFunc(func(ctx context.Context, job model.Job, res model.Result) error {
		return sink(ctx, s.Report(ctx, job, res))
	})
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s, deliver)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "batch scoring started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Bool("audit", s.audit))
	return nil
}

// Submit queues a job for the worker pool without blocking. A run ID that was
// already accepted is rejected with ErrDuplicateRun.
func (s *Service) Submit(ctx context.Context, job model.Job) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	job = withID(job)
	if s.deduper.SeenAndRecord(ctx, job.ID) {
		metrics.RecordJobRejected()
		return fmt.Errorf("%w: %s", ErrDuplicateRun, job.ID)
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		// Let the caller retry the same run once the queue has room.
		s.deduper.Unrecord(ctx, job.ID)
		metrics.RecordJobRejected()
		return fmt.Errorf("%w: %s: %w", ErrBackpressure, job.ID, err)
	}
	metrics.RecordJobSubmitted()
	s.logger.Debug(ctx, "job queued", logger.String("run_id", job.ID), logger.Int("wallets", len(job.Cohort)))
	return nil
}

// Drain stops accepting jobs and waits until every queued job is handled.
func (s *Service) Drain(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	err := s.pool.Wait(ctx)
	s.started = false
	return err
}

// Stop shuts the pool down, dropping queued jobs.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping batch scoring...")
	_ = s.pool.Shutdown(ctx)
	s.started = false
	s.logger.Info(ctx, "batch scoring stopped")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"audit":       s.audit,
	}
	if s.pool != nil {
		ps := s.pool.Stats()
		stats["processed"] = ps.Processed
		stats["failed"] = ps.Failed
		stats["active"] = ps.Active
	}
	if s.queue != nil {
		stats["queueLength"] = s.queue.Len(context.Background())
	}
	return stats
}
