package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the status label of runs_total.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// defaultBuckets covers in-process scoring of small to very large cohorts.
var defaultBuckets = []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

// Manager owns every Prometheus collector of the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         *prometheus.Registry

	// Scoring runs
	runs                *prometheus.CounterVec
	runDuration         prometheus.Histogram
	walletsScored       prometheus.Counter
	walletsEligible     prometheus.Counter
	walletsDisqualified *prometheus.CounterVec
	tierWallets         *prometheus.GaugeVec
	lastAvgTrustScore   prometheus.Gauge
	lastTopScore        prometheus.Gauge
	lastRunUnix         prometheus.Gauge
	validationIssues    prometheus.Counter

	// Jobs
	jobsSubmitted prometheus.Counter
	jobsRejected  prometheus.Counter
	jobsFailed    prometheus.Counter

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	errorRateByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "trustscore",
		subsystem:        "engine",
		histogramBuckets: defaultBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogram(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(m.counter("runs_total", "Scoring runs by outcome"), []string{"status"})
	m.runDuration = auto.NewHistogram(m.histogram("run_duration_milliseconds", "Wall time of one scoring run in milliseconds"))
	m.walletsScored = auto.NewCounter(m.counter("wallets_scored_total", "Wallets passed through the engine"))
	m.walletsEligible = auto.NewCounter(m.counter("wallets_eligible_total", "Wallets that passed every eligibility rule"))
	m.walletsDisqualified = auto.NewCounterVec(
		m.counter("wallets_disqualified_total", "Failed eligibility rules; a wallet may fail several"),
		[]string{"reason"},
	)
	m.tierWallets = auto.NewGaugeVec(m.gauge("tier_wallets", "Wallets per tier in the last run"), []string{"tier"})
	m.lastAvgTrustScore = auto.NewGauge(m.gauge("last_avg_trust_score", "Average eligible trust score of the last run"))
	m.lastTopScore = auto.NewGauge(m.gauge("last_top_score", "Highest trust score of the last run"))
	m.lastRunUnix = auto.NewGauge(m.gauge("last_run_unix", "Unix time the last run finished"))
	m.validationIssues = auto.NewCounter(m.counter("validation_issues_total", "Issues reported by the score audit"))

	m.jobsSubmitted = auto.NewCounter(m.counter("jobs_submitted_total", "Cohort jobs accepted for scoring"))
	m.jobsRejected = auto.NewCounter(m.counter("jobs_rejected_total", "Cohort jobs rejected by backpressure"))
	m.jobsFailed = auto.NewCounter(m.counter("jobs_failed_total", "Cohort jobs whose result could not be delivered"))

	m.queueSize = auto.NewGauge(m.gauge("queue_size", "Jobs waiting in the queue"))
	m.queueCapacity = auto.NewGauge(m.gauge("queue_capacity", "Maximum queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gauge("queue_utilization_ratio", "Queue size divided by capacity"))
	m.queueEnqueueRate = auto.NewCounter(m.counter("queue_enqueue_total", "Jobs enqueued"))
	m.queueDequeueRate = auto.NewCounter(m.counter("queue_dequeue_total", "Jobs dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counter("queue_enqueue_errors_total", "Enqueue attempts that failed"))

	m.workerCount = auto.NewGauge(m.gauge("worker_count", "Workers in the pool"))
	m.workerActiveCount = auto.NewGauge(m.gauge("worker_active_count", "Workers currently scoring a job"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogram("worker_processing_latency_milliseconds", "Time a worker spends on one job"))
	m.workerErrorRate = auto.NewCounter(m.counter("worker_errors_total", "Jobs a worker failed to complete"))

	m.errorRateByComponent = auto.NewCounterVec(
		m.counter("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
}

// Registry returns the registry the manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// RecordRun records a successful run: its duration, wallet counts and summary scores.
func RecordRun(duration time.Duration, total, eligible int, avgTrustScore, topScore float64) {
	m := globalManager
	m.runs.WithLabelValues(StatusOK).Inc()
	m.runDuration.Observe(float64(duration.Microseconds()) / 1000)
	m.walletsScored.Add(float64(total))
	m.walletsEligible.Add(float64(eligible))
	m.lastAvgTrustScore.Set(avgTrustScore)
	m.lastTopScore.Set(topScore)
	m.lastRunUnix.Set(float64(time.Now().Unix()))
}

// RecordRunError increments the failed runs counter.
func RecordRunError() {
	globalManager.runs.WithLabelValues(StatusError).Inc()
}

// RecordDisqualified adds n wallets failing the given eligibility rule.
func RecordDisqualified(reason string, n int) {
	globalManager.walletsDisqualified.WithLabelValues(reason).Add(float64(n))
}

// UpdateTierWallets sets the number of wallets in tier for the last run.
func UpdateTierWallets(tier string, n int) {
	globalManager.tierWallets.WithLabelValues(tier).Set(float64(n))
}

// RecordValidationIssues adds n audit issues.
func RecordValidationIssues(n int) {
	globalManager.validationIssues.Add(float64(n))
}

// RecordJobSubmitted increments the accepted jobs counter.
func RecordJobSubmitted() { globalManager.jobsSubmitted.Inc() }

// RecordJobRejected increments the backpressure rejections counter.
func RecordJobRejected() { globalManager.jobsRejected.Inc() }

// RecordJobFailed increments the failed jobs counter.
func RecordJobFailed() { globalManager.jobsFailed.Inc() }

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the pool size.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrorRate.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every registered metric to path in the text exposition
// format, for pickup by a node exporter textfile collector. The file is
// replaced atomically.
func WriteTextfile(path string) error {
	if path == "" {
		return ErrNoTextfilePath
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
