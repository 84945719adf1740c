// Package metrics provides Prometheus metrics for the shooting-form
// analysis pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline metrics
	framesFused      prometheus.Counter
	framesRejected   prometheus.Counter
	fusionOverrides  prometheus.Counter
	keypointsAbsent  prometheus.Histogram
	ballResolved     *prometheus.CounterVec
	ballUnresolved   prometheus.Counter
	anglesComputed   prometheus.Histogram
	flawsDetected    *prometheus.CounterVec
	overallScore     prometheus.Histogram
	analysisDuration prometheus.Histogram

	// Session metrics
	resultsAppended      prometheus.Counter
	aggregatesBuilt      prometheus.Counter
	duplicateFrames      prometheus.Counter
	trackedPlayers       prometheus.Gauge
	achievementsUnlocked prometheus.Counter

	// Queue and worker metrics
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	queueRejects  prometheus.Counter
	workerCount   prometheus.Gauge
	workerErrors  prometheus.Counter
}

// Global metrics manager instance backed by a custom registry so the
// default Go collectors don't pollute the namespace.
var (
	globalManager  *Manager                  //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Registry returns the registry the global manager records into, for
// exposing via promhttp.
func Registry() *prometheus.Registry {
	return customRegistry
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "shotform",
		subsystem:        "analysis",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.framesFused = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "frames_fused_total",
		Help: "Frames successfully reconciled into a fused skeleton",
	})
	m.framesRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "frames_rejected_total",
		Help: "Frames rejected before fusion (mismatched indices)",
	})
	m.fusionOverrides = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "fusion_overrides_total",
		Help: "Keypoints resolved by highest-confidence override after source disagreement",
	})
	m.keypointsAbsent = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "keypoints_absent_per_frame",
		Help:    "Topology landmarks left absent per fused frame",
		Buckets: []float64{0, 1, 2, 4, 8, 12, 17},
	})
	m.ballResolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "ball_resolved_total",
		Help: "Ball positions resolved, by method",
	}, []string{"method"})
	m.ballUnresolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "ball_unresolved_total",
		Help: "Frames where no ball position could be resolved",
	})
	m.anglesComputed = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "angles_computed_per_frame",
		Help:    "Angles derivable per frame",
		Buckets: []float64{0, 2, 4, 6, 8, 10},
	})
	m.flawsDetected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "flaws_detected_total",
		Help: "Flaws detected, by severity",
	}, []string{"severity"})
	m.overallScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "overall_score",
		Help:    "Distribution of per-frame overall scores",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "frame_analysis_duration_seconds",
		Help:    "Wall time of the per-frame pipeline",
		Buckets: m.histogramBuckets,
	})

	m.resultsAppended = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "results_appended_total",
		Help: "Analysis results appended to sessions",
	})
	m.aggregatesBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "aggregates_built_total",
		Help: "Session aggregates computed on read",
	})
	m.duplicateFrames = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "duplicate_frames_total",
		Help: "Frame jobs dropped as duplicates",
	})
	m.trackedPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "tracked_players",
		Help: "Players with at least one session in the store",
	})
	m.achievementsUnlocked = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "achievements_unlocked_total",
		Help: "Achievements newly unlocked",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Frame jobs currently queued",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Frame-job queue capacity",
	})
	m.queueRejects = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_rejects_total",
		Help: "Frame jobs rejected because the queue was full or closed",
	})
	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Frame-analysis workers running",
	})
	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Worker-level processing errors",
	})
}

// Package-level helpers recording into the global manager.

func RecordFrameFused()     { globalManager.framesFused.Inc() }
func RecordFrameRejected()  { globalManager.framesRejected.Inc() }
func RecordFusionOverride() { globalManager.fusionOverrides.Inc() }
func ObserveKeypointsAbsent(n int) {
	globalManager.keypointsAbsent.Observe(float64(n))
}
func RecordBallResolved(method string) {
	globalManager.ballResolved.WithLabelValues(method).Inc()
}
func RecordBallUnresolved() { globalManager.ballUnresolved.Inc() }
func ObserveAnglesComputed(n int) {
	globalManager.anglesComputed.Observe(float64(n))
}
func RecordFlaw(severity string) {
	globalManager.flawsDetected.WithLabelValues(severity).Inc()
}
func ObserveOverallScore(score float64) {
	globalManager.overallScore.Observe(score)
}
func ObserveAnalysisDuration(seconds float64) {
	globalManager.analysisDuration.Observe(seconds)
}

func RecordResultAppended()      { globalManager.resultsAppended.Inc() }
func RecordAggregateBuilt()      { globalManager.aggregatesBuilt.Inc() }
func RecordDuplicateFrame()      { globalManager.duplicateFrames.Inc() }
func UpdateTrackedPlayers(n int) { globalManager.trackedPlayers.Set(float64(n)) }
func RecordAchievementUnlocked() { globalManager.achievementsUnlocked.Inc() }

func UpdateQueueSize(n int)     { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }
func RecordQueueReject()        { globalManager.queueRejects.Inc() }
func UpdateWorkerCount(n int)   { globalManager.workerCount.Set(float64(n)) }
func RecordWorkerError()        { globalManager.workerErrors.Inc() }
