// Package app provides the core analysis service: it wires the fusion
// engine, ball locator, angle calculator, scorer, and aggregator behind a
// queue-fed worker pool and a per-player session store.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	eventqueue "github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/adapters/mq/queue"
	workerpool "github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/adapters/mq/worker"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/adapters/repository"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/config"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/angles"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/ball"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/dedupe"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/fusion"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/scoring"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/session"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/pkg/logger"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/pkg/metrics"
)

// ErrUnknownTier means a frame job referenced a tier absent from the
// loaded benchmark tables.
var ErrUnknownTier = errors.New("unknown tier")

// Service implements the analysis pipeline and session access.
type Service struct {
	mu sync.RWMutex

	// Pipeline stages, all pure and safe for concurrent use.
	fuser      *fusion.Engine
	locator    *ball.Locator
	calculator *angles.Calculator
	scorer     *scoring.Scorer
	aggregator *session.Aggregator

	// Infrastructure.
	store      repository.Store
	deduper    dedupe.Deduper
	queue      eventqueue.Queue
	workerPool *workerpool.Pool

	// Configuration.
	cfg   *config.Config
	tiers map[string]model.Tier

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig supplies the loaded process configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
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

// WithStore overrides the session store (used by tests).
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates tier tables and brings up the pipeline components. Tier
// validation failures are fatal: scoring must never run against broken
// ranges.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	tiers, err := s.cfg.ValidateTiers()
	if err != nil {
		return fmt.Errorf("tier validation: %w", err)
	}
	s.tiers = tiers

	s.fuser = fusion.New(
		fusion.WithMinConfidence(s.cfg.Fusion.MinConfidence),
		fusion.WithDisagreementFraction(s.cfg.Fusion.DisagreementFraction),
	)
	s.locator = ball.New(
		ball.WithMinConfidence(s.cfg.Ball.MinConfidence),
		ball.WithSearchRadius(s.cfg.Ball.SearchRadius),
		ball.WithAnchorFloor(s.cfg.Angles.ConfidenceFloor),
	)
	s.calculator = angles.New(
		angles.WithConfidenceFloor(s.cfg.Angles.ConfidenceFloor),
	)
	s.scorer = scoring.New(
		scoring.WithScoreFloor(s.cfg.Scoring.ScoreFloor),
		scoring.WithSeverityFactor(s.cfg.Scoring.SeverityFactor),
		scoring.WithLowBandFraction(s.cfg.Scoring.LowBandFraction),
	)
	s.aggregator = session.New(
		session.WithTrendThreshold(s.cfg.Session.TrendThreshold),
	)

	if s.store == nil {
		s.store = repository.NewMemStore(
			repository.WithShardCount(s.cfg.ShardCount),
		)
	}
	s.deduper = dedupe.New(
		dedupe.WithMaxSize(s.cfg.DedupeSize),
	)
	s.queue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.cfg.QueueSize),
	)

	workerCount := s.cfg.WorkerCount
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	s.workerPool = workerpool.NewPool(workerCount, s.queue, s, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "analysis service started",
		logger.Int("workers", workerCount),
		logger.Int("queueSize", s.cfg.QueueSize),
		logger.Int("tiers", len(s.tiers)),
	)
	return nil
}

// Stop gracefully shuts the service down, draining queued frames.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}
	s.started = false
	s.logger.Info(ctx, "analysis service stopped")
}

// AnalyzeFrame runs the synchronous per-frame pipeline: fuse observations,
// resolve the ball, derive angles, score against the job's tier.
//
// A frame with no usable skeleton yields (nil, ball, nil): absence of data
// is not an error, and nothing is fabricated in its place.
func (s *Service) AnalyzeFrame(ctx context.Context, job model.FrameJob) (*model.AnalysisResult, *model.BallPosition, error) {
	tier, ok := s.tiers[job.Tier]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTier, job.Tier)
	}

	skeleton, err := s.fuser.Fuse(job.Observations)
	if err != nil {
		metrics.RecordFrameRejected()
		return nil, nil, err
	}
	metrics.RecordFrameFused()
	metrics.ObserveKeypointsAbsent(len(model.Topology()) - len(skeleton.Keypoints))
	for _, kp := range skeleton.Keypoints {
		if kp.Method == model.MethodOverride {
			metrics.RecordFusionOverride()
		}
	}

	ballPos := s.locator.Locate(job.Ball, skeleton, job.ProxyCandidates)
	if ballPos != nil {
		metrics.RecordBallResolved(string(ballPos.Method))
	} else {
		metrics.RecordBallUnresolved()
	}

	if !skeleton.Usable() {
		return nil, ballPos, nil
	}

	angleSet := s.calculator.Compute(skeleton)
	metrics.ObserveAnglesComputed(len(angleSet.Angles))

	result := s.scorer.Score(angleSet, tier)
	result.FrameIndex = job.FrameIndex
	result.CapturedAt = job.CapturedAt
	result.SkeletonConfidence = skeleton.OverallConfidence

	for _, f := range result.Flaws {
		metrics.RecordFlaw(string(f.Severity))
	}
	metrics.ObserveOverallScore(result.OverallScore)

	return &result, ballPos, nil
}

// Submit enqueues a frame job for asynchronous processing. Duplicate job
// IDs are dropped (reported as accepted) so a re-submitted upload cannot
// double-append into an append-only session. Returns false on
// backpressure; the job may be retried.
func (s *Service) Submit(ctx context.Context, job model.FrameJob) bool {
	if job.ID == "" {
		job.ID = fmt.Sprintf("%s/%s/%d", job.PlayerID, job.SessionID, job.FrameIndex)
	}
	if s.deduper.SeenAndRecord(ctx, job.ID) {
		metrics.RecordDuplicateFrame()
		s.logger.Debug(ctx, "duplicate frame job dropped",
			logger.String("jobID", job.ID))
		return true
	}
	if !s.queue.Enqueue(ctx, job) {
		s.deduper.Unrecord(ctx, job.ID)
		return false
	}
	metrics.UpdateQueueSize(s.queue.Len(ctx))
	return true
}

// StartSession records a new upload for the player.
func (s *Service) StartSession(ctx context.Context, playerID string) (string, error) {
	id, err := s.store.StartSession(ctx, playerID)
	if err != nil {
		return "", err
	}
	metrics.UpdateTrackedPlayers(s.store.PlayerCount(ctx))
	return id, nil
}

// Aggregate folds the player's stored results into a SessionAggregate,
// recomputed on read, and persists any newly earned achievements so they
// can never be revoked by a later decline.
func (s *Service) Aggregate(ctx context.Context, playerID string) (model.SessionAggregate, error) {
	results, err := s.store.Results(ctx, playerID)
	if err != nil {
		return model.SessionAggregate{}, err
	}
	sessions, err := s.store.SessionCount(ctx, playerID)
	if err != nil {
		return model.SessionAggregate{}, err
	}
	unlocked, err := s.store.Achievements(ctx, playerID)
	if err != nil {
		return model.SessionAggregate{}, err
	}

	// Results come back sorted from the store, but parallel workers make
	// the ordering precondition worth keeping explicit.
	session.SortResults(results)

	agg, err := s.aggregator.Aggregate(results, sessions, unlocked)
	if err != nil {
		return model.SessionAggregate{}, err
	}
	if _, err := s.store.UnlockAchievements(ctx, playerID, agg.Achievements); err != nil {
		return model.SessionAggregate{}, err
	}
	metrics.RecordAggregateBuilt()
	return agg, nil
}

// QueueLen reports the current queue depth, for observability loops.
func (s *Service) QueueLen(ctx context.Context) int {
	if s.queue == nil {
		return 0
	}
	return s.queue.Len(ctx)
}
