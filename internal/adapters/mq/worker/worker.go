// Package worker runs the per-frame analysis pipeline over queued frame
// jobs. Frames are independent of one another, so any number of workers
// may process them concurrently; result ordering is restored downstream by
// sorting before aggregation.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/adapters/mq/queue"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/pkg/logger"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/pkg/metrics"
)

// Worker shutdown timings.
const (
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = model.FrameJob

// Analyzer runs the per-frame pipeline: fuse, locate ball, derive angles,
// score against the job's tier.
type Analyzer interface {
	AnalyzeFrame(ctx context.Context, job Job) (*model.AnalysisResult, *model.BallPosition, error)
}

// Appender appends a finished result to the owning session.
type Appender interface {
	AppendResult(ctx context.Context, playerID, sessionID string, result model.AnalysisResult) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes frame jobs using the provided interfaces.
type Worker struct {
	queue    Queue
	analyzer Analyzer
	appender Appender
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New creates a worker with configuration options.
func New(queue Queue, analyzer Analyzer, appender Appender, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		analyzer: analyzer,
		appender: appender,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop until ctx is canceled, the queue closes, or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				metrics.RecordWorkerError()
				w.logger.Error(ctx, "frame processing failed",
					logger.String("jobID", job.ID),
					logger.Int("frame", job.FrameIndex),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process runs one frame through the pipeline and appends its result.
func (w *Worker) process(ctx context.Context, job queue.Job) error {
	start := time.Now()
	defer func() {
		metrics.ObserveAnalysisDuration(time.Since(start).Seconds())
	}()

	result, _, err := w.analyzer.AnalyzeFrame(ctx, job)
	if err != nil {
		return fmt.Errorf("analyze frame %d: %w", job.FrameIndex, err)
	}
	if result == nil {
		// No usable skeleton. Nothing to append; not an error.
		w.logger.Debug(ctx, "no usable skeleton for frame",
			logger.Int("frame", job.FrameIndex))
		return nil
	}

	if err := w.appender.AppendResult(ctx, job.PlayerID, job.SessionID, *result); err != nil {
		return fmt.Errorf("append result for frame %d: %w", job.FrameIndex, err)
	}
	return nil
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers []*Worker
	queue   Queue

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates and wires a pool of workerCount workers.
func NewPool(workerCount int, q Queue, analyzer Analyzer, appender Appender) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers:  make([]*Worker, workerCount),
		queue:    q,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = New(q, analyzer, appender, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits briefly for each to finish.
func (p *Pool) Stop() {
	select {
	case <-p.shutdown:
	default:
		close(p.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.shutdown:
		default:
			close(w.shutdown)
		}
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerCount(0)
}

// Shutdown closes the queue, then drains and stops all workers.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Warn(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
