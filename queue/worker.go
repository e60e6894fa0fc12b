package queue

import (
	"context"
	"time"

	"github.com/skillsenselab/protokoll/logger"
	"github.com/skillsenselab/protokoll/observability"
	"github.com/skillsenselab/protokoll/pipeline"
)

// Runner executes one pipeline job. *pipeline.Driver satisfies it.
type Runner interface {
	Run(ctx context.Context, url string) pipeline.RunResult
}

// WorkerOptions tunes a Worker.
type WorkerOptions struct {
	// PopTimeout bounds each blocking dequeue. Defaults to 5 seconds.
	PopTimeout time.Duration
	// Metrics records job outcomes. Optional.
	Metrics *observability.Metrics
	// Logger is the worker logger.
	Logger *logger.Logger
}

// Worker pops tasks off the queue and runs the pipeline for each one,
// one task at a time. Run it in its own goroutine per desired degree of
// parallelism; tasks for the same source on the same day share a job
// directory, so parallel workers should not be fed duplicate URLs.
type Worker struct {
	queue      *Queue
	runner     Runner
	popTimeout time.Duration
	metrics    *observability.Metrics
	log        *logger.Logger
	failures   int
}

// NewWorker creates a worker over the queue and pipeline runner.
func NewWorker(q *Queue, runner Runner, opts WorkerOptions) *Worker {
	if opts.PopTimeout == 0 {
		opts.PopTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.WithComponent("worker")
	}
	return &Worker{
		queue:      q,
		runner:     runner,
		popTimeout: opts.PopTimeout,
		metrics:    opts.Metrics,
		log:        opts.Logger,
	}
}

// Run consumes tasks until ctx is cancelled. Broker errors back off and
// retry; task failures are recorded on the task and never stop the loop.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopping")
			return ctx.Err()
		default:
			task, err := w.queue.Dequeue(ctx, w.popTimeout)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if backoffErr := w.handleFailure(ctx, err); backoffErr != nil {
					return backoffErr
				}
				continue
			}
			w.failures = 0
			if task == nil {
				continue // pop timeout, idle
			}
			w.process(ctx, task)
		}
	}
}

// process runs one task through the pipeline and records its outcome.
func (w *Worker) process(ctx context.Context, task *Task) {
	log := w.log.WithFields(logger.Fields(
		logger.FieldTaskID, task.ID,
		logger.FieldURL, task.URL,
	))

	started := time.Now().UTC()
	state := &TaskState{
		ID:         task.ID,
		URL:        task.URL,
		Status:     TaskRunning,
		EnqueuedAt: started,
		StartedAt:  &started,
	}
	if prev, err := w.queue.State(ctx, task.ID); err == nil && prev != nil {
		state.EnqueuedAt = prev.EnqueuedAt
	}
	if err := w.queue.SetState(ctx, state); err != nil {
		log.WithError(err).Error("failed to mark task running")
	}

	res := w.runner.Run(ctx, task.URL)

	finished := time.Now().UTC()
	state.FinishedAt = &finished
	switch res.Status {
	case pipeline.StatusSuccess:
		state.Status = TaskSuccess
		state.ProtocolPath = res.ProtocolPath
		log.Info("task succeeded", logger.Fields("protocol_file", res.ProtocolPath))
	default:
		state.Status = TaskFailure
		state.Error = res.Error
		log.Error("task failed", logger.Fields(logger.FieldError, res.Error))
	}
	if err := w.queue.SetState(ctx, state); err != nil {
		log.WithError(err).Error("failed to record task outcome")
	}

	if w.metrics != nil {
		w.metrics.RecordJob(ctx, string(state.Status), finished.Sub(started))
	}
}

// handleFailure backs off after a broker error, capped at 30 seconds.
func (w *Worker) handleFailure(ctx context.Context, err error) error {
	w.failures++
	if w.failures <= 3 {
		w.log.WithError(err).Error("queue read error", logger.Fields("failures", w.failures))
	}

	backoff := time.Duration(w.failures) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(backoff):
		return nil
	}
}
