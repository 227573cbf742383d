package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nyxhub/content-sync/internal/config"
	"github.com/nyxhub/content-sync/internal/domain"
	"github.com/nyxhub/content-sync/internal/queue"
	"github.com/nyxhub/content-sync/internal/repository"
)

// Syncer is the orchestration boundary the worker dispatches into.
// Satisfied by sync.Orchestrator; stubbed in tests.
type Syncer interface {
	SyncContent(ctx context.Context, item *domain.ContentItem) (domain.Result, error)
	DeleteContent(ctx context.Context, item *domain.ContentItem) (domain.Result, error)
}

// errRetryLater marks a sync failure that should be redelivered under the
// retry failure policy. The job keeps its lease instead of being deleted.
var errRetryLater = errors.New("retry after lease expiry")

// Summary is the batch report returned by ProcessBatch.
type Summary struct {
	Processed int  `json:"processed"`
	Errors    int  `json:"errors"`
	Remaining int  `json:"remaining"`
	Suspended bool `json:"suspended"`
}

// MetricHooks carries the metric callback functions injected by main.
// All are optional (nil = no-op).
type MetricHooks struct {
	OnProcessed func(op domain.Operation)
	OnFailed    func()
	OnSuspended func()
	OnBatchDone func(remaining int)
	OnJobTimed  func(seconds float64)
}

// BatchWorker drains the sync queue one job at a time. Exactly one batch is
// expected to run per invocation; exclusion across overlapping invocations
// comes from the queue's claim/lease semantics, not from any in-process lock.
//
// Per-job outcomes:
//   - success (including "nothing to do"): job deleted, batch continues
//   - suspend signal: job released, batch halts immediately
//   - any other error: job deleted permanently, error counted, batch continues
//
// The asymmetry is deliberate: backpressure pauses everything and preserves
// the job, while unexpected failures are not worth a retry storm. Sync
// attempts that merely reported failure (upload declined, store rejected)
// follow the configured failure policy instead of the hard-error path.
type BatchWorker struct {
	q             queue.JobQueue
	content       repository.ContentRepository
	orch          Syncer
	failurePolicy string
	logger        *zap.Logger
	hooks         MetricHooks
}

func NewBatchWorker(
	q queue.JobQueue,
	content repository.ContentRepository,
	orch Syncer,
	failurePolicy string,
	logger *zap.Logger,
	hooks MetricHooks,
) *BatchWorker {
	if hooks.OnProcessed == nil {
		hooks.OnProcessed = func(domain.Operation) {}
	}
	if hooks.OnFailed == nil {
		hooks.OnFailed = func() {}
	}
	if hooks.OnSuspended == nil {
		hooks.OnSuspended = func() {}
	}
	if hooks.OnBatchDone == nil {
		hooks.OnBatchDone = func(int) {}
	}
	if hooks.OnJobTimed == nil {
		hooks.OnJobTimed = func(float64) {}
	}
	return &BatchWorker{
		q:             q,
		content:       content,
		orch:          orch,
		failurePolicy: failurePolicy,
		logger:        logger,
		hooks:         hooks,
	}
}

// ProcessBatch claims and processes up to limit jobs (0 = until the queue is
// empty), then reports the batch summary.
func (w *BatchWorker) ProcessBatch(ctx context.Context, limit int) (Summary, error) {
	var s Summary

	for limit == 0 || s.Processed < limit {
		leased, err := w.q.Claim(ctx)
		if err != nil {
			return s, err
		}
		if leased == nil {
			break
		}

		s.Processed++
		start := time.Now()
		err = w.processJob(ctx, leased.Job)
		w.hooks.OnJobTimed(time.Since(start).Seconds())

		switch {
		case errors.Is(err, errRetryLater):
			// Keep the claim: the job stays invisible until its lease
			// expires, which doubles as the retry delay. Releasing it here
			// would make it claimable again within this same batch.
			s.Errors++
			w.logger.Warn("sync failed, leaving job leased for redelivery",
				zap.String("job_id", leased.Job.ID), zap.Error(err))
			w.hooks.OnFailed()

		case errors.Is(err, domain.ErrSuspended):
			if relErr := w.q.Release(ctx, leased); relErr != nil {
				w.logger.Error("failed to release job after suspend",
					zap.String("job_id", leased.Job.ID), zap.Error(relErr))
			}
			w.logger.Warn("batch suspended", zap.String("job_id", leased.Job.ID), zap.Error(err))
			w.hooks.OnSuspended()
			s.Suspended = true
			return w.withRemaining(ctx, s), nil

		case err != nil:
			// Dropped, not retried. The failure is only visible in logs
			// and counters from here on.
			s.Errors++
			w.logger.Error("job processing failed, dropping job",
				zap.String("job_id", leased.Job.ID), zap.Error(err))
			w.hooks.OnFailed()
			if delErr := w.q.Delete(ctx, leased); delErr != nil {
				w.logger.Error("failed to delete dropped job",
					zap.String("job_id", leased.Job.ID), zap.Error(delErr))
			}

		default:
			w.hooks.OnProcessed(leased.Job.Operation)
			if delErr := w.q.Delete(ctx, leased); delErr != nil {
				w.logger.Error("failed to delete completed job",
					zap.String("job_id", leased.Job.ID), zap.Error(delErr))
			}
		}
	}

	return w.withRemaining(ctx, s), nil
}

// processJob resolves the job's item and dispatches to the orchestrator.
// A nil return means the job is consumed; the worker does not distinguish
// "nothing to do" from "done".
func (w *BatchWorker) processJob(ctx context.Context, job domain.SyncJob) error {
	log := w.logger.With(
		zap.String("job_id", job.ID),
		zap.Int64("node_id", job.NodeID),
		zap.String("content_type", job.ContentType),
	)

	item, err := w.content.GetByID(ctx, job.NodeID)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn("item no longer exists, consuming job")
		return nil
	}
	if err != nil {
		return err
	}

	var result domain.Result
	switch job.Operation {
	case domain.OperationSync:
		log.Info("processing sync job")
		result, err = w.orch.SyncContent(ctx, item)
	case domain.OperationDelete:
		log.Info("processing delete job")
		result, err = w.orch.DeleteContent(ctx, item)
	default:
		log.Error("unknown operation, consuming job",
			zap.String("operation", string(job.Operation)))
		return nil
	}
	if err != nil {
		return err
	}

	if result.Failed() {
		log.Warn("sync attempt reported failure",
			zap.String("reason", string(result.Reason)))
		if w.failurePolicy == config.FailurePolicyRetry {
			return fmt.Errorf("%w: %s", errRetryLater, result.Reason)
		}
		// drop policy: consume the job; the failure survives only in the
		// batch counters and logs.
		return nil
	}
	if result.Skipped() {
		log.Info("sync skipped", zap.String("reason", string(result.Reason)))
	}
	return nil
}

func (w *BatchWorker) withRemaining(ctx context.Context, s Summary) Summary {
	remaining, err := w.q.Size(ctx)
	if err != nil {
		w.logger.Error("failed to read queue size", zap.Error(err))
		return s
	}
	s.Remaining = remaining
	w.hooks.OnBatchDone(remaining)
	return s
}
