package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// IntervalWorker runs one batch per tick while the process is in serve mode.
// Batches never overlap: a tick that fires while a batch is still running is
// simply the next loop iteration, and the queue's lease semantics guard
// against a second process draining the same jobs.
type IntervalWorker struct {
	batch    *BatchWorker
	interval time.Duration
	limit    int
	logger   *zap.Logger
}

func NewIntervalWorker(batch *BatchWorker, interval time.Duration, limit int, logger *zap.Logger) *IntervalWorker {
	return &IntervalWorker{batch: batch, interval: interval, limit: limit, logger: logger}
}

// Run ticks every interval and drains the queue. Stops cleanly when ctx is
// cancelled.
func (iw *IntervalWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(iw.interval)
	defer ticker.Stop()

	iw.logger.Info("queue drain worker started", zap.Duration("interval", iw.interval))

	for {
		select {
		case <-ctx.Done():
			iw.logger.Info("queue drain worker stopping")
			return
		case <-ticker.C:
			summary, err := iw.batch.ProcessBatch(ctx, iw.limit)
			if err != nil {
				iw.logger.Error("batch run failed", zap.Error(err))
				continue
			}
			if summary.Processed > 0 || summary.Suspended {
				iw.logger.Info("batch run finished",
					zap.Int("processed", summary.Processed),
					zap.Int("errors", summary.Errors),
					zap.Int("remaining", summary.Remaining),
					zap.Bool("suspended", summary.Suspended))
			}
		}
	}
}
