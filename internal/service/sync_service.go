package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nyxhub/content-sync/internal/domain"
	"github.com/nyxhub/content-sync/internal/queue"
)

// SyncService turns validated change events into queued sync jobs. It sits
// between the intake surfaces (HTTP API, CLI) and the queue.
type SyncService struct {
	q      queue.JobQueue
	logger *zap.Logger
}

func NewSyncService(q queue.JobQueue, logger *zap.Logger) *SyncService {
	return &SyncService{q: q, logger: logger}
}

// Enqueue validates the payload and adds a job to the queue. Payloads
// missing a required field are rejected before anything is stored.
func (s *SyncService) Enqueue(ctx context.Context, payload domain.JobPayload) (*domain.SyncJob, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	op := domain.Operation(payload.Operation)
	if !op.IsValid() {
		return nil, domain.ErrInvalidOperation
	}

	createdAt := time.Now().UTC()
	if payload.Timestamp > 0 {
		createdAt = time.Unix(payload.Timestamp, 0).UTC()
	}

	job := domain.SyncJob{
		ID:           uuid.NewString(),
		Operation:    op,
		NodeID:       payload.NodeID,
		ContentType:  payload.ContentType,
		Title:        payload.Title,
		ExcludedNode: payload.ExcludedNode,
		CreatedAt:    createdAt,
	}

	if err := s.q.Enqueue(ctx, job); err != nil {
		s.logger.Error("failed to enqueue sync job",
			zap.String("operation", payload.Operation),
			zap.Int64("node_id", payload.NodeID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("job enqueued",
		zap.String("job_id", job.ID),
		zap.String("operation", string(job.Operation)),
		zap.Int64("node_id", job.NodeID),
		zap.String("title", job.Title))
	return &job, nil
}

// QueueSize reports the number of jobs currently visible in the queue.
func (s *SyncService) QueueSize(ctx context.Context) (int, error) {
	return s.q.Size(ctx)
}

// ClearQueue purges every pending job.
func (s *SyncService) ClearQueue(ctx context.Context) error {
	if err := s.q.Purge(ctx); err != nil {
		s.logger.Error("failed to clear queue", zap.Error(err))
		return err
	}
	s.logger.Info("sync queue cleared")
	return nil
}
