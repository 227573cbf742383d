package queue

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nyxhub/content-sync/internal/domain"
)

// MemoryJobQueue is an in-memory JobQueue used in unit tests. It honors the
// same claim/delete/release visibility rules as the Postgres queue, minus
// lease expiry (tests release or delete explicitly).
type MemoryJobQueue struct {
	mu      sync.Mutex
	pending []domain.SyncJob
	claimed map[string]domain.SyncJob // receipt -> job

	// Optional error overrides, set in tests to simulate failure paths.
	EnqueueErr error
	ClaimErr   error
}

func NewMemoryJobQueue() *MemoryJobQueue {
	return &MemoryJobQueue{claimed: make(map[string]domain.SyncJob)}
}

func (q *MemoryJobQueue) Enqueue(_ context.Context, job domain.SyncJob) error {
	if q.EnqueueErr != nil {
		return q.EnqueueErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, job)
	return nil
}

func (q *MemoryJobQueue) Claim(_ context.Context) (*LeasedJob, error) {
	if q.ClaimErr != nil {
		return nil, q.ClaimErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, nil
	}
	job := q.pending[0]
	q.pending = q.pending[1:]
	receipt := uuid.NewString()
	q.claimed[receipt] = job
	return &LeasedJob{Job: job, Receipt: receipt}, nil
}

func (q *MemoryJobQueue) Delete(_ context.Context, leased *LeasedJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.claimed, leased.Receipt)
	return nil
}

func (q *MemoryJobQueue) Release(_ context.Context, leased *LeasedJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if job, ok := q.claimed[leased.Receipt]; ok {
		delete(q.claimed, leased.Receipt)
		q.pending = append([]domain.SyncJob{job}, q.pending...)
	}
	return nil
}

func (q *MemoryJobQueue) Size(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending), nil
}

func (q *MemoryJobQueue) Purge(_ context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = nil
	q.claimed = make(map[string]domain.SyncJob)
	return nil
}

// compile-time check that MemoryJobQueue implements JobQueue
var _ JobQueue = (*MemoryJobQueue)(nil)
