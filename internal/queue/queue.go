package queue

import (
	"context"

	"github.com/nyxhub/content-sync/internal/domain"
)

// LeasedJob is a claimed queue entry. The receipt identifies the claim so
// that Delete and Release act only on the lease this consumer holds.
type LeasedJob struct {
	Job     domain.SyncJob
	Receipt string
}

// JobQueue is the durable at-least-once queue of pending sync jobs.
//
// Claimed jobs are invisible to other claimants until deleted, released, or
// their lease expires. Any durable backing store honoring these semantics is
// a valid substitute; the Postgres implementation is in pg_job_queue.go and
// tests use the in-memory one in memory_job_queue.go.
type JobQueue interface {
	// Enqueue adds a job. Storage failures are returned, never swallowed.
	Enqueue(ctx context.Context, job domain.SyncJob) error

	// Claim leases the oldest visible job. Returns (nil, nil) when the
	// queue is empty.
	Claim(ctx context.Context) (*LeasedJob, error)

	// Delete permanently removes a claimed job.
	Delete(ctx context.Context, leased *LeasedJob) error

	// Release returns a claimed job to the queue, immediately visible.
	Release(ctx context.Context, leased *LeasedJob) error

	// Size reports the number of jobs not currently claimed.
	Size(ctx context.Context) (int, error)

	// Purge removes every job, claimed or not.
	Purge(ctx context.Context) error
}
