package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyxhub/content-sync/internal/domain"
)

// PgJobQueue is a JobQueue backed by the sync_jobs table.
//
// A claim sets leased_until and a fresh receipt inside a single
// FOR UPDATE SKIP LOCKED transaction, so concurrent claimants (e.g.
// overlapping scheduled runs) never receive the same job while a lease is
// live. An expired lease makes the job visible again without any reaper
// process: visibility is simply "leased_until IS NULL OR leased_until < now".
type PgJobQueue struct {
	pool  *pgxpool.Pool
	lease time.Duration
}

func NewPgJobQueue(pool *pgxpool.Pool, lease time.Duration) *PgJobQueue {
	return &PgJobQueue{pool: pool, lease: lease}
}

func (q *PgJobQueue) Enqueue(ctx context.Context, job domain.SyncJob) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO sync_jobs
			(id, operation, node_id, content_type, title, excluded_node, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		job.ID, job.Operation, job.NodeID, job.ContentType, job.Title,
		job.ExcludedNode, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("enqueue sync job: %w", err)
	}
	return nil
}

func (q *PgJobQueue) Claim(ctx context.Context) (*LeasedJob, error) {
	tx, err := q.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin claim: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	row := tx.QueryRow(ctx, `
		SELECT id, operation, node_id, content_type, title, excluded_node, created_at
		FROM sync_jobs
		WHERE leased_until IS NULL OR leased_until < NOW()
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED`)

	var job domain.SyncJob
	err = row.Scan(&job.ID, &job.Operation, &job.NodeID, &job.ContentType,
		&job.Title, &job.ExcludedNode, &job.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("claim sync job: %w", err)
	}

	receipt := uuid.NewString()
	_, err = tx.Exec(ctx, `
		UPDATE sync_jobs SET leased_until = $1, receipt = $2 WHERE id = $3`,
		time.Now().UTC().Add(q.lease), receipt, job.ID)
	if err != nil {
		return nil, fmt.Errorf("lease sync job: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit claim: %w", err)
	}
	return &LeasedJob{Job: job, Receipt: receipt}, nil
}

func (q *PgJobQueue) Delete(ctx context.Context, leased *LeasedJob) error {
	_, err := q.pool.Exec(ctx,
		`DELETE FROM sync_jobs WHERE id = $1 AND receipt = $2`,
		leased.Job.ID, leased.Receipt)
	if err != nil {
		return fmt.Errorf("delete sync job: %w", err)
	}
	return nil
}

func (q *PgJobQueue) Release(ctx context.Context, leased *LeasedJob) error {
	_, err := q.pool.Exec(ctx, `
		UPDATE sync_jobs SET leased_until = NULL, receipt = NULL
		WHERE id = $1 AND receipt = $2`,
		leased.Job.ID, leased.Receipt)
	if err != nil {
		return fmt.Errorf("release sync job: %w", err)
	}
	return nil
}

func (q *PgJobQueue) Size(ctx context.Context) (int, error) {
	var n int
	err := q.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM sync_jobs
		WHERE leased_until IS NULL OR leased_until < NOW()`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("queue size: %w", err)
	}
	return n, nil
}

func (q *PgJobQueue) Purge(ctx context.Context) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM sync_jobs`)
	if err != nil {
		return fmt.Errorf("purge queue: %w", err)
	}
	return nil
}

// compile-time check that PgJobQueue implements JobQueue
var _ JobQueue = (*PgJobQueue)(nil)
