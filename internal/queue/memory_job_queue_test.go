package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/nyxhub/content-sync/internal/domain"
	"github.com/nyxhub/content-sync/internal/queue"
)

func job(id string) domain.SyncJob {
	return domain.SyncJob{
		ID:          id,
		Operation:   domain.OperationSync,
		NodeID:      1,
		ContentType: "article",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestMemoryQueue_ClaimHidesJob(t *testing.T) {
	q := queue.NewMemoryJobQueue()
	ctx := context.Background()

	if err := q.Enqueue(ctx, job("a")); err != nil {
		t.Fatal(err)
	}

	leased, err := q.Claim(ctx)
	if err != nil || leased == nil {
		t.Fatalf("expected a leased job, got (%v, %v)", leased, err)
	}

	// A claimed job is invisible to further claims and to Size.
	second, err := q.Claim(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if second != nil {
		t.Fatal("claimed job must not be claimable again")
	}
	size, _ := q.Size(ctx)
	if size != 0 {
		t.Fatalf("claimed job must not count as visible, got %d", size)
	}
}

func TestMemoryQueue_DeleteRemovesJob(t *testing.T) {
	q := queue.NewMemoryJobQueue()
	ctx := context.Background()

	_ = q.Enqueue(ctx, job("a"))
	leased, _ := q.Claim(ctx)
	if err := q.Delete(ctx, leased); err != nil {
		t.Fatal(err)
	}

	if again, _ := q.Claim(ctx); again != nil {
		t.Fatal("deleted job must not reappear")
	}
}

func TestMemoryQueue_ReleaseMakesJobVisibleAgain(t *testing.T) {
	q := queue.NewMemoryJobQueue()
	ctx := context.Background()

	_ = q.Enqueue(ctx, job("a"))
	_ = q.Enqueue(ctx, job("b"))

	leased, _ := q.Claim(ctx)
	if err := q.Release(ctx, leased); err != nil {
		t.Fatal(err)
	}

	// The released job returns to the front, preserving claim order.
	again, _ := q.Claim(ctx)
	if again == nil || again.Job.ID != "a" {
		t.Fatalf("expected released job first, got %+v", again)
	}
}

func TestMemoryQueue_ClaimOrderIsFIFO(t *testing.T) {
	q := queue.NewMemoryJobQueue()
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		_ = q.Enqueue(ctx, job(id))
	}

	for _, want := range []string{"1", "2", "3"} {
		leased, _ := q.Claim(ctx)
		if leased == nil || leased.Job.ID != want {
			t.Fatalf("expected job %s, got %+v", want, leased)
		}
	}
}

func TestMemoryQueue_EmptyClaimReturnsNil(t *testing.T) {
	q := queue.NewMemoryJobQueue()
	leased, err := q.Claim(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if leased != nil {
		t.Fatalf("expected nil on empty queue, got %+v", leased)
	}
}

func TestMemoryQueue_PurgeClearsEverything(t *testing.T) {
	q := queue.NewMemoryJobQueue()
	ctx := context.Background()

	_ = q.Enqueue(ctx, job("a"))
	_ = q.Enqueue(ctx, job("b"))
	_, _ = q.Claim(ctx)

	if err := q.Purge(ctx); err != nil {
		t.Fatal(err)
	}
	size, _ := q.Size(ctx)
	if size != 0 {
		t.Fatalf("expected empty queue, got %d", size)
	}
}
