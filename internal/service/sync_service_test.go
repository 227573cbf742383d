package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/nyxhub/content-sync/internal/domain"
	"github.com/nyxhub/content-sync/internal/queue"
	"github.com/nyxhub/content-sync/internal/service"
)

func newService() (*service.SyncService, *queue.MemoryJobQueue) {
	q := queue.NewMemoryJobQueue()
	return service.NewSyncService(q, zap.NewNop()), q
}

var validPayload = domain.JobPayload{
	Operation:   "sync",
	NodeID:      42,
	ContentType: "article",
	Title:       "New Post",
	Timestamp:   1764500000,
}

func TestEnqueue_ValidPayload(t *testing.T) {
	svc, q := newService()

	job, err := svc.Enqueue(context.Background(), validPayload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID == "" {
		t.Fatal("expected a generated job ID")
	}
	if job.Operation != domain.OperationSync || job.NodeID != 42 {
		t.Fatalf("unexpected job %+v", job)
	}
	if job.CreatedAt.Unix() != validPayload.Timestamp {
		t.Fatalf("expected payload timestamp, got %v", job.CreatedAt)
	}

	size, _ := q.Size(context.Background())
	if size != 1 {
		t.Fatalf("expected 1 queued job, got %d", size)
	}
}

func TestEnqueue_MissingRequiredFields(t *testing.T) {
	svc, q := newService()

	tests := []struct {
		name    string
		mutate  func(*domain.JobPayload)
		wantErr error
	}{
		{"operation", func(p *domain.JobPayload) { p.Operation = "" }, domain.ErrMissingOperation},
		{"node_id", func(p *domain.JobPayload) { p.NodeID = 0 }, domain.ErrMissingNodeID},
		{"content_type", func(p *domain.JobPayload) { p.ContentType = "" }, domain.ErrMissingContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload
			tt.mutate(&payload)
			if _, err := svc.Enqueue(context.Background(), payload); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	size, _ := q.Size(context.Background())
	if size != 0 {
		t.Fatalf("invalid payloads must not be enqueued, got %d", size)
	}
}

func TestEnqueue_UnknownOperationRejected(t *testing.T) {
	svc, _ := newService()

	payload := validPayload
	payload.Operation = "reindex"
	if _, err := svc.Enqueue(context.Background(), payload); !errors.Is(err, domain.ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestEnqueue_StorageFailureSurfaces(t *testing.T) {
	svc, q := newService()
	q.EnqueueErr = errors.New("storage unavailable")

	if _, err := svc.Enqueue(context.Background(), validPayload); err == nil {
		t.Fatal("enqueue failure must be reported to the caller")
	}
}

func TestClearQueue(t *testing.T) {
	svc, q := newService()
	if _, err := svc.Enqueue(context.Background(), validPayload); err != nil {
		t.Fatal(err)
	}

	if err := svc.ClearQueue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	size, _ := q.Size(context.Background())
	if size != 0 {
		t.Fatalf("expected empty queue after clear, got %d", size)
	}
}
