package repository

import (
	"context"

	"github.com/nyxhub/content-sync/internal/domain"
)

// ContentRepository is the read-only boundary to the host content store.
// The sync pipeline never writes content; it only resolves the item that
// triggered a job and aggregates the published set for a content type.
// The pgx implementation is in pg_content_repo.go; tests use the
// hand-written mock in mock_content_repo.go.
type ContentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ContentItem, error)

	// ListPublished returns every published item of the content type,
	// ordered ascending by creation time. When excludeID > 0 that item is
	// omitted, which delete-resync uses to rebuild without the deleted item.
	ListPublished(ctx context.Context, contentType string, excludeID int64) ([]*domain.ContentItem, error)
}
