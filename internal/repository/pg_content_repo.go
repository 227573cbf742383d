package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyxhub/content-sync/internal/domain"
)

type pgContentRepository struct {
	pool *pgxpool.Pool
}

// NewPgContentRepository returns a ContentRepository backed by PostgreSQL.
func NewPgContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &pgContentRepository{pool: pool}
}

func (r *pgContentRepository) GetByID(ctx context.Context, id int64) (*domain.ContentItem, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, content_type, title, body, published, created_at, updated_at
		FROM content_items WHERE id = $1`, id)

	item, err := scanContentItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return item, err
}

func (r *pgContentRepository) ListPublished(ctx context.Context, contentType string, excludeID int64) ([]*domain.ContentItem, error) {
	query := `
		SELECT id, content_type, title, body, published, created_at, updated_at
		FROM content_items
		WHERE content_type = $1 AND published = TRUE`
	args := []any{contentType}

	if excludeID > 0 {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list published items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanContentItem(row pgx.Row) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := row.Scan(&item.ID, &item.ContentType, &item.Title, &item.Body,
		&item.Published, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
