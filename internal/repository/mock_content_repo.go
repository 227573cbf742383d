package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/nyxhub/content-sync/internal/domain"
)

// MockContentRepository is a hand-written, in-memory implementation of
// ContentRepository used in unit tests. No mock-generation library needed.
type MockContentRepository struct {
	mu    sync.RWMutex
	items map[int64]*domain.ContentItem

	// Optional error overrides, set in tests to simulate failure paths.
	GetByIDErr       error
	ListPublishedErr error
}

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{items: make(map[int64]*domain.ContentItem)}
}

// Add seeds an item into the mock store.
func (m *MockContentRepository) Add(item *domain.ContentItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *item
	m.items[item.ID] = &clone
}

func (m *MockContentRepository) GetByID(_ context.Context, id int64) (*domain.ContentItem, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (m *MockContentRepository) ListPublished(_ context.Context, contentType string, excludeID int64) ([]*domain.ContentItem, error) {
	if m.ListPublishedErr != nil {
		return nil, m.ListPublishedErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []*domain.ContentItem
	for _, item := range m.items {
		if item.ContentType != contentType || !item.Published {
			continue
		}
		if excludeID > 0 && item.ID == excludeID {
			continue
		}
		clone := *item
		items = append(items, &clone)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// compile-time check that MockContentRepository implements ContentRepository
var _ ContentRepository = (*MockContentRepository)(nil)
