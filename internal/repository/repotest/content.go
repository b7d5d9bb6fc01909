package repotest

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
)

// Content is an in-memory repository.ContentRepository.
type Content struct {
	mu    sync.Mutex
	items map[string]domain.ContentItem
}

var _ repository.ContentRepository = (*Content)(nil)

// NewContent returns an empty store.
func NewContent() *Content {
	return &Content{items: map[string]domain.ContentItem{}}
}

func (r *Content) Create(_ context.Context, item *domain.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Kind == item.Kind && existing.Slug == item.Slug {
			return uniqueViolation("content_items_kind_slug_key")
		}
	}
	now := Clock()
	item.ID = newID()
	item.CreatedAt, item.UpdatedAt = now, now
	r.items[item.ID] = *item
	return nil
}

func (r *Content) Update(_ context.Context, item *domain.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[item.ID]
	if !ok || existing.Kind != item.Kind {
		return pgx.ErrNoRows
	}
	item.UpdatedAt = Clock()
	r.items[item.ID] = *item
	return nil
}

func (r *Content) Delete(_ context.Context, kind domain.ContentKind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok || existing.Kind != kind {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *Content) GetByID(_ context.Context, kind domain.ContentKind, id string) (*domain.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok || existing.Kind != kind {
		return nil, pgx.ErrNoRows
	}
	return &existing, nil
}

func (r *Content) List(_ context.Context, filter repository.ContentFilter) ([]domain.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ContentItem
	for _, item := range r.items {
		if item.Kind != filter.Kind || (filter.PublishedOnly && !item.Published) {
			continue
		}
		result = append(result, item)
	}
	sortBy(result, func(a, b domain.ContentItem) bool {
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return paginate(result, filter.Page), nil
}
