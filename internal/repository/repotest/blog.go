package repotest

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
)

// Blog is an in-memory repository.BlogRepository.
type Blog struct {
	mu    sync.Mutex
	items map[string]domain.BlogPost
}

var _ repository.BlogRepository = (*Blog)(nil)

// NewBlog returns an empty store.
func NewBlog() *Blog {
	return &Blog{items: map[string]domain.BlogPost{}}
}

func (r *Blog) slugTaken(slug, exceptID string) bool {
	for id, existing := range r.items {
		if existing.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func (r *Blog) Create(_ context.Context, post *domain.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slugTaken(post.Slug, "") {
		return uniqueViolation("blog_posts_slug_key")
	}
	now := Clock()
	post.ID = newID()
	post.CreatedAt, post.UpdatedAt = now, now
	r.items[post.ID] = *post
	return nil
}

func (r *Blog) Update(_ context.Context, post *domain.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[post.ID]; !ok {
		return pgx.ErrNoRows
	}
	if r.slugTaken(post.Slug, post.ID) {
		return uniqueViolation("blog_posts_slug_key")
	}
	post.UpdatedAt = Clock()
	r.items[post.ID] = *post
	return nil
}

func (r *Blog) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *Blog) GetByID(_ context.Context, id string) (*domain.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &existing, nil
}

func (r *Blog) GetBySlug(_ context.Context, slug string) (*domain.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Slug == slug {
			return &existing, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *Blog) List(_ context.Context, filter repository.BlogFilter) ([]domain.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.BlogPost
	for _, post := range r.items {
		if filter.PublishedOnly && !post.Published {
			continue
		}
		if filter.Tag != nil && !containsString(post.Tags, *filter.Tag) {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.Search))
			if !strings.Contains(strings.ToLower(post.Title+" "+post.Excerpt), needle) {
				continue
			}
		}
		result = append(result, post)
	}
	sortBy(result, func(a, b domain.BlogPost) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(result, filter.Page), nil
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
