package repotest

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
)

// Clients is an in-memory repository.ClientRepository.
type Clients struct {
	mu    sync.Mutex
	items map[string]domain.Client
}

var _ repository.ClientRepository = (*Clients)(nil)

// NewClients returns an empty store.
func NewClients() *Clients {
	return &Clients{items: map[string]domain.Client{}}
}

func (r *Clients) Create(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := Clock()
	client.ID = newID()
	client.Email = strings.ToLower(client.Email)
	client.CreatedAt, client.UpdatedAt = now, now
	r.items[client.ID] = *client
	return nil
}

func (r *Clients) Update(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[client.ID]; !ok {
		return pgx.ErrNoRows
	}
	client.Email = strings.ToLower(client.Email)
	client.UpdatedAt = Clock()
	r.items[client.ID] = *client
	return nil
}

func (r *Clients) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *Clients) GetByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &existing, nil
}

func (r *Clients) List(_ context.Context, filter repository.ClientFilter) ([]domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Client
	for _, client := range r.items {
		if filter.Status != nil && client.Status != *filter.Status {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.Search))
			haystack := strings.ToLower(client.FullName() + " " + client.Email + " " + client.Company)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		result = append(result, client)
	}
	sortBy(result, func(a, b domain.Client) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(result, filter.Page), nil
}
