package repotest

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
)

// Contacts is an in-memory repository.ContactRepository.
type Contacts struct {
	mu    sync.Mutex
	items map[string]domain.Contact
}

var _ repository.ContactRepository = (*Contacts)(nil)

// NewContacts returns an empty store.
func NewContacts() *Contacts {
	return &Contacts{items: map[string]domain.Contact{}}
}

func (r *Contacts) Create(_ context.Context, contact *domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := Clock()
	contact.ID = newID()
	contact.CreatedAt, contact.UpdatedAt = now, now
	r.items[contact.ID] = *contact
	return nil
}

func (r *Contacts) UpdateStatus(_ context.Context, id string, status domain.ContactStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Status = status
	existing.UpdatedAt = Clock()
	r.items[id] = existing
	return nil
}

func (r *Contacts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *Contacts) GetByID(_ context.Context, id string) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &existing, nil
}

func (r *Contacts) List(_ context.Context, filter repository.ContactFilter) ([]domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Contact
	for _, contact := range r.items {
		if filter.Status != nil && contact.Status != *filter.Status {
			continue
		}
		result = append(result, contact)
	}
	sortBy(result, func(a, b domain.Contact) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(result, filter.Page), nil
}
