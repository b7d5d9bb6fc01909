package repotest

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
)

// Cases is an in-memory repository.CaseRepository.
type Cases struct {
	mu    sync.Mutex
	items map[string]domain.LegalCase
}

var _ repository.CaseRepository = (*Cases)(nil)

// NewCases returns an empty store.
func NewCases() *Cases {
	return &Cases{items: map[string]domain.LegalCase{}}
}

func (r *Cases) Create(_ context.Context, c *domain.LegalCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.CaseNumber == c.CaseNumber {
			return uniqueViolation("cases_case_number_key")
		}
	}
	now := Clock()
	c.ID = newID()
	c.CreatedAt, c.UpdatedAt = now, now
	r.items[c.ID] = *c
	return nil
}

func (r *Cases) Update(_ context.Context, c *domain.LegalCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	c.UpdatedAt = Clock()
	r.items[c.ID] = *c
	return nil
}

func (r *Cases) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *Cases) GetByID(_ context.Context, id string) (*domain.LegalCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &existing, nil
}

func (r *Cases) List(_ context.Context, filter repository.CaseFilter) ([]domain.LegalCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.LegalCase
	for _, c := range r.items {
		switch {
		case filter.Status != nil && c.Status != *filter.Status,
			filter.ClientID != nil && c.ClientID != *filter.ClientID,
			filter.AttorneyID != nil && (c.AttorneyID == nil || *c.AttorneyID != *filter.AttorneyID):
			continue
		}
		result = append(result, c)
	}
	sortBy(result, func(a, b domain.LegalCase) bool { return a.OpenedAt.After(b.OpenedAt) })
	return paginate(result, filter.Page), nil
}
