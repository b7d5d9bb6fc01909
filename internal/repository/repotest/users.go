package repotest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
)

// Users is an in-memory repository.UserRepository.
type Users struct {
	mu    sync.Mutex
	items map[string]domain.User
}

var _ repository.UserRepository = (*Users)(nil)

// NewUsers returns an empty store.
func NewUsers() *Users {
	return &Users{items: map[string]domain.User{}}
}

func (r *Users) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Email = strings.ToLower(user.Email)
	for _, existing := range r.items {
		if existing.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
	}
	now := Clock()
	user.ID = newID()
	user.CreatedAt, user.UpdatedAt = now, now
	r.items[user.ID] = *user
	return nil
}

func (r *Users) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Email = strings.ToLower(user.Email)
	user.PasswordHash = existing.PasswordHash
	user.PasswordChangedAt = existing.PasswordChangedAt
	user.UpdatedAt = Clock()
	r.items[user.ID] = *user
	return nil
}

func (r *Users) UpdatePassword(_ context.Context, id, hash string, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.PasswordHash = hash
	existing.PasswordChangedAt = &changedAt
	existing.UpdatedAt = Clock()
	r.items[id] = existing
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &existing, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(email)
	for _, existing := range r.items {
		if existing.Email == email {
			return &existing, nil
		}
	}
	return nil, pgx.ErrNoRows
}
