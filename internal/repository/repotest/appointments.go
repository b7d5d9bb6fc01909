package repotest

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
)

// Appointments is an in-memory repository.AppointmentRepository. The staff
// day lock is a single process-wide mutex.
type Appointments struct {
	mu    sync.Mutex
	lock  sync.Mutex
	items map[string]domain.Appointment
}

var _ repository.AppointmentRepository = (*Appointments)(nil)

// NewAppointments returns an empty store.
func NewAppointments() *Appointments {
	return &Appointments{items: map[string]domain.Appointment{}}
}

// Seed stores appt as-is, assigning an id when missing.
func (r *Appointments) Seed(appt domain.Appointment) domain.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if appt.ID == "" {
		appt.ID = newID()
	}
	appt.Date = domain.DateOnly(appt.Date)
	r.items[appt.ID] = appt
	return appt
}

func (r *Appointments) Create(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := Clock()
	appt.ID = newID()
	appt.Date = domain.DateOnly(appt.Date)
	appt.CreatedAt, appt.UpdatedAt = now, now
	r.items[appt.ID] = *appt
	return nil
}

func (r *Appointments) Update(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[appt.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	appt.Date = domain.DateOnly(appt.Date)
	appt.CreatedAt = existing.CreatedAt
	appt.UpdatedAt = Clock()
	r.items[appt.ID] = *appt
	return nil
}

func (r *Appointments) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
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

func (r *Appointments) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *Appointments) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &existing, nil
}

func (r *Appointments) FindForStaffOnDate(_ context.Context, staffID string, date time.Time, excludeStatuses []domain.AppointmentStatus) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := domain.DateOnly(date)
	var result []domain.Appointment
	for _, appt := range r.items {
		if appt.StaffID != staffID || !appt.Date.Equal(day) || statusIn(appt.Status, excludeStatuses) {
			continue
		}
		result = append(result, appt)
	}
	sortBy(result, func(a, b domain.Appointment) bool { return a.StartTime < b.StartTime })
	return result, nil
}

func (r *Appointments) List(_ context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Appointment
	for _, appt := range r.items {
		switch {
		case filter.StaffID != nil && appt.StaffID != *filter.StaffID,
			filter.ClientID != nil && appt.ClientID != *filter.ClientID,
			filter.Date != nil && !appt.Date.Equal(domain.DateOnly(*filter.Date)),
			filter.From != nil && appt.Date.Before(domain.DateOnly(*filter.From)),
			filter.StartsAfter != nil && !startsAfter(appt, *filter.StartsAfter),
			len(filter.Statuses) > 0 && !statusIn(appt.Status, filter.Statuses):
			continue
		}
		result = append(result, appt)
	}
	sortBy(result, func(a, b domain.Appointment) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.StartTime < b.StartTime
	})
	return paginate(result, filter.Page), nil
}

func (r *Appointments) WithStaffDayLock(_ context.Context, _ string, _ time.Time, fn func(repository.AppointmentRepository) error) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return fn(r)
}

func startsAfter(appt domain.Appointment, t time.Time) bool {
	day := domain.DateOnly(t)
	if !appt.Date.Equal(day) {
		return appt.Date.After(day)
	}
	return appt.StartTime > domain.TimeOfDayAt(t)
}

func statusIn(status domain.AppointmentStatus, set []domain.AppointmentStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
