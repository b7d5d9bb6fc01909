package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/events"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/repository/repotest"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

type appointmentFixture struct {
	svc        *AppointmentService
	store      *repotest.Appointments
	dispatcher *recordingDispatcher
	staff      *domain.User
	client     *domain.Client
	day        time.Time
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	users := repotest.NewUsers()
	clients := repotest.NewClients()
	store := repotest.NewAppointments()
	dispatcher := &recordingDispatcher{}

	staff := seedUser(t, users, "attorney@example.com", domain.RoleAttorney, "password123")
	client := &domain.Client{FirstName: "Ada", LastName: "Client", Status: domain.ClientActive}
	require.NoError(t, clients.Create(context.Background(), client))

	svc := NewAppointmentService(AppointmentDependencies{
		AppointmentRepo: store,
		ClientRepo:      clients,
		UserRepo:        users,
		Dispatcher:      dispatcher,
	})
	return &appointmentFixture{
		svc:        svc,
		store:      store,
		dispatcher: dispatcher,
		staff:      staff,
		client:     client,
		day:        time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *appointmentFixture) input(start, end string) AppointmentInput {
	return AppointmentInput{
		Title:     "Consultation",
		ClientID:  f.client.ID,
		StaffID:   f.staff.ID,
		Date:      f.day,
		StartTime: tod(start),
		EndTime:   tod(end),
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.ToDomainError(err).Code, err.Error())
}

func TestAppointmentService_CreateRejectsOverlap(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.staff.ID, f.input("09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentScheduled, first.Status)

	_, err = f.svc.Create(ctx, f.staff.ID, f.input("09:30", "10:30"))
	assertCode(t, err, apperrors.CodeSchedulingConflict)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, err = f.svc.Create(ctx, f.staff.ID, f.input("10:00", "11:00"))
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{events.EventAppointmentBooked, events.EventAppointmentBooked}, f.dispatcher.types())
}

func TestAppointmentService_CreateValidation(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "", f.input("10:00", "09:00"))
	assertCode(t, err, apperrors.CodeValidation)

	_, err = f.svc.Create(ctx, "", f.input("10:00", "10:00"))
	assertCode(t, err, apperrors.CodeValidation)

	in := f.input("09:00", "10:00")
	in.ClientID = "00000000-0000-0000-0000-000000000000"
	_, err = f.svc.Create(ctx, "", in)
	assertCode(t, err, apperrors.CodeNotFound)

	in = f.input("09:00", "10:00")
	in.StaffID = "00000000-0000-0000-0000-000000000000"
	_, err = f.svc.Create(ctx, "", in)
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestAppointmentService_UpdateSameSlotDoesNotConflictWithItself(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Create(ctx, "", f.input("09:00", "10:00"))
	require.NoError(t, err)

	start, end := tod("09:00"), tod("10:00")
	title := "Consultation (moved room)"
	updated, err := f.svc.Update(ctx, "", appt.ID, AppointmentPatch{Title: &title, StartTime: &start, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	later := tod("09:15")
	laterEnd := tod("10:15")
	_, err = f.svc.Update(ctx, "", appt.ID, AppointmentPatch{StartTime: &later, EndTime: &laterEnd})
	require.NoError(t, err)
}

func TestAppointmentService_UpdateIntoOccupiedSlot(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "", f.input("09:00", "10:00"))
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, "", f.input("11:00", "12:00"))
	require.NoError(t, err)

	start, end := tod("09:45"), tod("10:45")
	_, err = f.svc.Update(ctx, "", second.ID, AppointmentPatch{StartTime: &start, EndTime: &end})
	assertCode(t, err, apperrors.CodeSchedulingConflict)

	stored, err := f.svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, tod("11:00"), stored.StartTime, "rejected update must not be written")
}

func TestAppointmentService_CancelFreesSlotAndReactivationIsChecked(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, "", f.input("09:00", "10:00"))
	require.NoError(t, err)

	cancelled, err := f.svc.UpdateStatus(ctx, "", first.ID, domain.AppointmentCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, cancelled.Status)

	_, err = f.svc.Create(ctx, "", f.input("09:00", "10:00"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, "", first.ID, domain.AppointmentScheduled)
	assertCode(t, err, apperrors.CodeSchedulingConflict)

	assert.Contains(t, f.dispatcher.types(), events.EventAppointmentStatus)
}

func TestAppointmentService_ConcurrentBookingsSerialize(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Create(ctx, "", f.input("14:00", "15:00")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded)
}

func TestAppointmentService_Upcoming(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()
	f.svc.now = func() time.Time { return f.day.Add(10 * time.Hour) }

	past, err := f.svc.Create(ctx, "", f.input("08:00", "09:00"))
	require.NoError(t, err)
	future, err := f.svc.Create(ctx, "", f.input("11:00", "12:00"))
	require.NoError(t, err)
	cancelled, err := f.svc.Create(ctx, "", f.input("13:00", "14:00"))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, "", cancelled.ID, domain.AppointmentCancelled)
	require.NoError(t, err)

	items, err := f.svc.Upcoming(ctx, nil, repository.Page{})
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{future.ID}, ids)
	assert.NotContains(t, ids, past.ID)
}

func TestAppointmentService_UpcomingPagesSkipPastSlots(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()
	f.svc.now = func() time.Time { return f.day.Add(12 * time.Hour) }

	for _, slot := range [][2]string{{"08:00", "09:00"}, {"09:00", "10:00"}} {
		_, err := f.svc.Create(ctx, "", f.input(slot[0], slot[1]))
		require.NoError(t, err)
	}
	later, err := f.svc.Create(ctx, "", f.input("15:00", "16:00"))
	require.NoError(t, err)

	first, err := f.svc.Upcoming(ctx, nil, repository.Page{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, later.ID, first[0].ID)

	second, err := f.svc.Upcoming(ctx, nil, repository.Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestAppointmentService_DeleteAndNotFound(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Create(ctx, "", f.input("09:00", "10:00"))
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, appt.ID))

	assertCode(t, f.svc.Delete(ctx, appt.ID), apperrors.CodeNotFound)
	_, err = f.svc.Get(ctx, appt.ID)
	assertCode(t, err, apperrors.CodeNotFound)
}
