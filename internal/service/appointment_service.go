package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/events"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// AppointmentService books and maintains appointments. Every write that can
// occupy a slot checks for conflicts and writes under the staff member's day
// lock, so concurrent bookings for the same day are serialized.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	clients      repository.ClientRepository
	users        repository.UserRepository
	events       publisher
	now          func() time.Time
}

// AppointmentDependencies bundles repositories for the appointment service.
type AppointmentDependencies struct {
	AppointmentRepo repository.AppointmentRepository
	ClientRepo      repository.ClientRepository
	UserRepo        repository.UserRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// AppointmentInput describes a new booking.
type AppointmentInput struct {
	Title     string
	Notes     string
	ClientID  string
	StaffID   string
	Date      time.Time
	StartTime domain.TimeOfDay
	EndTime   domain.TimeOfDay
	Status    domain.AppointmentStatus
	Location  string
}

// AppointmentPatch holds optional field updates; nil fields are untouched.
type AppointmentPatch struct {
	Title     *string
	Notes     *string
	ClientID  *string
	StaffID   *string
	Date      *time.Time
	StartTime *domain.TimeOfDay
	EndTime   *domain.TimeOfDay
	Status    *domain.AppointmentStatus
	Location  *string
}

// NewAppointmentService constructs the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	return &AppointmentService{
		appointments: deps.AppointmentRepo,
		clients:      deps.ClientRepo,
		users:        deps.UserRepo,
		events:       publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
		now:          time.Now,
	}
}

// Create books a new appointment.
func (s *AppointmentService) Create(ctx context.Context, actorID string, input AppointmentInput) (*domain.Appointment, error) {
	appt := &domain.Appointment{
		Title:     strings.TrimSpace(input.Title),
		Notes:     strings.TrimSpace(input.Notes),
		ClientID:  input.ClientID,
		StaffID:   input.StaffID,
		Date:      domain.DateOnly(input.Date),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Status:    input.Status,
		Location:  strings.TrimSpace(input.Location),
	}
	if appt.Status == "" {
		appt.Status = domain.AppointmentScheduled
	}
	if err := s.validate(ctx, appt); err != nil {
		return nil, err
	}

	err := s.appointments.WithStaffDayLock(ctx, appt.StaffID, appt.Date, func(repo repository.AppointmentRepository) error {
		if appt.Status.OccupiesSlot() {
			if err := checkSlot(ctx, repo, appt, ""); err != nil {
				return err
			}
		}
		return repo.Create(ctx, appt)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.events.publish(ctx, events.Event{
		Type:      events.EventAppointmentBooked,
		SubjectID: appt.ID,
		ActorID:   actor(actorID),
		Payload:   appointmentPayload(appt),
	})
	return appt, nil
}

// Update applies patch. Changes to the slot, the staff member or a move back
// to a live status re-run the conflict check, excluding the appointment
// itself.
func (s *AppointmentService) Update(ctx context.Context, actorID, id string, patch AppointmentPatch) (*domain.Appointment, error) {
	current, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "appointment")
	}
	updated := *current
	applyAppointmentPatch(&updated, patch)
	if err := s.validate(ctx, &updated); err != nil {
		return nil, err
	}

	slotChanged := updated.StaffID != current.StaffID ||
		!updated.Date.Equal(current.Date) ||
		updated.StartTime != current.StartTime ||
		updated.EndTime != current.EndTime
	reactivated := !current.Status.OccupiesSlot() && updated.Status.OccupiesSlot()
	needsCheck := updated.Status.OccupiesSlot() && (slotChanged || reactivated)

	err = s.appointments.WithStaffDayLock(ctx, updated.StaffID, updated.Date, func(repo repository.AppointmentRepository) error {
		if needsCheck {
			if err := checkSlot(ctx, repo, &updated, updated.ID); err != nil {
				return err
			}
		}
		return repo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "appointment")
	}

	switch {
	case slotChanged:
		s.events.publish(ctx, events.Event{
			Type:      events.EventAppointmentRescheduled,
			SubjectID: updated.ID,
			ActorID:   actor(actorID),
			Payload:   appointmentPayload(&updated),
		})
	case updated.Status != current.Status:
		s.publishStatusChange(ctx, actorID, updated.ID, current.Status, updated.Status)
	}
	return &updated, nil
}

// UpdateStatus changes only the status, e.g. to cancel a booking.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actorID, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	return s.Update(ctx, actorID, id, AppointmentPatch{Status: &status})
}

// Delete removes an appointment.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if err := s.appointments.Delete(ctx, id); err != nil {
		return apperrors.NotFoundOr(err, "appointment")
	}
	return nil
}

// Get fetches one appointment.
func (s *AppointmentService) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "appointment")
	}
	return appt, nil
}

// List returns appointments matching filter.
func (s *AppointmentService) List(ctx context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	items, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// Upcoming returns live appointments starting after now, optionally for one
// staff member.
func (s *AppointmentService) Upcoming(ctx context.Context, staffID *string, page repository.Page) ([]domain.Appointment, error) {
	now := s.now()
	items, err := s.appointments.List(ctx, repository.AppointmentFilter{
		StaffID:     staffID,
		StartsAfter: &now,
		Statuses:    []domain.AppointmentStatus{domain.AppointmentScheduled, domain.AppointmentConfirmed},
		Page:        page,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

func (s *AppointmentService) validate(ctx context.Context, appt *domain.Appointment) error {
	details := map[string]any{}
	if appt.Title == "" {
		details["title"] = "is required"
	}
	if appt.Date.IsZero() {
		details["date"] = "is required"
	}
	if appt.EndTime <= appt.StartTime {
		details["endTime"] = "must be after startTime"
	}
	if !appt.Status.Valid() {
		details["status"] = "is not a known status"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid appointment", details)
	}

	if _, err := s.clients.GetByID(ctx, appt.ClientID); err != nil {
		return apperrors.NotFoundOr(err, "client")
	}
	staff, err := s.users.GetByID(ctx, appt.StaffID)
	if err != nil {
		return apperrors.NotFoundOr(err, "staff member")
	}
	if !staff.Active {
		return apperrors.NewValidationError("staff member is inactive", map[string]any{"staffId": appt.StaffID})
	}
	return nil
}

func (s *AppointmentService) publishStatusChange(ctx context.Context, actorID, id string, from, to domain.AppointmentStatus) {
	s.events.publish(ctx, events.Event{
		Type:      events.EventAppointmentStatus,
		SubjectID: id,
		ActorID:   actor(actorID),
		Payload:   events.AppointmentStatusPayload{OldStatus: from, NewStatus: to},
	})
}

func checkSlot(ctx context.Context, finder repository.AppointmentFinder, appt *domain.Appointment, excludeID string) error {
	clashes, err := NewConflictChecker(finder).Conflicts(ctx, appt.StaffID, appt.Date, appt.StartTime, appt.EndTime, excludeID)
	if err != nil {
		return err
	}
	if len(clashes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(clashes))
	for _, clash := range clashes {
		ids = append(ids, clash.ID)
	}
	return apperrors.NewSchedulingConflict("the staff member already has an appointment in this time slot", map[string]any{
		"conflicting_ids": ids,
	})
}

func applyAppointmentPatch(appt *domain.Appointment, patch AppointmentPatch) {
	if patch.Title != nil {
		appt.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Notes != nil {
		appt.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.ClientID != nil {
		appt.ClientID = *patch.ClientID
	}
	if patch.StaffID != nil {
		appt.StaffID = *patch.StaffID
	}
	if patch.Date != nil {
		appt.Date = domain.DateOnly(*patch.Date)
	}
	if patch.StartTime != nil {
		appt.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		appt.EndTime = *patch.EndTime
	}
	if patch.Status != nil {
		appt.Status = *patch.Status
	}
	if patch.Location != nil {
		appt.Location = strings.TrimSpace(*patch.Location)
	}
}

func appointmentPayload(appt *domain.Appointment) events.AppointmentPayload {
	return events.AppointmentPayload{
		StaffID:   appt.StaffID,
		ClientID:  appt.ClientID,
		Date:      appt.Date.Format(domain.DateLayout),
		StartTime: appt.StartTime,
		EndTime:   appt.EndTime,
	}
}

// isNoRows is shared by services that branch on a missing record.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
