package dto

import (
	"time"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// CreateAppointmentRequest payload. Times are HH:MM, the date YYYY-MM-DD.
type CreateAppointmentRequest struct {
	Title     string                   `json:"title" validate:"required,max=200"`
	Notes     string                   `json:"notes"`
	ClientID  string                   `json:"clientId" validate:"required,uuid"`
	StaffID   string                   `json:"staffId" validate:"required,uuid"`
	Date      string                   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime *domain.TimeOfDay        `json:"startTime" validate:"required"`
	EndTime   *domain.TimeOfDay        `json:"endTime" validate:"required"`
	Status    domain.AppointmentStatus `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled rescheduled no_show"`
	Location  string                   `json:"location" validate:"max=200"`
}

// UpdateAppointmentRequest payload; omitted fields are left unchanged.
type UpdateAppointmentRequest struct {
	Title     *string                   `json:"title" validate:"omitempty,max=200"`
	Notes     *string                   `json:"notes"`
	ClientID  *string                   `json:"clientId" validate:"omitempty,uuid"`
	StaffID   *string                   `json:"staffId" validate:"omitempty,uuid"`
	Date      *string                   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime *domain.TimeOfDay         `json:"startTime"`
	EndTime   *domain.TimeOfDay         `json:"endTime"`
	Status    *domain.AppointmentStatus `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled rescheduled no_show"`
	Location  *string                   `json:"location" validate:"omitempty,max=200"`
}

// UpdateAppointmentStatusRequest payload for PATCH /appointments/:id/status.
type UpdateAppointmentStatusRequest struct {
	Status domain.AppointmentStatus `json:"status" validate:"required,oneof=scheduled confirmed completed cancelled rescheduled no_show"`
}

type AppointmentResponse struct {
	ID        string                   `json:"id"`
	Title     string                   `json:"title"`
	Notes     string                   `json:"notes"`
	ClientID  string                   `json:"clientId"`
	StaffID   string                   `json:"staffId"`
	Date      string                   `json:"date"`
	StartTime domain.TimeOfDay         `json:"startTime"`
	EndTime   domain.TimeOfDay         `json:"endTime"`
	Status    domain.AppointmentStatus `json:"status"`
	Location  string                   `json:"location"`
	Upcoming  bool                     `json:"upcoming"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// NewAppointmentResponse maps an appointment; now drives the upcoming flag.
func NewAppointmentResponse(a *domain.Appointment, now time.Time) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		Title:     a.Title,
		Notes:     a.Notes,
		ClientID:  a.ClientID,
		StaffID:   a.StaffID,
		Date:      a.Date.Format(domain.DateLayout),
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    a.Status,
		Location:  a.Location,
		Upcoming:  a.Upcoming(now),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewAppointmentList(items []domain.Appointment, now time.Time) []AppointmentResponse {
	return mapAll(items, func(a *domain.Appointment) AppointmentResponse {
		return NewAppointmentResponse(a, now)
	})
}
