package events

import (
	"time"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked      EventType = "appointment_booked"
	EventAppointmentRescheduled EventType = "appointment_rescheduled"
	EventAppointmentStatus      EventType = "appointment_status_changed"
	EventContactSubmitted       EventType = "contact_submitted"
	EventUserRegistered         EventType = "user_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AppointmentPayload describes a booked or rescheduled slot.
type AppointmentPayload struct {
	StaffID   string           `json:"staff_id"`
	ClientID  string           `json:"client_id"`
	Date      string           `json:"date"`
	StartTime domain.TimeOfDay `json:"start_time"`
	EndTime   domain.TimeOfDay `json:"end_time"`
}

// AppointmentStatusPayload payload.
type AppointmentStatusPayload struct {
	OldStatus domain.AppointmentStatus `json:"old_status"`
	NewStatus domain.AppointmentStatus `json:"new_status"`
}

// ContactSubmittedPayload payload.
type ContactSubmittedPayload struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Subject        string `json:"subject"`
	MessagePreview string `json:"message_preview"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}
