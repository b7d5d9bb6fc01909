package domain

import "time"

// AppointmentStatus enumerates booking lifecycle states.
type AppointmentStatus string

const (
	AppointmentScheduled   AppointmentStatus = "scheduled"
	AppointmentConfirmed   AppointmentStatus = "confirmed"
	AppointmentCompleted   AppointmentStatus = "completed"
	AppointmentCancelled   AppointmentStatus = "cancelled"
	AppointmentRescheduled AppointmentStatus = "rescheduled"
	AppointmentNoShow      AppointmentStatus = "no_show"
)

// InactiveAppointmentStatuses no longer occupy a slot in a staff calendar.
var InactiveAppointmentStatuses = []AppointmentStatus{AppointmentCancelled, AppointmentRescheduled}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted,
		AppointmentCancelled, AppointmentRescheduled, AppointmentNoShow:
		return true
	}
	return false
}

// OccupiesSlot reports whether an appointment in this status blocks its time.
func (s AppointmentStatus) OccupiesSlot() bool {
	for _, inactive := range InactiveAppointmentStatuses {
		if s == inactive {
			return false
		}
	}
	return true
}

// Appointment is a booking between a client and a staff member.
type Appointment struct {
	ID        string
	Title     string
	Notes     string
	ClientID  string
	StaffID   string
	Date      time.Time
	StartTime TimeOfDay
	EndTime   TimeOfDay
	Status    AppointmentStatus
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Upcoming reports whether the appointment starts after now and is still live.
func (a *Appointment) Upcoming(now time.Time) bool {
	if !a.Status.OccupiesSlot() || a.Status == AppointmentCompleted {
		return false
	}
	start := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		a.StartTime.Hour(), a.StartTime.Minute(), 0, 0, now.Location())
	return start.After(now)
}

// DateOnly truncates t to a calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, raw)
}

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"
