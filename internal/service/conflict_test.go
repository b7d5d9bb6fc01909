package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository/repotest"
)

func tod(s string) domain.TimeOfDay { return domain.MustTimeOfDay(s) }

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{name: "partial overlap", s1: "09:00", e1: "10:00", s2: "09:30", e2: "10:30", want: true},
		{name: "adjacent after", s1: "09:00", e1: "10:00", s2: "10:00", e2: "11:00", want: false},
		{name: "adjacent before", s1: "10:00", e1: "11:00", s2: "09:00", e2: "10:00", want: false},
		{name: "contained", s1: "09:00", e1: "12:00", s2: "10:00", e2: "10:15", want: true},
		{name: "identical", s1: "09:00", e1: "10:00", s2: "09:00", e2: "10:00", want: true},
		{name: "disjoint", s1: "08:00", e1: "08:30", s2: "14:00", e2: "15:00", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tod(tt.s1), tod(tt.e1), tod(tt.s2), tod(tt.e2)))
			assert.Equal(t, tt.want, Overlaps(tod(tt.s2), tod(tt.e2), tod(tt.s1), tod(tt.e1)), "symmetric")
		})
	}
}

func TestConflictChecker_HasConflict(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)
	store := repotest.NewAppointments()
	existing := store.Seed(domain.Appointment{
		StaffID: "staff-1", Date: day, StartTime: tod("09:00"), EndTime: tod("10:00"), Status: domain.AppointmentScheduled,
	})
	store.Seed(domain.Appointment{
		StaffID: "staff-1", Date: day, StartTime: tod("13:00"), EndTime: tod("14:00"), Status: domain.AppointmentCancelled,
	})
	store.Seed(domain.Appointment{
		StaffID: "staff-1", Date: day, StartTime: tod("15:00"), EndTime: tod("16:00"), Status: domain.AppointmentRescheduled,
	})
	store.Seed(domain.Appointment{
		StaffID: "staff-2", Date: day, StartTime: tod("11:00"), EndTime: tod("12:00"), Status: domain.AppointmentConfirmed,
	})

	checker := NewConflictChecker(store)
	tests := []struct {
		name      string
		staffID   string
		date      time.Time
		start     string
		end       string
		excludeID string
		want      bool
	}{
		{name: "overlapping slot", staffID: "staff-1", date: day, start: "09:30", end: "10:30", want: true},
		{name: "adjacent slot", staffID: "staff-1", date: day, start: "10:00", end: "11:00", want: false},
		{name: "exclude self", staffID: "staff-1", date: day, start: "09:00", end: "10:00", excludeID: existing.ID, want: false},
		{name: "cancelled ignored", staffID: "staff-1", date: day, start: "13:00", end: "14:00", want: false},
		{name: "rescheduled ignored", staffID: "staff-1", date: day, start: "15:30", end: "16:30", want: false},
		{name: "other staff", staffID: "staff-1", date: day, start: "11:00", end: "12:00", want: false},
		{name: "other day", staffID: "staff-1", date: day.AddDate(0, 0, 1), start: "09:00", end: "10:00", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.HasConflict(ctx, tt.staffID, tt.date, tod(tt.start), tod(tt.end), tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
