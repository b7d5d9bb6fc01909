package service

import (
	"context"
	"time"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching intervals do not overlap.
func Overlaps(s1, e1, s2, e2 domain.TimeOfDay) bool {
	return s1 < e2 && s2 < e1
}

// ConflictChecker detects double bookings for a staff member's day.
type ConflictChecker struct {
	finder repository.AppointmentFinder
}

// NewConflictChecker constructs a checker over finder.
func NewConflictChecker(finder repository.AppointmentFinder) *ConflictChecker {
	return &ConflictChecker{finder: finder}
}

// Conflicts returns the live appointments of staffID on date that overlap
// [start,end), ignoring excludeID.
func (c *ConflictChecker) Conflicts(ctx context.Context, staffID string, date time.Time, start, end domain.TimeOfDay, excludeID string) ([]domain.Appointment, error) {
	existing, err := c.finder.FindForStaffOnDate(ctx, staffID, date, domain.InactiveAppointmentStatuses)
	if err != nil {
		return nil, err
	}
	var clashes []domain.Appointment
	for _, appt := range existing {
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		if !appt.Status.OccupiesSlot() {
			continue
		}
		if Overlaps(start, end, appt.StartTime, appt.EndTime) {
			clashes = append(clashes, appt)
		}
	}
	return clashes, nil
}

// HasConflict reports whether any live appointment overlaps the slot.
func (c *ConflictChecker) HasConflict(ctx context.Context, staffID string, date time.Time, start, end domain.TimeOfDay, excludeID string) (bool, error) {
	clashes, err := c.Conflicts(ctx, staffID, date, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return len(clashes) > 0, nil
}
