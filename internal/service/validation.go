package service

import (
	"time"

	"github.com/spotstay/booking-service/internal/models"
)

// DateOf truncates t to its calendar date in loc and returns that date at UTC
// midnight, the form booking dates are stored and compared in.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateRange checks a proposed [start, end) against today. It returns nil or
// a RangeError wrapping ErrInvalidRange naming each failed field.
func ValidateRange(start, end, today time.Time) error {
	fields := map[string]string{}
	if start.Before(today) {
		fields[FieldStartDate] = "startDate cannot be in the past"
	}
	if !start.Before(end) {
		fields[FieldEndDate] = "endDate cannot be on or before startDate"
	}
	if len(fields) > 0 {
		return &RangeError{Kind: ErrInvalidRange, Fields: fields}
	}
	return nil
}

// Overlaps reports whether proposed [start, end) collides with existing [s, e).
// A proposed start equal to e does not collide.
func Overlaps(start, end, s, e time.Time) bool {
	startsInside := !start.Before(s) && start.Before(e)
	coversStart := start.Before(s) && end.After(s)
	return startsInside || coversStart
}

// FindConflict returns the first candidate overlapping [start, end), or nil.
func FindConflict(candidates []models.Booking, start, end time.Time) *models.Booking {
	for i := range candidates {
		if Overlaps(start, end, candidates[i].StartDate, candidates[i].EndDate) {
			return &candidates[i]
		}
	}
	return nil
}

// BookingPatch is a partial date update. Nil fields keep the stored value.
type BookingPatch struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Resolve merges the patch over the current range.
func (p BookingPatch) Resolve(current models.Booking) (start, end time.Time) {
	start, end = current.StartDate, current.EndDate
	if p.StartDate != nil {
		start = *p.StartDate
	}
	if p.EndDate != nil {
		end = *p.EndDate
	}
	return start, end
}
