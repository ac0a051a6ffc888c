package dto

import (
	"fmt"
	"time"

	"github.com/spotstay/booking-service/internal/models"
	"github.com/spotstay/booking-service/pkg/validation"
)

// EditBookingRequest is a partial update; omitted dates keep their stored value.
// A date that is present must parse, so "" is rejected rather than ignored.
type EditBookingRequest struct {
	StartDate *string `json:"startDate" validate:"omitnil,datetime=2006-01-02"`
	EndDate   *string `json:"endDate" validate:"omitnil,datetime=2006-01-02"`
}

// Dates parses the validated date strings.
func (r EditBookingRequest) Dates() (start, end *time.Time, err error) {
	fields := validation.FieldErrors{}
	start = parseDate(r.StartDate, "startDate", fields)
	end = parseDate(r.EndDate, "endDate", fields)
	if len(fields) > 0 {
		return nil, nil, fields
	}
	return start, end, nil
}

func parseDate(s *string, field string, fields validation.FieldErrors) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(models.DateLayout, *s)
	if err != nil {
		fields[field] = fmt.Sprintf("%s must be a date formatted as %s", field, models.DateLayout)
		return nil
	}
	return &t
}
