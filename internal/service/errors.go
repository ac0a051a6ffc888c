package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnauthorized    = errors.New("authentication required")
	ErrBookingNotFound = errors.New("booking couldn't be found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidRange    = errors.New("invalid booking date range")
	ErrConflict        = errors.New("spot is already booked for the specified dates")
	ErrAlreadyStarted  = errors.New("bookings that have been started can't be deleted")
)

// Field names reported in RangeError.Fields. They match the JSON request keys.
const (
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
)

// RangeError carries per-field messages for ErrInvalidRange and ErrConflict.
type RangeError struct {
	Kind   error
	Fields map[string]string
}

func (e *RangeError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return fmt.Sprintf("%v: [%s]", e.Kind, strings.Join(parts, "; "))
}

func (e *RangeError) Unwrap() error {
	return e.Kind
}

func conflictError() *RangeError {
	return &RangeError{
		Kind: ErrConflict,
		Fields: map[string]string{
			FieldStartDate: "Start date conflicts with an existing booking",
			FieldEndDate:   "End date conflicts with an existing booking",
		},
	}
}
