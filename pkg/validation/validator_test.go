package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Day   *string `json:"day" validate:"omitempty,datetime=2006-01-02"`
	Owner uint    `json:"ownerId" validate:"required"`
}

func ptr(s string) *string { return &s }

func TestValidate_OK(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{Day: ptr("2024-06-01"), Owner: 1}))
	assert.NoError(t, v.Validate(&sample{Owner: 1}))
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&sample{Day: ptr("06/01/2024")})

	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "day must be a date formatted as 2006-01-02", fields["day"])
	assert.Equal(t, "ownerId is required", fields["ownerId"])
	assert.Equal(t,
		"validation failed: [day: day must be a date formatted as 2006-01-02; ownerId: ownerId is required]",
		err.Error())
}

func TestValidate_NonStruct(t *testing.T) {
	v := New()

	err := v.Validate("not a struct")

	assert.Error(t, err)
	var fields FieldErrors
	assert.False(t, errors.As(err, &fields))
}
