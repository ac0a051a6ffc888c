package dto

import (
	"testing"

	"github.com/spotstay/booking-service/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestEditBookingRequest_Validate(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		req     EditBookingRequest
		invalid []string
	}{
		{"both omitted", EditBookingRequest{}, nil},
		{"both set", EditBookingRequest{StartDate: str("2024-06-01"), EndDate: str("2024-06-05")}, nil},
		{"empty start", EditBookingRequest{StartDate: str("")}, []string{"startDate"}},
		{"garbage end", EditBookingRequest{EndDate: str("June 5th")}, []string{"endDate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.invalid == nil {
				assert.NoError(t, err)
				return
			}
			var fields validation.FieldErrors
			require.ErrorAs(t, err, &fields)
			for _, f := range tt.invalid {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestEditBookingRequest_Dates(t *testing.T) {
	start, end, err := EditBookingRequest{EndDate: str("2024-06-05")}.Dates()
	require.NoError(t, err)
	assert.Nil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "2024-06-05", end.Format("2006-01-02"))

	_, _, err = EditBookingRequest{StartDate: str("")}.Dates()
	var fields validation.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "startDate")
}
