package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spotstay/booking-service/internal/dto"
	"github.com/stretchr/testify/assert"
)

func handle(err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/1", nil)
	rec := httptest.NewRecorder()
	ErrorHandler(err, e.NewContext(req, rec))
	return rec
}

func TestErrorHandler_StringMessage(t *testing.T) {
	rec := handle(echo.NewHTTPError(http.StatusNotFound, "Booking couldn't be found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Booking couldn't be found"}`, rec.Body.String())
}

func TestErrorHandler_StructuredErrors(t *testing.T) {
	rec := handle(echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
		Message: "Bad Request",
		Errors:  map[string]string{"startDate": "startDate cannot be in the past"},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Bad Request","errors":{"startDate":"startDate cannot be in the past"}}`, rec.Body.String())
}

func TestErrorHandler_PlainErrorIsHidden(t *testing.T) {
	rec := handle(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
}

func TestErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	ErrorHandler(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
