package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/spotstay/booking-service/internal/dto"
	"github.com/spotstay/booking-service/internal/middleware"
	"github.com/spotstay/booking-service/internal/service"
	"github.com/spotstay/booking-service/pkg/validation"
)

const (
	msgAuthRequired   = "Authentication required"
	msgNotFound       = "Booking couldn't be found"
	msgForbidden      = "Forbidden"
	msgBadRequest     = "Bad Request"
	msgConflict       = "Sorry, this spot is already booked for the specified dates"
	msgAlreadyStarted = "Bookings that have been started can't be deleted"
	msgDeleted        = "Successfully deleted"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/current", h.ListCurrent)
	g.PUT("/:bookingId", h.EditBooking)
	g.DELETE("/:bookingId", h.DeleteBooking)
}

func (h *BookingHandler) ListCurrent(c echo.Context) error {
	bookings, err := h.svc.ListForUser(c.Request().Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingListResponse(bookings))
}

func (h *BookingHandler) EditBooking(c echo.Context) error {
	// Authentication is checked before the path or body is looked at
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	}

	bookingID, ok := parseBookingID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	}

	var req dto.EditBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	start, end, err := req.Dates()
	if err != nil {
		return badRequest(err)
	}

	booking, err := h.svc.Edit(c.Request().Context(), bookingID, principal, service.BookingPatch{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	}

	bookingID, ok := parseBookingID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	}

	if err := h.svc.Delete(c.Request().Context(), bookingID, principal); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgDeleted})
}

func parseBookingID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func badRequest(err error) error {
	var fields validation.FieldErrors
	if errors.As(err, &fields) {
		return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{Message: msgBadRequest, Errors: fields})
	}
	return echo.NewHTTPError(http.StatusBadRequest, msgBadRequest)
}

func toHTTPError(err error) error {
	var rangeErr *service.RangeError
	fields := map[string]string(nil)
	if errors.As(err, &rangeErr) {
		fields = rangeErr.Fields
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	case errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, msgForbidden)
	case errors.Is(err, service.ErrInvalidRange):
		return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{Message: msgBadRequest, Errors: fields})
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusForbidden, dto.ErrorResponse{Message: msgConflict, Errors: fields})
	case errors.Is(err, service.ErrAlreadyStarted):
		return echo.NewHTTPError(http.StatusForbidden, msgAlreadyStarted)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}
