package dto

import (
	"time"

	"github.com/spotstay/booking-service/internal/models"
)

// SpotResponse is the spot embedded in a booking listing, without audit timestamps.
type SpotResponse struct {
	ID          uint    `json:"id"`
	OwnerID     uint    `json:"ownerId"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type BookingResponse struct {
	ID        uint          `json:"id"`
	SpotID    uint          `json:"spotId"`
	UserID    uint          `json:"userId"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Spot      *SpotResponse `json:"Spot,omitempty"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"Bookings"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		SpotID:    b.SpotID,
		UserID:    b.UserID,
		StartDate: b.StartDate.Format(models.DateLayout),
		EndDate:   b.EndDate.Format(models.DateLayout),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Spot != nil {
		spot := ToSpotResponse(b.Spot)
		resp.Spot = &spot
	}
	return resp
}

func ToSpotResponse(s *models.Spot) SpotResponse {
	return SpotResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		Country:     s.Country,
		Lat:         s.Lat,
		Lng:         s.Lng,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
	}
}

func ToBookingListResponse(bookings []models.Booking) BookingListResponse {
	resp := BookingListResponse{Bookings: make([]BookingResponse, len(bookings))}
	for i := range bookings {
		resp.Bookings[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}
