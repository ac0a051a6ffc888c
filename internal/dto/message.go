package dto

import "github.com/spotstay/booking-service/internal/models"

// SpotMessage is the spot.* payload published by the listing service.
type SpotMessage struct {
	ID          uint    `json:"id" validate:"required"`
	OwnerID     uint    `json:"ownerId" validate:"required"`
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

// BookingMessage is the booking.* payload this service publishes.
type BookingMessage struct {
	ID        uint   `json:"id"`
	SpotID    uint   `json:"spotId"`
	UserID    uint   `json:"userId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	ActorID   uint   `json:"actorId"`
}

func ToBookingMessage(b *models.Booking, actorID uint) BookingMessage {
	return BookingMessage{
		ID:        b.ID,
		SpotID:    b.SpotID,
		UserID:    b.UserID,
		StartDate: b.StartDate.Format(models.DateLayout),
		EndDate:   b.EndDate.Format(models.DateLayout),
		ActorID:   actorID,
	}
}
