package models

import "time"

// DateLayout is the wire and storage format for booking dates.
const DateLayout = "2006-01-02"

type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SpotID    uint      `gorm:"not null;index" json:"spotId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	StartDate time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate   time.Time `gorm:"type:date;not null" json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Spot *Spot `gorm:"foreignKey:SpotID;constraint:-" json:"Spot,omitempty"`
}

// Principal is the authenticated user a request acts on behalf of.
type Principal struct {
	ID uint
}
