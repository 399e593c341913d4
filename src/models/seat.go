package models

import "time"

// Seat is the availability record of one seat identifier.
type Seat struct {
	SeatNumber string    `json:"seatNumber" bson:"seatNumber" yaml:"seatNumber"`
	IsBooked   bool      `json:"isBooked" bson:"isBooked" yaml:"isBooked"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty" yaml:"-"`
}
