package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalStatus is the single source of truth for an attendee's review outcome.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// SeatNotAssigned is shown wherever an attendee has no seat.
const SeatNotAssigned = "N/A"

// Attendee is one person inside a RegistrationOrder.
// isApproved / isRejected are kept only as mirrors of Status for older readers.
type Attendee struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Username    string             `json:"username" bson:"username"`
	Email       string             `json:"email" bson:"email"`
	Whatsapp    string             `json:"whatsapp" bson:"whatsapp"`
	Department  string             `json:"department" bson:"department"`
	Batch       string             `json:"batch" bson:"batch"`
	Faculty     string             `json:"faculty,omitempty" bson:"faculty,omitempty"`
	ImageURL    string             `json:"imageURL" bson:"imageURL"`
	FoodList    []string           `json:"foodList" bson:"foodList"`
	TotalPrice  float64            `json:"totalPrice" bson:"totalPrice"`
	Status      ApprovalStatus     `json:"status" bson:"status,omitempty"`
	IsApproved  bool               `json:"isApproved" bson:"isApproved"`
	IsRejected  bool               `json:"isRejected" bson:"isRejected"`
	SeatNumber  string             `json:"seatNumber,omitempty" bson:"seatNumber,omitempty"`
	IsCheckedIn bool               `json:"isCheckedIn" bson:"isCheckedIn"`
	CheckInTime *time.Time         `json:"checkInTime" bson:"checkInTime"`
	Version     int64              `json:"version" bson:"version"`
	ApprovedAt  *time.Time         `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	RejectedAt  *time.Time         `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
}

// ApprovalState resolves the attendee's status. Documents written before the status
// field existed only carry the two booleans; rejection wins if both were set.
func (a Attendee) ApprovalState() ApprovalStatus {
	switch a.Status {
	case StatusPending, StatusApproved, StatusRejected:
		return a.Status
	}
	if a.IsRejected {
		return StatusRejected
	}
	if a.IsApproved {
		return StatusApproved
	}
	return StatusPending
}

func (a Attendee) Approved() bool {
	return a.ApprovalState() == StatusApproved
}

// Normalized returns a copy whose Status and legacy flags agree.
func (a Attendee) Normalized() Attendee {
	s := a.ApprovalState()
	a.Status = s
	a.IsApproved = s == StatusApproved
	a.IsRejected = s == StatusRejected
	return a
}

// RegistrationOrder is one purchase: the purchaser's NIC, the seats bought and the attendees.
type RegistrationOrder struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Index     string             `json:"index" bson:"index"`
	Seats     []string           `json:"seats" bson:"seats"`
	Attendees []Attendee         `json:"users" bson:"users"`
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// AttendeePosition returns the position of the attendee inside the order, or -1.
func (o *RegistrationOrder) AttendeePosition(id primitive.ObjectID) int {
	for i := range o.Attendees {
		if o.Attendees[i].ID == id {
			return i
		}
	}
	return -1
}

// Attendee returns a pointer into the order's attendee list, or nil.
func (o *RegistrationOrder) Attendee(id primitive.ObjectID) *Attendee {
	if pos := o.AttendeePosition(id); pos >= 0 {
		return &o.Attendees[pos]
	}
	return nil
}

// Primary is the purchaser, the first attendee of the order.
func (o *RegistrationOrder) Primary() *Attendee {
	if len(o.Attendees) == 0 {
		return nil
	}
	return &o.Attendees[0]
}

// SeatAt resolves the seat of the attendee at pos: the attendee's own seatNumber first,
// then the positional entry of Seats. Empty when neither exists.
func (o *RegistrationOrder) SeatAt(pos int) string {
	if pos < 0 || pos >= len(o.Attendees) {
		return ""
	}
	if s := o.Attendees[pos].SeatNumber; s != "" {
		return s
	}
	if pos < len(o.Seats) {
		return o.Seats[pos]
	}
	return ""
}

// PositionalSeat is the legacy seat lookup, Seats[pos] only.
func (o *RegistrationOrder) PositionalSeat(pos int) string {
	if pos < 0 || pos >= len(o.Seats) {
		return ""
	}
	return o.Seats[pos]
}

// SeatOrDefault is SeatAt with the "N/A" fallback used in responses.
func (o *RegistrationOrder) SeatOrDefault(pos int) string {
	if s := o.SeatAt(pos); s != "" {
		return s
	}
	return SeatNotAssigned
}

// FlatAttendee is an attendee listed outside its order.
type FlatAttendee struct {
	Attendee
	OrderID    primitive.ObjectID `json:"orderId"`
	SeatNumber string             `json:"seatNumber"`
	Index      string             `json:"index"`
}
