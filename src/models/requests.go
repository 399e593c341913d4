package models

import "strings"

// AttendeeActionRequest accepts both the old "userId" and the newer "attendeeId" key.
type AttendeeActionRequest struct {
	UserID     string `json:"userId" validate:"required_without=AttendeeID"`
	AttendeeID string `json:"attendeeId" validate:"required_without=UserID"`
}

func (r AttendeeActionRequest) ID() string {
	if r.AttendeeID != "" {
		return strings.TrimSpace(r.AttendeeID)
	}
	return strings.TrimSpace(r.UserID)
}

// CheckInRequest is the door toggle body. identityKey and nic are the same value.
type CheckInRequest struct {
	SeatNumber  string `json:"seatNumber" validate:"required"`
	NIC         string `json:"nic" validate:"required_without=IdentityKey"`
	IdentityKey string `json:"identityKey" validate:"required_without=NIC"`
}

func (r CheckInRequest) Key() string {
	if r.IdentityKey != "" {
		return strings.TrimSpace(r.IdentityKey)
	}
	return strings.TrimSpace(r.NIC)
}

// SetCheckInRequest comes from the QR scanner page.
type SetCheckInRequest struct {
	Username   string `json:"username" validate:"required"`
	Contact    string `json:"contact" validate:"required_without=Whatsapp"`
	Whatsapp   string `json:"whatsapp" validate:"required_without=Contact"`
	Department string `json:"department" validate:"required"`
}

func (r SetCheckInRequest) ContactValue() string {
	if r.Contact != "" {
		return strings.TrimSpace(r.Contact)
	}
	return strings.TrimSpace(r.Whatsapp)
}

type ScanRequest struct {
	Payload string `json:"payload" validate:"required"`
}

type VisitorApproveRequest struct {
	VisitorID string `json:"visitorId" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
