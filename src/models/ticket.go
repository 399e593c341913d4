package models

// TicketPayload is what gets encoded into an attendee's QR code.
type TicketPayload struct {
	TicketID   string   `json:"ticketId"`
	AttendeeID string   `json:"attendeeId"`
	OrderIndex string   `json:"orderIndex"`
	Event      string   `json:"event"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Whatsapp   string   `json:"whatsapp"`
	Department string   `json:"department"`
	Batch      string   `json:"batch"`
	FoodList   []string `json:"foodList"`
	TotalPrice float64  `json:"totalPrice"`
	SeatNumber string   `json:"seatNumber"`
}

// VisitorQRPayload is the smaller QR content issued to approved visitors.
type VisitorQRPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
