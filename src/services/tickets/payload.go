package tickets

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"Backend-Celestia-Admin/src/models"

	"github.com/google/uuid"
)

var ErrMalformedPayload = errors.New("malformed ticket payload")

// BuildPayload describes the attendee at pos for the QR code.
func BuildPayload(order *models.RegistrationOrder, pos int, event string) models.TicketPayload {
	a := order.Attendees[pos]
	food := a.FoodList
	if food == nil {
		food = []string{}
	}
	return models.TicketPayload{
		TicketID:   uuid.NewString(),
		AttendeeID: a.ID.Hex(),
		OrderIndex: order.Index,
		Event:      event,
		Username:   a.Username,
		Email:      a.Email,
		Whatsapp:   a.Whatsapp,
		Department: a.Department,
		Batch:      a.Batch,
		FoodList:   food,
		TotalPrice: a.TotalPrice,
		SeatNumber: order.SeatOrDefault(pos),
	}
}

// Identity is the part of a scanned ticket used to find the attendee.
type Identity struct {
	Username   string
	Contact    string
	Department string
}

func (i Identity) Complete() bool {
	return i.Username != "" && i.Contact != "" && i.Department != ""
}

// ParseIdentity reads a scanned QR code. Current tickets hold JSON; tickets mailed
// before that hold "Username: …" / "WhatsApp: …" / "Department: …" lines.
func ParseIdentity(raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, ErrMalformedPayload
	}

	var id Identity
	if strings.HasPrefix(raw, "{") {
		var p models.TicketPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return Identity{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		id = Identity{
			Username:   strings.TrimSpace(p.Username),
			Contact:    strings.TrimSpace(p.Whatsapp),
			Department: strings.TrimSpace(p.Department),
		}
	} else {
		for _, line := range strings.Split(raw, "\n") {
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "username":
				id.Username = value
			case "whatsapp", "contact":
				id.Contact = value
			case "department":
				id.Department = value
			}
		}
	}

	if !id.Complete() {
		return Identity{}, ErrMalformedPayload
	}
	return id, nil
}
