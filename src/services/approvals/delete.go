package approvals

import (
	"context"
	"errors"

	"Backend-Celestia-Admin/src/database"
	"Backend-Celestia-Admin/src/utils"
)

type DeleteResult struct {
	AttendeeID   string `json:"attendeeId"`
	OrderID      string `json:"orderId"`
	Index        string `json:"index"`
	SeatNumber   string `json:"seatNumber,omitempty"`
	SeatReleased bool   `json:"seatReleased"`
}

// Delete removes the attendee from its order together with its seat, and frees the seat record.
func (s *Service) Delete(ctx context.Context, attendeeID string) (*DeleteResult, error) {
	oid, err := ParseAttendeeID(attendeeID)
	if err != nil {
		return nil, err
	}
	order, pos, err := s.locate(ctx, oid)
	if err != nil {
		return nil, err
	}
	seat := order.SeatAt(pos)

	order, err = s.orders.RemoveAttendee(ctx, oid, seat)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFoundError("attendee")
		}
		return nil, utils.InternalError(err)
	}
	s.log.WithFields(s.fields(order, attendeeID)).Info("✅ attendee deleted")

	return &DeleteResult{
		AttendeeID:   attendeeID,
		OrderID:      order.ID.Hex(),
		Index:        order.Index,
		SeatNumber:   seat,
		SeatReleased: s.releaseSeat(ctx, seat, attendeeID),
	}, nil
}
