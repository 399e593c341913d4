package approvals

import (
	"context"
	"errors"

	"Backend-Celestia-Admin/src/database"
	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/notifications"
)

type RejectionResult struct {
	Attendee     models.Attendee       `json:"attendee"`
	OrderID      string                `json:"orderId"`
	Index        string                `json:"index"`
	SeatNumber   string                `json:"seatNumber"`
	SeatReleased bool                  `json:"seatReleased"`
	StateChanged bool                  `json:"stateChanged"`
	Notification notifications.Outcome `json:"notification"`
}

// Reject marks the attendee rejected and frees its seat. Seat release and the
// rejection mail are best-effort.
func (s *Service) Reject(ctx context.Context, attendeeID string) (*RejectionResult, error) {
	oid, err := ParseAttendeeID(attendeeID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.locate(ctx, oid); err != nil {
		return nil, err
	}

	order, pos, err := s.commit(ctx, oid, models.StatusRejected, "")
	if err != nil {
		return nil, err
	}

	log := s.log.WithFields(s.fields(order, attendeeID))
	log.Info("✅ attendee rejected")

	res := &RejectionResult{
		Attendee:     order.Attendees[pos].Normalized(),
		OrderID:      order.ID.Hex(),
		Index:        order.Index,
		SeatNumber:   order.SeatAt(pos),
		StateChanged: true,
	}
	res.SeatReleased = s.releaseSeat(ctx, res.SeatNumber, attendeeID)
	if res.SeatNumber == "" {
		res.SeatNumber = models.SeatNotAssigned
	}
	s.announce("❌ Rejected %s (%s)", res.Attendee.Username, order.Index)

	msg, err := notifications.RejectionMail(s.event, res.Attendee)
	if err != nil {
		res.Notification = notifications.Skipped(err.Error())
		return res, nil
	}
	res.Notification, err = s.mailer.Deliver(ctx, msg)
	if err != nil {
		log.WithError(err).Warn("⚠️ rejection mail not delivered")
	}
	return res, nil
}

// releaseSeat reports whether the seat record was set back to free.
func (s *Service) releaseSeat(ctx context.Context, seat, attendeeID string) bool {
	log := s.log.WithField("attendeeId", attendeeID).WithField("seatNumber", seat)
	if seat == "" {
		log.Info("no seat associated with attendee")
		return false
	}
	if err := s.seats.Release(ctx, seat); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			log.Warn("⚠️ seat record not found")
		} else {
			log.WithError(err).Error("❌ seat release failed")
		}
		return false
	}
	log.Info("seat released")
	return true
}
