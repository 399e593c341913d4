package approvals

import (
	"context"
	"errors"

	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/notifications"
	"Backend-Celestia-Admin/src/services/tickets"
	"Backend-Celestia-Admin/src/utils"
)

// ArtifactOutcome reports the ticket files produced after an approval.
type ArtifactOutcome struct {
	Generated bool   `json:"generated"`
	PDF       bool   `json:"pdf"`
	Error     string `json:"error,omitempty"`
}

// ApprovalResult separates the committed state change from the side effects that followed it.
type ApprovalResult struct {
	Attendee     models.Attendee       `json:"attendee"`
	OrderID      string                `json:"orderId"`
	Index        string                `json:"index"`
	SeatNumber   string                `json:"seatNumber"`
	StateChanged bool                  `json:"stateChanged"`
	Artifact     ArtifactOutcome       `json:"artifact"`
	Notification notifications.Outcome `json:"notification"`
}

// Approve marks the attendee approved, then issues the ticket mail. The approval is
// never rolled back: when the QR code cannot be produced the result is returned together
// with an ArtifactGenerationError, and mail failures are only reported in the result.
func (s *Service) Approve(ctx context.Context, attendeeID string) (*ApprovalResult, error) {
	oid, err := ParseAttendeeID(attendeeID)
	if err != nil {
		return nil, err
	}
	before, pos, err := s.locate(ctx, oid)
	if err != nil {
		return nil, err
	}

	// legacy orders only map seats by position; pin it on the attendee
	seat := ""
	if before.Attendees[pos].SeatNumber == "" {
		seat = before.PositionalSeat(pos)
	}

	order, pos, err := s.commit(ctx, oid, models.StatusApproved, seat)
	if err != nil {
		return nil, err
	}

	log := s.log.WithFields(s.fields(order, attendeeID))
	log.Info("✅ attendee approved")

	res := &ApprovalResult{
		Attendee:     order.Attendees[pos].Normalized(),
		OrderID:      order.ID.Hex(),
		Index:        order.Index,
		SeatNumber:   order.SeatOrDefault(pos),
		StateChanged: true,
	}
	res.Attendee.SeatNumber = res.SeatNumber
	s.announce("✅ Approved %s (%s), seat %s", res.Attendee.Username, order.Index, res.SeatNumber)

	outcome, err := s.sendTicket(ctx, order, pos)
	res.Artifact = outcome.artifact
	res.Notification = outcome.notification
	if err != nil {
		log.WithError(err).Error("❌ ticket generation failed after approval")
		return res, err
	}

	if !res.Notification.Sent {
		log.WithField("error", res.Notification.Error).Warn("⚠️ approval mail not delivered")
		res.Notification.Queued = s.enqueueResend(ctx, attendeeID)
	}
	return res, nil
}

type ticketOutcome struct {
	artifact     ArtifactOutcome
	notification notifications.Outcome
}

// sendTicket generates the QR code (and PDF) for the attendee at pos and mails them.
// Only an artifact failure is returned as an error.
func (s *Service) sendTicket(ctx context.Context, order *models.RegistrationOrder, pos int) (ticketOutcome, error) {
	var out ticketOutcome

	payload := tickets.BuildPayload(order, pos, s.event)
	artifacts, err := s.generator.Generate(ctx, payload)
	if err != nil {
		out.artifact.Error = err.Error()
		out.notification = notifications.Skipped("ticket was not generated")
		return out, utils.ArtifactGenerationError(err)
	}
	out.artifact.Generated = true
	out.artifact.PDF = len(artifacts.PDF) > 0
	log := s.log.WithFields(s.fields(order, order.Attendees[pos].ID.Hex()))
	if artifacts.PDFError != nil {
		// the QR code alone is a valid ticket
		out.artifact.Error = artifacts.PDFError.Error()
		log.WithError(artifacts.PDFError).Warn("⚠️ ticket pdf not rendered, sending QR only")
	}

	msg, err := notifications.ApprovalMail(s.event, payload, artifacts.QRCode, artifacts.PDF)
	if err != nil {
		out.notification = notifications.Skipped(err.Error())
		return out, nil
	}
	out.notification, err = s.mailer.Deliver(ctx, msg)
	if err != nil {
		log.WithError(err).Warn("⚠️ ticket mail delivery failed")
	}
	return out, nil
}

func (s *Service) enqueueResend(ctx context.Context, attendeeID string) bool {
	if s.queue == nil {
		return false
	}
	if err := s.queue.EnqueueTicketResend(ctx, attendeeID); err != nil {
		s.log.WithField("attendeeId", attendeeID).WithError(err).Error("❌ could not queue ticket resend")
		return false
	}
	return true
}

// ResendTicket re-issues the ticket mail of an attendee that is already approved.
// Unlike Approve, a delivery failure is returned as a NotificationError.
func (s *Service) ResendTicket(ctx context.Context, attendeeID string) (*ApprovalResult, error) {
	oid, err := ParseAttendeeID(attendeeID)
	if err != nil {
		return nil, err
	}
	order, pos, err := s.locate(ctx, oid)
	if err != nil {
		return nil, err
	}
	attendee := order.Attendees[pos].Normalized()
	if !attendee.Approved() {
		return nil, utils.ForbiddenError("User is not approved")
	}

	res := &ApprovalResult{
		Attendee:   attendee,
		OrderID:    order.ID.Hex(),
		Index:      order.Index,
		SeatNumber: order.SeatOrDefault(pos),
	}
	res.Attendee.SeatNumber = res.SeatNumber

	outcome, err := s.sendTicket(ctx, order, pos)
	res.Artifact = outcome.artifact
	res.Notification = outcome.notification
	if err != nil {
		return res, err
	}
	if !res.Notification.Sent {
		return res, utils.NotificationError(errors.New(res.Notification.Error))
	}
	s.log.WithFields(s.fields(order, attendeeID)).Info("✅ ticket re-sent")
	return res, nil
}
