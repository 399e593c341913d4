package controllers

import (
	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/utils"

	"github.com/gofiber/fiber/v2"
)

// ApproveAttendee godoc
// @Summary      Approve an attendee and mail the ticket
// @Description  The approval is kept even when the ticket mail fails; notificationResult reports the mail.
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.AttendeeActionRequest true "Attendee"
// @Success      200  {object}  approvals.ApprovalResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /approve [patch]
func (h *Handlers) ApproveAttendee(c *fiber.Ctx) error {
	var req models.AttendeeActionRequest
	if err := h.parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	res, err := h.Approvals.Approve(c.UserContext(), req.ID())
	if err != nil && res == nil {
		return utils.HandleError(c, err)
	}

	body := fiber.Map{
		"message":            "User approved successfully",
		"approvedAttendee":   res.Attendee,
		"seatNumber":         res.SeatNumber,
		"stateChanged":       res.StateChanged,
		"artifact":           res.Artifact,
		"notificationResult": res.Notification,
	}
	if err != nil {
		// approved, but no ticket could be produced
		appErr := utils.AsAppError(err)
		utils.RequestLogger(c).WithField("attendeeId", req.ID()).WithError(err).Error("❌ approval side effect failed")
		body["status"] = appErr.HTTPStatus()
		body["error"] = appErr.Message
		body["message"] = "User approved but the ticket could not be generated"
		return c.Status(appErr.HTTPStatus()).JSON(body)
	}
	if !res.Notification.Sent {
		body["message"] = "User approved but the email could not be sent"
	}
	return c.JSON(body)
}

// RejectAttendee godoc
// @Summary      Reject an attendee and free the seat
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.AttendeeActionRequest true "Attendee"
// @Success      200  {object}  approvals.RejectionResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /reject [patch]
func (h *Handlers) RejectAttendee(c *fiber.Ctx) error {
	var req models.AttendeeActionRequest
	if err := h.parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	res, err := h.Approvals.Reject(c.UserContext(), req.ID())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":            "User rejected successfully",
		"rejectedAttendee":   res.Attendee,
		"seatNumber":         res.SeatNumber,
		"seatReleased":       res.SeatReleased,
		"stateChanged":       res.StateChanged,
		"notificationResult": res.Notification,
	})
}

// ResendTicket godoc
// @Summary      Mail the ticket of an approved attendee again
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.AttendeeActionRequest true "Attendee"
// @Success      200  {object}  approvals.ApprovalResult
// @Failure      403  {object}  models.ErrorResponse
// @Failure      502  {object}  models.ErrorResponse
// @Router       /approve/resend [post]
func (h *Handlers) ResendTicket(c *fiber.Ctx) error {
	var req models.AttendeeActionRequest
	if err := h.parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	res, err := h.Approvals.ResendTicket(c.UserContext(), req.ID())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":            "Ticket sent",
		"seatNumber":         res.SeatNumber,
		"notificationResult": res.Notification,
	})
}

// DeleteAttendee godoc
// @Summary      Remove an attendee and its seat from the order
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Param        id query string true "Attendee ID"
// @Success      200  {object}  approvals.DeleteResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /attendees [delete]
func (h *Handlers) DeleteAttendee(c *fiber.Ctx) error {
	res, err := h.Approvals.Delete(c.UserContext(), c.Query("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
		"result":  res,
	})
}
