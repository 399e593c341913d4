package controllers

import (
	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/tickets"
	"Backend-Celestia-Admin/src/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCheckIn godoc
// @Summary      Look up an order at the door
// @Tags         checkin
// @Produce      json
// @Security     BearerAuth
// @Param        index query string true "Order NIC"
// @Success      200  {object}  checkins.LookupResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /checkin [get]
func (h *Handlers) GetCheckIn(c *fiber.Ctx) error {
	res, err := h.CheckIns.Lookup(c.UserContext(), c.Query("index"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}

// ToggleCheckIn godoc
// @Summary      Check the order's primary attendee in or out
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        index query string true "Order NIC"
// @Param        body body models.CheckInRequest true "Seat and identity key"
// @Success      200  {object}  checkins.ToggleResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /checkin [post]
func (h *Handlers) ToggleCheckIn(c *fiber.Ctx) error {
	var req models.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, utils.ValidationError("Invalid input: "+err.Error()))
	}

	res, err := h.CheckIns.ToggleCheckIn(c.UserContext(), c.Query("index"), req.SeatNumber, req.Key())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}

// SetCheckIn godoc
// @Summary      Check in the attendee shown on a scanned ticket
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.SetCheckInRequest true "Ticket identity"
// @Success      200  {object}  checkins.ScanResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /setCheckIn [post]
func (h *Handlers) SetCheckIn(c *fiber.Ctx) error {
	var req models.SetCheckInRequest
	if err := h.parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	res, err := h.CheckIns.ScanCheckIn(c.UserContext(), tickets.Identity{
		Username:   req.Username,
		Contact:    req.ContactValue(),
		Department: req.Department,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}

// Scan godoc
// @Summary      Check in from the raw QR code text
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.ScanRequest true "QR code text"
// @Success      200  {object}  checkins.ScanResult
// @Failure      400  {object}  models.ErrorResponse
// @Router       /scan [post]
func (h *Handlers) Scan(c *fiber.Ctx) error {
	var req models.ScanRequest
	if err := h.parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	res, err := h.CheckIns.ScanRaw(c.UserContext(), req.Payload)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(res)
}
