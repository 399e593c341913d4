package controllers

import (
	"Backend-Celestia-Admin/src/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCheckInStats godoc
// @Summary      Live check-in numbers
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.CheckInStats
// @Router       /checkin-stats [get]
func (h *Handlers) GetCheckInStats(c *fiber.Ctx) error {
	stats, err := h.Reports.ComputeCheckInStats(c.UserContext())
	if err != nil {
		return utils.HandleError(c, err)
	}
	utils.NoCache(c)
	return c.JSON(stats)
}

// GetApprovalStats godoc
// @Summary      Approval totals
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.ApprovalStats
// @Router       /stats [get]
func (h *Handlers) GetApprovalStats(c *fiber.Ctx) error {
	stats, err := h.Reports.ComputeApprovalStats(c.UserContext())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(stats)
}

// GetAttendees godoc
// @Summary      Every attendee with its seat and order NIC
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]models.FlatAttendee
// @Router       /attendees [get]
func (h *Handlers) GetAttendees(c *fiber.Ctx) error {
	utils.NoCache(c)
	list, err := h.Reports.ListAttendees(c.UserContext())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"users": list})
}
