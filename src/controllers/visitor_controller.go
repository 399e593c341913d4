package controllers

import (
	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateVisitor godoc
// @Summary      Register a walk-in visitor group and mail its pass
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.Visitor true "Visitor"
// @Success      201  {object}  visitors.CreateResult
// @Failure      400  {object}  models.ErrorResponse
// @Router       /visitors [post]
func (h *Handlers) CreateVisitor(c *fiber.Ctx) error {
	var v models.Visitor
	if err := c.BodyParser(&v); err != nil {
		return utils.HandleError(c, utils.ValidationError("Invalid input: "+err.Error()))
	}

	res, err := h.Visitors.Create(c.UserContext(), &v)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":            "Visitor added successfully",
		"visitor":            res.Visitor,
		"passError":          res.PassError,
		"notificationResult": res.Notification,
	})
}

// GetVisitors godoc
// @Summary      List visitors
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Visitor
// @Router       /visitors [get]
func (h *Handlers) GetVisitors(c *fiber.Ctx) error {
	list, err := h.Visitors.List(c.UserContext())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(list)
}

// ApproveVisitor godoc
// @Summary      Approve a visitor group and mail its QR code
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.VisitorApproveRequest true "Visitor"
// @Success      200  {object}  visitors.ApprovalResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /visitors/approve [patch]
func (h *Handlers) ApproveVisitor(c *fiber.Ctx) error {
	var req models.VisitorApproveRequest
	if err := h.parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	res, err := h.Visitors.Approve(c.UserContext(), req.VisitorID)
	if err != nil && res == nil {
		return utils.HandleError(c, err)
	}
	body := fiber.Map{
		"message":      "Visitor approved and email sent successfully",
		"visitor":      res.Visitor,
		"stateChanged": res.StateChanged,
		"emailResult":  res.Notification,
	}
	if err != nil {
		appErr := utils.AsAppError(err)
		body["status"] = appErr.HTTPStatus()
		body["error"] = appErr.Message
		body["message"] = "Visitor approved but the QR code could not be generated"
		return c.Status(appErr.HTTPStatus()).JSON(body)
	}
	if !res.Notification.Sent {
		body["message"] = "Visitor approved but the email could not be sent"
	}
	return c.JSON(body)
}

// DeleteVisitor godoc
// @Summary      Delete a visitor by index
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        index query string true "Visitor index"
// @Success      200
// @Failure      404  {object}  models.ErrorResponse
// @Router       /visitors [delete]
func (h *Handlers) DeleteVisitor(c *fiber.Ctx) error {
	v, err := h.Visitors.DeleteByIndex(c.UserContext(), c.Query("index"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Visitor deleted successfully",
		"visitor": v,
	})
}
