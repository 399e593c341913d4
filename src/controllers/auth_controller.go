package controllers

import (
	"Backend-Celestia-Admin/src/middleware"
	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/utils"

	"github.com/gofiber/fiber/v2"
)

// Login godoc
// @Summary      Organizer login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  auth.LoginResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      429  {object}  models.ErrorResponse
// @Router       /auth/login [post]
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := h.parseBody(c, &req); err != nil {
		return utils.HandleError(c, err)
	}

	res, err := h.Auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return utils.HandleError(c, err)
	}

	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	return c.JSON(fiber.Map{
		"message":   "Login successful",
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user": fiber.Map{
			"username": res.Username,
			"role":     res.Role,
		},
	})
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/logout [post]
func (h *Handlers) Logout(c *fiber.Ctx) error {
	token, ok := middleware.BearerToken(c)
	if !ok {
		return utils.HandleError(c, utils.UnauthorizedError("Missing or invalid Authorization header"))
	}
	if err := h.Auth.Logout(c.UserContext(), token); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}
