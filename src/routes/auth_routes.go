package routes

import (
	"Backend-Celestia-Admin/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(app *fiber.App, h *controllers.Handlers, auth fiber.Handler) {
	authRoutes := app.Group("/auth")
	authRoutes.Post("/login", h.Login)
	authRoutes.Post("/logout", auth, h.Logout)
}
