package routes

import (
	"Backend-Celestia-Admin/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func checkInRoutes(app *fiber.App, h *controllers.Handlers, auth fiber.Handler) {
	app.Get("/checkin", auth, h.GetCheckIn)
	app.Post("/checkin", auth, h.ToggleCheckIn)
	app.Post("/setCheckIn", auth, h.SetCheckIn)
	app.Post("/scan", auth, h.Scan)
}
