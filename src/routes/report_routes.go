package routes

import (
	"Backend-Celestia-Admin/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func reportRoutes(app *fiber.App, h *controllers.Handlers, auth fiber.Handler) {
	app.Get("/attendees", auth, h.GetAttendees)
	app.Get("/checkin-stats", auth, h.GetCheckInStats)
	app.Get("/stats", auth, h.GetApprovalStats)
}
