package routes

import (
	"Backend-Celestia-Admin/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func approvalRoutes(app *fiber.App, h *controllers.Handlers, auth fiber.Handler) {
	app.Patch("/approve", auth, h.ApproveAttendee)
	app.Post("/approve/resend", auth, h.ResendTicket)
	app.Patch("/reject", auth, h.RejectAttendee)
	app.Delete("/attendees", auth, h.DeleteAttendee)
}
