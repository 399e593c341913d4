package routes

import (
	"Backend-Celestia-Admin/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func visitorRoutes(app *fiber.App, h *controllers.Handlers, auth fiber.Handler) {
	visitorRoutes := app.Group("/visitors", auth)
	visitorRoutes.Get("/", h.GetVisitors)
	visitorRoutes.Post("/", h.CreateVisitor)
	visitorRoutes.Patch("/approve", h.ApproveVisitor)
	visitorRoutes.Delete("/", h.DeleteVisitor)
}
