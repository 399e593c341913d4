package routes

import (
	"Backend-Celestia-Admin/src/controllers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

func InitRoutes(app *fiber.App, h *controllers.Handlers, auth fiber.Handler) {
	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
	app.Get("/swagger/*", swagger.HandlerDefault)

	authRoutes(app, h, auth)
	approvalRoutes(app, h, auth)
	checkInRoutes(app, h, auth)
	reportRoutes(app, h, auth)
	visitorRoutes(app, h, auth)
}
