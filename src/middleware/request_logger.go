package middleware

import (
	"time"

	"Backend-Celestia-Admin/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)

		entry := log.WithField("requestId", requestID)
		c.Locals(utils.LoggerKey, entry)

		err := c.Next()

		fields := logrus.Fields{
			"method":    c.Method(),
			"path":      c.Path(),
			"status":    c.Response().StatusCode(),
			"latencyMs": time.Since(start).Milliseconds(),
			"ip":        c.IP(),
		}
		if username, ok := c.Locals("username").(string); ok {
			fields["username"] = username
		}
		entry.WithFields(fields).Info("request")
		return err
	}
}
