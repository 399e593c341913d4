// error_utils.go
package utils

import (
	"errors"

	"Backend-Celestia-Admin/src/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// LoggerKey is the fiber.Locals key holding the request's *logrus.Entry.
const LoggerKey = "logger"

// RequestLogger returns the entry stored by the request logging middleware.
func RequestLogger(c *fiber.Ctx) *logrus.Entry {
	if entry, ok := c.Locals(LoggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// HandleError writes err as the standard error body. Internal details never leave the process.
func HandleError(c *fiber.Ctx, err error) error {
	appErr := AsAppError(err)
	status := appErr.HTTPStatus()
	msg := appErr.Message
	if appErr.Kind == KindNotification && appErr.Err != nil {
		msg = appErr.Error()
	}

	entry := RequestLogger(c).WithFields(logrus.Fields{
		"status": status,
		"kind":   appErr.Kind.String(),
	})
	for _, key := range []string{"attendeeId", "index", "id", "visitorId"} {
		if v := c.Query(key); v != "" {
			entry = entry.WithField(key, v)
		}
	}
	switch appErr.Kind {
	case KindInternal, KindArtifactGeneration:
		entry.WithError(err).Error("❌ request failed")
	case KindNotification, KindConflict, KindRateLimited:
		entry.WithError(err).Warn("⚠️ request failed")
	default:
		entry.WithError(err).Info("request rejected")
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Status: status,
		Error:  msg,
	})
}

// FiberErrorHandler keeps fiber's own errors (unknown route, bad method) at their status
// and sends everything else through HandleError.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Status: fe.Code, Error: fe.Message})
	}
	return HandleError(c, err)
}

// NoCache marks a response as a live feed that must not be cached.
func NoCache(c *fiber.Ctx) {
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set("Surrogate-Control", "no-store")
}
