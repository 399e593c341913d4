package middleware

import (
	"context"
	"strings"

	"Backend-Celestia-Admin/src/utils"

	"github.com/gofiber/fiber/v2"
)

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*utils.JWTClaims, error)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// AuthJWT only lets organizer tokens through.
func AuthJWT(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, ok := BearerToken(c)
		if !ok {
			return utils.HandleError(c, utils.UnauthorizedError("Missing or invalid Authorization header"))
		}

		claims, err := verifier.Verify(c.UserContext(), tokenStr)
		if err != nil {
			return utils.HandleError(c, err)
		}
		if claims.Role != utils.RoleOrganizer {
			return utils.HandleError(c, utils.ForbiddenError("Organizer access required"))
		}

		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}
