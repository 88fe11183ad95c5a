// Package middleware carries the Fiber middleware shared across routes.
package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/omarsaleh/bankd/config"
)

// JwtProtected guards a route with bearer-token verification. The verified
// *jwt.Token lands in c.Locals("user").
func JwtProtected(cfg config.JwtConfig) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "missing or malformed") {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "Missing or malformed JWT"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"message": "Invalid or expired JWT"})
}
