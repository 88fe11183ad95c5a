package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/omarsaleh/bankd/config"
	accountsvc "github.com/omarsaleh/bankd/pkg/service/account"
	authsvc "github.com/omarsaleh/bankd/pkg/service/auth"
)

// New builds the Fiber app with all routes and middleware.
func New(
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.AppConfig,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default to 500 if status code cannot be determined
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ProblemDetailsJSON(c, status, "Internal Server Error", nil)
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ProblemDetailsJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	AccountRoutes(app, accountSvc, authSvc, cfg)

	return app
}
