package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geloraapp/gelora/internal/pkg/logging"
)

// RequestIDLogMiddleware copies the Fiber request ID into the user context.
// Handlers pass c.UserContext() down, so services can tag their log lines
// with logging.Tag and the per-route timeout deadline reaches them too.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid, ok := c.Locals("requestid").(string)
		if !ok || rid == "" {
			return c.Next()
		}

		c.SetUserContext(logging.WithRequestID(c.Context(), rid))
		return c.Next()
	}
}
