package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		// Default cache times by endpoint pattern
		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0" // GraphQL varies wildly

		case path == "/v1/provinces":
			ttl = "public, max-age=3600" // Provinces barely change

		case strings.HasPrefix(path, "/v1/posts"):
			ttl = "public, max-age=600" // Editorial content: 10 min

		case strings.HasPrefix(path, "/v1/courts/mine"),
			strings.HasPrefix(path, "/v1/complaints"),
			strings.HasPrefix(path, "/v1/admin/"):
			ttl = "private, max-age=0" // Caller-specific data

		case strings.HasPrefix(path, "/v1/courts/"):
			ttl = "public, max-age=300" // 5 min for single court

		case strings.HasPrefix(path, "/v1/games"):
			ttl = "public, max-age=60" // Games change as players join

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300" // 5 min default for API endpoints
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
