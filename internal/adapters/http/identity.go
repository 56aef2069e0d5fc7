package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geloraapp/gelora/internal/core/domain"
)

// Identity arrives as opaque headers set by the upstream auth gateway. An
// empty user id means the caller is anonymous.
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	roleAdmin = "admin"
)

func userID(c *fiber.Ctx) string {
	return c.Get(headerUserID)
}

func isAdmin(c *fiber.Ctx) bool {
	return c.Get(headerUserRole) == roleAdmin
}

// requireUser rejects anonymous callers before the handler runs. The sentinel
// goes through mapDomainError at the call site; writing the response here
// would return fiber's nil and let the handler body run with an empty id.
func requireUser(c *fiber.Ctx) (string, error) {
	uid := userID(c)
	if uid == "" {
		return "", domain.ErrUnauthenticated
	}
	return uid, nil
}

// requireAdmin guards admin-only routes.
func requireAdmin(handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isAdmin(c) {
			return errForbidden(c, "admin role required")
		}
		return handler(c)
	}
}
