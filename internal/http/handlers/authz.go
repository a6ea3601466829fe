package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shoplite/internal/domain"
	applog "shoplite/internal/log"
	"shoplite/internal/services"
)

// userToken pulls the caller identity. The header is primary; the login
// cookie is honored as a fallback.
func userToken(c *fiber.Ctx) string {
	if tok := c.Get("x-user-token"); tok != "" {
		return tok
	}
	return c.Cookies("x-user-token")
}

// RequireUser resolves the token to a user and stashes it in Locals.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := userToken(c)
		if tok == "" {
			return fail(c, fiber.StatusUnauthorized, "please log in first")
		}
		u, err := auth.Check(tok)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.user", nil)
			return fail(c, fiber.StatusUnauthorized, "please log in first")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin additionally enforces administrator level.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := userToken(c)
		if tok == "" {
			return fail(c, fiber.StatusUnauthorized, "please log in first")
		}
		u, err := auth.Check(tok)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.admin", nil)
			return fail(c, fiber.StatusUnauthorized, "please log in first")
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"level": u.Level})
			return fail(c, fiber.StatusForbidden, "insufficient privileges")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
