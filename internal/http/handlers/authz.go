package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "nkeinfinity/internal/log"
	"nkeinfinity/internal/services"
	"nkeinfinity/internal/validate"
)

// LoadAdmin exposes the signed-in admin to every page.
func LoadAdmin(s *Sessions, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Cookies(sidCookie) == "" {
			return c.Next()
		}
		email, ok, err := auth.CurrentAdmin(c.UserContext(), s.Holder(c))
		if err == nil && ok {
			c.Locals(applog.AdminKey, adminName(email))
		}
		return c.Next()
	}
}

// RequireAdmin lets requests through only with a live session token.
func RequireAdmin(s *Sessions, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Cookies(sidCookie) == "" {
			return c.Redirect("/login")
		}
		email, ok, err := auth.CurrentAdmin(c.UserContext(), s.Holder(c))
		if err != nil {
			return err
		}
		if !ok {
			applog.Security(c, "access.denied.admin", nil)
			return c.Redirect("/login?expired=1")
		}
		c.Locals(applog.AdminKey, adminName(email))
		return c.Next()
	}
}

func adminName(email string) string {
	if email != "" {
		return email
	}
	return "admin"
}

// ValidID answers 404 for :id parameters that are not plain resource ids,
// before any backend path is built from them.
func ValidID(c *fiber.Ctx) error {
	raw := c.Params("id")
	if id, ok := validate.ID(raw); !ok || id != raw {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return notFound(c, "Not found")
	}
	return c.Next()
}
