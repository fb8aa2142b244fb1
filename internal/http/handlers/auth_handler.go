package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/forms"
	"nkeinfinity/internal/log"
	"nkeinfinity/internal/services"
	"nkeinfinity/internal/validate"
)

const expiredMessage = "Your session has expired. Please login again."

type AuthHandler struct {
	Auth     *services.AuthService
	Sessions *Sessions
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	msg := ""
	if c.Query("expired") == "1" {
		msg = expiredMessage
	}
	return render(c, "login", fiber.Map{"Err": msg})
}

func (h *AuthHandler) loginFailed(c *fiber.Ctx, status int, email, msg string) error {
	return render(c.Status(status), "login", fiber.Map{"Err": msg, "Email": email})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := h.Sessions.ensureSID(c)
	email, ok := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return h.loginFailed(c, fiber.StatusUnauthorized, email, "Invalid email or password")
	}
	if !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return h.loginFailed(c, fiber.StatusUnauthorized, email, "Invalid email or password")
	}

	who, err := h.Auth.Login(c.UserContext(), h.Sessions.bind(sid), email, pass)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrBadCreds):
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return h.loginFailed(c, fiber.StatusUnauthorized, email, "Invalid email or password")
	case errors.Is(err, services.ErrNotAdmin):
		log.Security(c, "auth.login.not_admin", map[string]any{"email": email})
		return h.loginFailed(c, fiber.StatusForbidden, email, err.Error())
	case errors.Is(err, services.ErrExpired):
		log.Security(c, "auth.login.expired_token", map[string]any{"email": email})
		return h.loginFailed(c, fiber.StatusUnauthorized, email, err.Error())
	default:
		log.Error(c, "auth.login.error", err, map[string]any{"email": email})
		return h.loginFailed(c, fiber.StatusBadGateway, email, forms.Message(err, "Login failed. Please try again."))
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": who})
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.Auth.Logout(c.UserContext(), h.Sessions.Holder(c))
	h.Sessions.expireCookie(c)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}
