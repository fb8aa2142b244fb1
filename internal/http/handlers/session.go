package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nkeinfinity/internal/apiclient"
	applog "nkeinfinity/internal/log"
	"nkeinfinity/internal/session"
)

const (
	sidCookie = "sid"
	holderKey = "holder"
)

// Sessions binds browser sessions to stored API tokens.
type Sessions struct {
	Store  session.Store
	TTL    time.Duration
	Secure bool
}

func (s *Sessions) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   s.Secure,
		})
	}
	return sid
}

func (s *Sessions) expireCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.Secure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (s *Sessions) bind(sid string) session.Holder {
	return session.Bind(s.Store, sid, s.TTL)
}

// Holder returns the request's session holder, binding it on first use.
func (s *Sessions) Holder(c *fiber.Ctx) session.Holder {
	if h, ok := c.Locals(holderKey).(session.Holder); ok {
		return h
	}
	h := s.bind(c.Cookies(sidCookie))
	c.Locals(holderKey, h)
	return h
}

// clientFor returns base bound to the request's session token.
func clientFor(c *fiber.Ctx, base *apiclient.Client) *apiclient.Client {
	h, _ := c.Locals(holderKey).(session.Holder)
	return base.As(h)
}

// sessionExpired drops the session token and sends the admin back to login.
func sessionExpired(c *fiber.Ctx) error {
	if h, ok := c.Locals(holderKey).(session.Holder); ok {
		_ = h.Clear(c.UserContext())
	}
	applog.Security(c, "session.expired", nil)
	return c.Redirect("/login?expired=1")
}
