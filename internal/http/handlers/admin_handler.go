package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/apiclient"
	applog "nkeinfinity/internal/log"
	"nkeinfinity/internal/services"
)

type AdminHandler struct {
	API       *apiclient.Client
	Dashboard *services.DashboardService
}

// GET /admin
func (h *AdminHandler) Home(c *fiber.Ctx) error {
	d, err := h.Dashboard.Load(c.UserContext(), clientFor(c, h.API))
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return sessionExpired(c)
	}
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return failPage(c, fiber.StatusBadGateway, "Could not load the dashboard")
	}
	return render(c, "admin_dashboard", fiber.Map{"D": d})
}
