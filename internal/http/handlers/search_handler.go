package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/listing"
	"nkeinfinity/internal/log"
	"nkeinfinity/internal/services"
	"nkeinfinity/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Products": nil, "Count": 0})
	}
	if _, ok := validate.Q(rawQ); !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q"})
		return render(c.Status(fiber.StatusBadRequest), "search", fiber.Map{
			"Q": "", "Category": c.Query("category"), "Err": "Search text is too long (50 characters at most)",
		})
	}
	q := listing.ProductQuery{Search: rawQ, Category: c.Query("category")}

	l := listing.New(listing.ProductID)
	if err := l.Load(c.UserContext(), func(ctx context.Context) ([]domain.Product, error) {
		return h.Catalog.Products(ctx, "")
	}, "Could not load results. Please retry."); err != nil {
		log.Error(c, "search.error", err, nil)
		return failPage(c, fiber.StatusBadGateway, l.Err)
	}
	products := l.Filter(q.Match())
	return render(c, "search", fiber.Map{
		"Q": rawQ, "Category": q.Category, "Products": products, "Count": len(products),
	})
}
