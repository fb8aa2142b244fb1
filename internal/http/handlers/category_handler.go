package handlers

import (
	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/log"
	"nkeinfinity/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

const featuredCount = 4

func (h *CategoryHandler) Home(c *fiber.Ctx) error {
	var featured []domain.Product
	if ps, err := h.Catalog.Products(c.UserContext(), ""); err == nil {
		featured = ps
		if len(featured) > featuredCount {
			featured = featured[:featuredCount]
		}
	} else {
		log.Error(c, "home.products.fail", err, nil)
	}
	return render(c, "home", fiber.Map{"Featured": featured})
}

// List shows the public catalogue, optionally narrowed to ?category=.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")
	if category != "" && !domain.IsCategory(category) {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		category = ""
	}
	data := fiber.Map{"Category": category, "Categories": h.Catalog.Categories()}
	products, err := h.Catalog.Products(c.UserContext(), category)
	if err != nil {
		log.Error(c, "products.list.fail", err, map[string]any{"category": category})
		data["Err"] = "Could not load products. Please retry."
	}
	data["Products"] = products
	if category != "" {
		data["Catalogue"] = h.Catalog.Catalogue(c.UserContext(), category)
	}
	return render(c, "products", data)
}

// ByName keeps /category/<name> links working.
func (h *CategoryHandler) ByName(c *fiber.Ctx) error {
	name, err := urlUnescape(c.Params("name"))
	if err != nil || !domain.IsCategory(name) {
		return notFound(c, "Category not found")
	}
	return c.Redirect("/products?category=" + urlEscape(name))
}
