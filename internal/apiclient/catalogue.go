package apiclient

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/domain"
)

type catalogueEnvelope struct {
	Catalogue *domain.Catalogue `json:"catalogue"`
}

// UploadCatalogue creates or replaces the PDF catalogue of a category.
func (c *Client) UploadCatalogue(ctx context.Context, category string, f File) (*domain.Catalogue, error) {
	var out catalogueEnvelope
	err := c.do(ctx, request{
		method: fiber.MethodPost,
		path:   "/admin/category-catalogue/upload",
		fields: []field{{"category", category}},
		files:  []part{{field: "categoryCatalogue", file: f}},
	}, &out)
	return out.Catalogue, err
}

// Catalogue returns the category's catalogue, or nil when it has none.
func (c *Client) Catalogue(ctx context.Context, category string) (*domain.Catalogue, error) {
	var out catalogueEnvelope
	err := c.do(ctx, request{method: fiber.MethodGet, path: "/category-catalogue/" + url.PathEscape(category)}, &out)
	if err != nil {
		return nil, err
	}
	if out.Catalogue != nil && out.Catalogue.Category == "" {
		out.Catalogue.Category = category
	}
	return out.Catalogue, nil
}

func (c *Client) DeleteCatalogue(ctx context.Context, category string) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "/admin/category-catalogue/" + url.PathEscape(category)}, nil)
}
