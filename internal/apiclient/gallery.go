package apiclient

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/domain"
)

type galleryEnvelope struct {
	Images []domain.GalleryImage `json:"images"`
}

type galleryImageEnvelope struct {
	Image *domain.GalleryImage `json:"image"`
}

func (c *Client) Gallery(ctx context.Context) ([]domain.GalleryImage, error) {
	var out galleryEnvelope
	err := c.do(ctx, request{method: fiber.MethodGet, path: "/admin/gallery"}, &out)
	return out.Images, err
}

func (c *Client) AddGalleryImage(ctx context.Context, f File) (*domain.GalleryImage, error) {
	var out galleryImageEnvelope
	err := c.do(ctx, request{
		method: fiber.MethodPost,
		path:   "/admin/gallery",
		files:  []part{{field: "image", file: f}},
	}, &out)
	return out.Image, err
}

func (c *Client) DeleteGalleryImage(ctx context.Context, id string) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "/admin/gallery/" + url.PathEscape(id)}, nil)
}
