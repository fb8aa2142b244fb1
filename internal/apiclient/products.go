package apiclient

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/domain"
)

// ProductUpload is the multipart payload for add and edit.
type ProductUpload struct {
	Name        string
	Brand       string
	Category    string
	Price       string
	ModelNo     string
	Warranty    string
	StockStatus string
	Description string
	Specs       []string
	// ExistingImages is sent on edit only: the kept subset of the stored images.
	ExistingImages []domain.ImageRef
	Images         []File
}

func (u ProductUpload) fields(edit bool) ([]field, error) {
	specs, err := json.Marshal(nonNil(u.Specs))
	if err != nil {
		return nil, err
	}
	out := []field{
		{"name", u.Name},
		{"brand", u.Brand},
		{"category", u.Category},
		{"price", u.Price},
		{"modelNo", u.ModelNo},
		{"warranty", u.Warranty},
		{"stockStatus", u.StockStatus},
		{"description", u.Description},
		{"specs", string(specs)},
	}
	if edit {
		imgs := u.ExistingImages
		if imgs == nil {
			imgs = []domain.ImageRef{}
		}
		b, err := json.Marshal(imgs)
		if err != nil {
			return nil, err
		}
		out = append(out, field{"existingImages", string(b)})
	}
	return out, nil
}

func (u ProductUpload) parts() []part {
	out := make([]part, 0, len(u.Images))
	for _, f := range u.Images {
		out = append(out, part{field: "images", file: f})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type productEnvelope struct {
	Product *domain.Product `json:"product"`
}

type productsEnvelope struct {
	Products []domain.Product `json:"products"`
}

// AddProduct creates a product with its images in one multipart request.
func (c *Client) AddProduct(ctx context.Context, u ProductUpload) (*domain.Product, error) {
	fields, err := u.fields(false)
	if err != nil {
		return nil, err
	}
	var out productEnvelope
	err = c.do(ctx, request{method: fiber.MethodPost, path: "/admin/products/add", fields: fields, files: u.parts()}, &out)
	return out.Product, err
}

// Products lists every product for the admin views.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out productsEnvelope
	err := c.do(ctx, request{method: fiber.MethodGet, path: "/admin/products/all"}, &out)
	return out.Products, err
}

// PublicProducts lists products for the public catalogue.
func (c *Client) PublicProducts(ctx context.Context) ([]domain.Product, error) {
	var out productsEnvelope
	err := c.do(ctx, request{method: fiber.MethodGet, path: "/products"}, &out)
	return out.Products, err
}

func (c *Client) Product(ctx context.Context, id string) (domain.Product, error) {
	var out productEnvelope
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "/admin/products/" + url.PathEscape(id)}, &out); err != nil {
		return domain.Product{}, err
	}
	if out.Product == nil {
		return domain.Product{}, &Error{Status: fiber.StatusNotFound, Message: "Product not found"}
	}
	return *out.Product, nil
}

// UpdateProduct replaces a product's fields. The returned product is nil when
// the backend does not echo it.
func (c *Client) UpdateProduct(ctx context.Context, id string, u ProductUpload) (*domain.Product, error) {
	fields, err := u.fields(true)
	if err != nil {
		return nil, err
	}
	var out productEnvelope
	err = c.do(ctx, request{
		method: fiber.MethodPut,
		path:   "/admin/products-edit/" + url.PathEscape(id),
		fields: fields,
		files:  u.parts(),
	}, &out)
	return out.Product, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, request{method: fiber.MethodDelete, path: "/admin/products-del/" + url.PathEscape(id)}, nil)
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var out productsEnvelope
	err := c.do(ctx, request{method: fiber.MethodGet, path: "/category/" + url.PathEscape(category)}, &out)
	return out.Products, err
}
