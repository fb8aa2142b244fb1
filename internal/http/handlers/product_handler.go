package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/forms"
	"nkeinfinity/internal/log"
	"nkeinfinity/internal/services"
)

func urlEscape(s string) string { return url.QueryEscape(s) }

func urlUnescape(s string) (string, error) { return url.PathUnescape(s) }

// ProductHandler serves the public product page and its enquiry form.
type ProductHandler struct {
	Catalog *services.CatalogService
	API     *apiclient.Client
}

func (h *ProductHandler) load(c *fiber.Ctx) (domain.Product, error) {
	p, err := h.Catalog.Product(c.UserContext(), c.Params("id"))
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		log.Error(c, "product.load.fail", err, map[string]any{"product_id": c.Params("id")})
	}
	return p, err
}

// loadFailed answers a failed product lookup: 404 for a missing product,
// 502 when the catalogue could not be reached.
func loadFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "This item is no longer available")
	}
	return failPage(c, fiber.StatusBadGateway, "Could not load this product. Please try again.")
}

func (h *ProductHandler) page(c *fiber.Ctx, p domain.Product, data fiber.Map) error {
	data["P"] = p
	data["Catalogue"] = h.Catalog.Catalogue(c.UserContext(), p.Category)
	if _, ok := data["Enquiry"]; !ok {
		data["Enquiry"] = forms.NewEnquiryDraft(p.Name)
	}
	return render(c, "product", data)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	p, err := h.load(c)
	if err != nil {
		return loadFailed(c, err)
	}
	return h.page(c, p, fiber.Map{})
}

// Enquire handles the "enquire about this product" form.
func (h *ProductHandler) Enquire(c *fiber.Ctx) error {
	p, err := h.load(c)
	if err != nil {
		return loadFailed(c, err)
	}
	d := forms.NewEnquiryDraft(p.Name)
	for _, f := range []string{"name", "email", "phone", "company", "message"} {
		d.SetField(f, c.FormValue(f))
	}
	out := d.Submit(c.UserContext(), h.API)
	switch {
	case out.Errors.Any():
		log.Security(c, "validation.fail", map[string]any{"form": "enquiry", "fields": out.Errors.Fields()})
		return h.page(c.Status(fiber.StatusUnprocessableEntity), p, fiber.Map{"Enquiry": d, "ShowEnquiry": true})
	case out.Err != "":
		log.Info(c, "enquiry.submit.fail", map[string]any{"product": p.Name, "err": out.Err})
		return h.page(c.Status(fiber.StatusBadGateway), p, fiber.Map{"Enquiry": d, "ShowEnquiry": true, "EnquiryErr": out.Err})
	}
	log.Audit(c, "enquiry.submit", map[string]any{"product": p.Name})
	return h.page(c, p, fiber.Map{"Notice": forms.ThankYou})
}
