package handlers

import (
	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/forms"
	"nkeinfinity/internal/log"
	"nkeinfinity/internal/services"
)

const contactThanks = "Thank you for contacting us! We will get back to you soon."

// PagesHandler serves the static marketing pages and the contact form.
type PagesHandler struct {
	Contacts *services.ContactService
}

func (h *PagesHandler) About(c *fiber.Ctx) error   { return render(c, "about", nil) }
func (h *PagesHandler) Clients(c *fiber.Ctx) error { return render(c, "clients", nil) }

func (h *PagesHandler) ContactForm(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{"Form": forms.NewContactDraft()})
}

func (h *PagesHandler) Contact(c *fiber.Ctx) error {
	d := forms.NewContactDraft()
	for _, f := range []string{"name", "email", "phone", "company", "gstNumber", "message"} {
		d.SetField(f, c.FormValue(f))
	}
	out := d.Submit(c.UserContext(), h.Contacts)
	switch {
	case out.Errors.Any():
		log.Security(c, "validation.fail", map[string]any{"form": "contact", "fields": out.Errors.Fields()})
		return render(c.Status(fiber.StatusUnprocessableEntity), "contact", fiber.Map{"Form": d})
	case out.Err != "":
		return render(c.Status(fiber.StatusInternalServerError), "contact", fiber.Map{"Form": d, "Err": out.Err})
	}
	log.Audit(c, "contact.submit", nil)
	return render(c, "contact", fiber.Map{"Form": d, "Notice": contactThanks})
}
