package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/forms"
	applog "nkeinfinity/internal/log"
	"nkeinfinity/internal/listing"
	"nkeinfinity/internal/services"
)

// ContactHandler manages contact messages and customer passwords.
type ContactHandler struct {
	Contacts *services.ContactService
}

func (h *ContactHandler) load(c *fiber.Ctx) *listing.List[domain.Contact] {
	l := listing.New(listing.ContactID)
	if err := l.Load(c.UserContext(), h.Contacts.List, "Failed to load contacts"); err != nil {
		applog.Error(c, "admin.contacts.list.fail", err, nil)
	}
	return l
}

func (h *ContactHandler) list(c *fiber.Ctx, status int, l *listing.List[domain.Contact], data fiber.Map) error {
	q := listing.ContactQuery{Search: c.FormValue("q"), Type: c.FormValue("filter")}
	data["Contacts"] = l.Filter(q.Match())
	data["Total"] = l.Len()
	data["Query"] = q
	data["Statuses"] = domain.ContactStatuses
	if l.Err != "" {
		data["Err"] = l.Err
	}
	return render(c.Status(status), "admin_contacts", data)
}

// GET /admin/contacts
func (h *ContactHandler) List(c *fiber.Ctx) error {
	return h.list(c, fiber.StatusOK, h.load(c), fiber.Map{})
}

// GET /admin/contacts/:id
func (h *ContactHandler) Detail(c *fiber.Ctx) error {
	l := h.load(c)
	ct, ok := l.View(c.Params("id"))
	if !ok {
		return notFound(c, "Contact not found")
	}
	return render(c, "admin_contact", fiber.Map{"C": ct})
}

// POST /admin/contacts/:id/status
func (h *ContactHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if !domain.IsContactStatus(status) {
		applog.Security(c, "validation.fail", map[string]any{"field": "status", "value": status})
		return c.Status(fiber.StatusBadRequest).SendString("invalid status")
	}
	l := h.load(c)
	err := l.Mutate(c.UserContext(), id,
		func(ctx context.Context) (*domain.Contact, error) { return h.Contacts.UpdateStatus(ctx, id, status) },
		nil, "Failed to update status")
	if err != nil {
		applog.Error(c, "admin.contacts.status.fail", err, map[string]any{"contact_id": id})
		return h.list(c, fiber.StatusBadRequest, l, fiber.Map{})
	}
	applog.Audit(c, "admin.contacts.status", map[string]any{"contact_id": id, "status": status})
	return h.list(c, fiber.StatusOK, l, fiber.Map{"Notice": notices["status"]})
}

// contact fetches the contact named in the path, answering the request
// itself when it does not exist.
func (h *ContactHandler) contact(c *fiber.Ctx) (domain.Contact, bool, error) {
	ct, err := h.Contacts.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return ct, false, notFound(c, "Contact not found")
	}
	return ct, err == nil, err
}

// GET /admin/contacts/:id/password
func (h *ContactHandler) PasswordForm(c *fiber.Ctx) error {
	ct, ok, err := h.contact(c)
	if !ok {
		return err
	}
	return render(c, "admin_contact_password", fiber.Map{"C": ct, "D": forms.NewPasswordDraft(ct.ID)})
}

// POST /admin/contacts/:id/password
func (h *ContactHandler) SetPassword(c *fiber.Ctx) error {
	ct, ok, err := h.contact(c)
	if !ok {
		return err
	}
	d := forms.NewPasswordDraft(ct.ID)
	if c.FormValue("action") == "generate" {
		if err := d.Generate(); err != nil {
			return err
		}
		return render(c, "admin_contact_password", fiber.Map{"C": ct, "D": d})
	}
	d.SetField("password", c.FormValue("password"))
	plaintext := d.Password
	out := d.Submit(c.UserContext(), h.Contacts)
	switch {
	case out.Errors.Any():
		return render(c.Status(fiber.StatusUnprocessableEntity), "admin_contact_password", fiber.Map{"C": ct, "D": d})
	case out.Err != "":
		applog.Error(c, "admin.contacts.password.fail", errors.New(out.Err), map[string]any{"contact_id": ct.ID})
		return render(c.Status(fiber.StatusInternalServerError), "admin_contact_password", fiber.Map{"C": ct, "D": d, "Err": out.Err})
	}
	applog.Audit(c, "admin.contacts.password", map[string]any{"contact_id": ct.ID})
	ct, err = h.Contacts.Get(c.UserContext(), ct.ID)
	if err != nil {
		return err
	}
	// the plaintext is shown once, in this response only
	return render(c, "admin_contact", fiber.Map{"C": ct, "IssuedPassword": plaintext, "Notice": "Password saved"})
}

func (h *ContactHandler) passwords(c *fiber.Ctx, status int, d *forms.GSTDraft, errMsg string) error {
	creds, err := h.Contacts.Credentials(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.credentials.list.fail", err, nil)
	}
	return render(c.Status(status), "admin_passwords", fiber.Map{"D": d, "Credentials": creds, "Err": errMsg})
}

// GET /admin/contacts/passwords
func (h *ContactHandler) GSTForm(c *fiber.Ctx) error {
	return h.passwords(c, fiber.StatusOK, forms.NewGSTDraft(), "")
}

// POST /admin/contacts/passwords
func (h *ContactHandler) GeneratePassword(c *fiber.Ctx) error {
	d := forms.NewGSTDraft()
	d.SetField("gstNumber", c.FormValue("gstNumber"))
	out := d.Submit(c.UserContext(), h.Contacts)
	switch {
	case out.Errors.Any():
		return h.passwords(c, fiber.StatusUnprocessableEntity, d, "")
	case out.Err != "":
		return h.passwords(c, fiber.StatusInternalServerError, d, out.Err)
	}
	applog.Audit(c, "admin.credentials.issue", map[string]any{"gst": d.Issued.GSTNumber})
	return h.passwords(c, fiber.StatusOK, d, "")
}
