package handlers

import (
	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/domain"
	applog "nkeinfinity/internal/log"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if a, ok := c.Locals(applog.AdminKey).(string); ok && a != "" {
		data["Admin"] = a
	}
	if _, ok := data["Categories"]; !ok {
		data["Categories"] = domain.Categories
	}
	data["Path"] = c.Path()
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return render(c.Status(fiber.StatusNotFound), "notfound", fiber.Map{"Message": msg})
}

func failPage(c *fiber.Ctx, status int, msg string) error {
	return render(c.Status(status), "notfound", fiber.Map{"Message": msg})
}

var notices = map[string]string{
	"added":             "Product added successfully",
	"updated":           "Product updated successfully",
	"deleted":           "Product deleted successfully",
	"catalogue_deleted": "Catalogue deleted successfully",
	"uploaded":          "Image uploaded successfully",
	"image_deleted":     "Image deleted successfully",
	"status":            "Status updated",
}

// notice maps the ?notice= code of a redirect to its message.
func notice(c *fiber.Ctx) string { return notices[c.Query("notice")] }
