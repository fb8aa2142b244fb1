package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/forms"
	applog "nkeinfinity/internal/log"
	"nkeinfinity/internal/listing"
	"nkeinfinity/internal/validate"
)

type GalleryHandler struct {
	API *apiclient.Client
}

func (h *GalleryHandler) load(c *fiber.Ctx) (*listing.List[domain.GalleryImage], error) {
	l := listing.New(listing.GalleryID)
	err := l.Load(c.UserContext(), clientFor(c, h.API).Gallery, "Failed to load images")
	if err != nil && !l.SessionExpired {
		applog.Error(c, "admin.gallery.list.fail", err, nil)
	}
	return l, err
}

func (h *GalleryHandler) list(c *fiber.Ctx, status int, l *listing.List[domain.GalleryImage], data fiber.Map) error {
	q := listing.GalleryQuery{Search: c.FormValue("q")}
	data["Images"] = l.Filter(q.Match())
	data["Total"] = l.Len()
	data["Query"] = q
	if l.Err != "" && data["Err"] == nil {
		data["Err"] = l.Err
	}
	return render(c.Status(status), "admin_gallery", data)
}

// GET /admin/gallery
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	l, _ := h.load(c)
	if l.SessionExpired {
		return sessionExpired(c)
	}
	msg := notice(c)
	if n := c.QueryInt("count"); c.Query("notice") == "uploaded" && n > 1 {
		msg = uploadedNotice(n)
	}
	return h.list(c, fiber.StatusOK, l, fiber.Map{"Notice": msg})
}

func uploadedNotice(n int) string {
	if n == 1 {
		return notices["uploaded"]
	}
	return fmt.Sprintf("%d images uploaded successfully", n)
}

// POST /admin/gallery
//
// Every picked file is checked and uploaded on its own; one bad file does not
// stop the others.
func (h *GalleryHandler) Upload(c *fiber.Ctx) error {
	ups, err := readUploads(c, "image")
	if err != nil {
		return err
	}
	if len(ups) == 0 {
		return h.rejected(c, fiber.StatusUnprocessableEntity, "Please select an image to upload", 0)
	}

	api := clientFor(c, h.API)
	var problems []string
	uploaded, status := 0, fiber.StatusUnprocessableEntity
	for _, u := range ups {
		if msg := validate.Image(validate.File{Name: u.Name, ContentType: u.ContentType, Size: u.Size()}); msg != "" {
			applog.Security(c, "validation.fail", map[string]any{"form": "gallery", "name": u.Name, "err": msg})
			problems = append(problems, u.Name+": "+msg)
			continue
		}
		_, err := api.AddGalleryImage(c.UserContext(), apiclient.File{Name: u.Name, ContentType: u.ContentType, Data: u.Data})
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return sessionExpired(c)
		}
		if err != nil {
			applog.Error(c, "admin.gallery.upload.fail", err, map[string]any{"name": u.Name})
			problems = append(problems, u.Name+": "+forms.Message(err, "Failed to upload image"))
			status = fiber.StatusBadGateway
			continue
		}
		applog.Audit(c, "admin.gallery.upload", map[string]any{"name": u.Name, "size": u.Size()})
		uploaded++
	}

	if len(problems) > 0 {
		return h.rejected(c, status, strings.Join(problems, "; "), uploaded)
	}
	if uploaded == 1 {
		return c.Redirect("/admin/gallery?notice=uploaded")
	}
	return c.Redirect("/admin/gallery?notice=uploaded&count=" + strconv.Itoa(uploaded))
}

// rejected re-renders the gallery with the upload problems and, when some
// files went through, how many did.
func (h *GalleryHandler) rejected(c *fiber.Ctx, status int, msg string, uploaded int) error {
	l, _ := h.load(c)
	if l.SessionExpired {
		return sessionExpired(c)
	}
	data := fiber.Map{"Err": msg}
	if uploaded > 0 {
		data["Notice"] = uploadedNotice(uploaded)
	}
	return h.list(c, status, l, data)
}

// POST /admin/gallery/:id/delete
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if c.FormValue("confirm") != "yes" {
		return c.Redirect("/admin/gallery")
	}
	l, _ := h.load(c)
	if l.SessionExpired {
		return sessionExpired(c)
	}
	loadErr := l.Err
	err := l.Delete(c.UserContext(), id, true, clientFor(c, h.API).DeleteGalleryImage, "Failed to delete image")
	if l.SessionExpired {
		return sessionExpired(c)
	}
	if err != nil {
		applog.Error(c, "admin.gallery.delete.fail", err, map[string]any{"image_id": id})
		return h.list(c, fiber.StatusBadGateway, l, fiber.Map{})
	}
	applog.Audit(c, "admin.gallery.delete", map[string]any{"image_id": id})
	data := fiber.Map{"Notice": notices["image_deleted"]}
	if loadErr != "" {
		data["Err"] = loadErr
	}
	return h.list(c, fiber.StatusOK, l, data)
}
