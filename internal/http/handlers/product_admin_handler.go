package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/forms"
	applog "nkeinfinity/internal/log"
	"nkeinfinity/internal/listing"
	"nkeinfinity/internal/services"
)

var productFields = []string{"name", "brand", "category", "price", "modelNo", "warranty", "stockStatus", "description"}

// ProductAdminHandler is the admin product catalogue: list, detail, the
// add/edit form and deletion.
type ProductAdminHandler struct {
	API     *apiclient.Client
	Catalog *services.CatalogService
	Drafts  *forms.Store[forms.ProductDraft]
}

func draftKey(c *fiber.Ctx, form string) string { return c.Cookies(sidCookie) + "|" + form }

func (h *ProductAdminHandler) list(c *fiber.Ctx, status int, data fiber.Map, l *listing.List[domain.Product]) error {
	q := listing.ProductQuery{Search: c.FormValue("q"), Category: c.FormValue("filter")}
	data["Products"] = l.Filter(q.Match())
	data["Total"] = l.Len()
	data["Query"] = q
	data["Categories"] = h.Catalog.Categories()
	if l.Err != "" {
		data["Err"] = l.Err
	}
	return render(c.Status(status), "admin_products", data)
}

// GET /admin/products
func (h *ProductAdminHandler) List(c *fiber.Ctx) error {
	l := listing.New(listing.ProductID)
	if err := l.Load(c.UserContext(), clientFor(c, h.API).Products, "Failed to load products"); err != nil {
		if l.SessionExpired {
			return sessionExpired(c)
		}
		applog.Error(c, "admin.products.list.fail", err, nil)
	}
	return h.list(c, fiber.StatusOK, fiber.Map{"Notice": notice(c)}, l)
}

// product fetches one product, answering the request itself on failure.
func (h *ProductAdminHandler) product(c *fiber.Ctx, id string) (domain.Product, bool, error) {
	p, err := clientFor(c, h.API).Product(c.UserContext(), id)
	if err == nil {
		return p, true, nil
	}
	var apiErr *apiclient.Error
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		return p, false, sessionExpired(c)
	case errors.As(err, &apiErr) && apiErr.Status == fiber.StatusNotFound:
		return p, false, notFound(c, "Product not found")
	}
	applog.Error(c, "admin.products.get.fail", err, map[string]any{"product_id": id})
	return p, false, failPage(c, fiber.StatusBadGateway, forms.Message(err, "Failed to load product"))
}

// GET /admin/products/:id
func (h *ProductAdminHandler) Detail(c *fiber.Ctx) error {
	p, ok, err := h.product(c, c.Params("id"))
	if !ok {
		return err
	}
	return h.detail(c, p, fiber.Map{"Notice": notice(c)})
}

func (h *ProductAdminHandler) detail(c *fiber.Ctx, p domain.Product, data fiber.Map) error {
	data["P"] = p
	data["Catalogue"] = h.Catalog.Catalogue(c.UserContext(), p.Category)
	return render(c, "admin_product", data)
}

func (h *ProductAdminHandler) form(c *fiber.Ctx, status int, d *forms.ProductDraft, errMsg string) error {
	data := fiber.Map{"D": d, "Categories": h.Catalog.Categories(), "StockStatuses": domain.StockStatuses, "Err": errMsg}
	if d.Editing() {
		data["Catalogue"] = h.Catalog.Catalogue(c.UserContext(), d.Category)
	}
	return render(c.Status(status), "admin_product_form", data)
}

// GET /admin/products/new
func (h *ProductAdminHandler) NewForm(c *fiber.Ctx) error {
	d := forms.NewProductDraft()
	h.Drafts.Put(draftKey(c, "new"), d)
	return h.form(c, fiber.StatusOK, d, "")
}

// GET /admin/products/:id/edit
func (h *ProductAdminHandler) EditForm(c *fiber.Ctx) error {
	p, ok, err := h.product(c, c.Params("id"))
	if !ok {
		return err
	}
	d := forms.EditDraft(p)
	h.Drafts.Put(draftKey(c, "edit:"+p.ID), d)
	return h.form(c, fiber.StatusOK, d, "")
}

// POST /admin/products/new
func (h *ProductAdminHandler) Create(c *fiber.Ctx) error {
	key := draftKey(c, "new")
	d := h.Drafts.Get(key)
	if d == nil {
		d = forms.NewProductDraft()
	}
	return h.post(c, key, d)
}

// POST /admin/products/:id/edit
func (h *ProductAdminHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	key := draftKey(c, "edit:"+id)
	d := h.Drafts.Get(key)
	if d == nil {
		p, ok, err := h.product(c, id)
		if !ok {
			return err
		}
		d = forms.EditDraft(p)
	}
	return h.post(c, key, d)
}

func (h *ProductAdminHandler) post(c *fiber.Ctx, key string, d *forms.ProductDraft) error {
	action, err := h.apply(c, d)
	if err != nil {
		return err
	}
	if action != "" {
		h.Drafts.Put(key, d)
		return h.form(c, fiber.StatusOK, d, "")
	}

	editing, id := d.Editing(), d.ID
	out := d.Submit(c.UserContext(), clientFor(c, h.API))
	switch {
	case out.SessionExpired:
		h.Drafts.Delete(key)
		return sessionExpired(c)
	case out.Errors.Any():
		h.Drafts.Put(key, d)
		applog.Security(c, "validation.fail", map[string]any{"form": "product", "fields": out.Errors.Fields()})
		return h.form(c, fiber.StatusUnprocessableEntity, d, "")
	case !out.Done:
		h.Drafts.Put(key, d)
		applog.Info(c, "admin.products.save.fail", map[string]any{"product_id": id, "err": out.Err})
		return h.form(c, fiber.StatusBadGateway, d, out.Err)
	}
	h.Drafts.Delete(key)

	if !editing {
		applog.Audit(c, "admin.products.add", nil)
		return c.Redirect("/admin/products?notice=added")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	if out.Err != "" {
		// the product was saved; only the catalogue upload failed
		p, ok, err := h.product(c, id)
		if !ok {
			return err
		}
		return h.detail(c, p, fiber.Map{"Notice": notices["updated"], "Err": out.Err})
	}
	return c.Redirect("/admin/products/" + urlEscape(id) + "?notice=updated")
}

// apply copies the posted form into d and performs the requested form
// action. It returns the action name, or "" when the form was submitted.
func (h *ProductAdminHandler) apply(c *fiber.Ctx, d *forms.ProductDraft) (string, error) {
	for _, f := range productFields {
		if hasField(c, f) {
			d.SetField(f, c.FormValue(f))
		}
	}
	if specs := formValues(c, "specs"); len(specs) > 0 {
		d.Specs = specs
	}

	imgs, err := readUploads(c, "images")
	if err != nil {
		return "", err
	}
	for _, img := range imgs {
		d.AddImage(img)
	}
	cats, err := readUploads(c, "categoryCatalogue")
	if err != nil {
		return "", err
	}
	if len(cats) > 0 {
		d.SetCatalogue(cats[0])
	}

	action := c.FormValue("action")
	name, arg, _ := strings.Cut(action, ":")
	i, _ := strconv.Atoi(arg)
	switch name {
	case "", "submit":
		return "", nil
	case "add_spec":
		d.AddSpec()
	case "remove_spec":
		d.RemoveSpec(i)
	case "remove_image":
		d.RemoveImage(i)
	case "remove_existing":
		d.RemoveExistingImage(i)
	case "clear_catalogue":
		d.ClearCatalogue()
	}
	return name, nil
}

func hasField(c *fiber.Ctx, key string) bool {
	return len(formValues(c, key)) > 0
}

// GET /admin/products/:id/delete
func (h *ProductAdminHandler) ConfirmDelete(c *fiber.Ctx) error {
	p, ok, err := h.product(c, c.Params("id"))
	if !ok {
		return err
	}
	return render(c, "admin_confirm", fiber.Map{
		"Title":  "Delete product",
		"Name":   p.Name,
		"Action": "/admin/products/" + urlEscape(p.ID) + "/delete",
		"Cancel": "/admin/products",
	})
}

// POST /admin/products/:id/delete
func (h *ProductAdminHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if c.FormValue("confirm") != "yes" {
		return c.Redirect("/admin/products")
	}
	api := clientFor(c, h.API)
	l := listing.New(listing.ProductID)
	var loadErr string
	if err := l.Load(c.UserContext(), api.Products, "Failed to load products"); err != nil {
		if l.SessionExpired {
			return sessionExpired(c)
		}
		applog.Error(c, "admin.products.list.fail", err, nil)
		loadErr = l.Err
	}
	err := l.Delete(c.UserContext(), id, true, api.DeleteProduct, "Failed to delete product")
	if l.SessionExpired {
		return sessionExpired(c)
	}
	if err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		return h.list(c, fiber.StatusBadGateway, fiber.Map{}, l)
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	data := fiber.Map{"Notice": notices["deleted"]}
	if loadErr != "" {
		data["Err"] = loadErr
	}
	return h.list(c, fiber.StatusOK, data, l)
}

// POST /admin/catalogues/:category/delete
func (h *ProductAdminHandler) DeleteCatalogue(c *fiber.Ctx) error {
	back := c.FormValue("return")
	if !strings.HasPrefix(back, "/admin/") || strings.Contains(back, "//") {
		back = "/admin/products"
	}
	category, err := urlUnescape(c.Params("category"))
	if err != nil || !domain.IsCategory(category) {
		return notFound(c, "Category not found")
	}
	if c.FormValue("confirm") != "yes" {
		return c.Redirect(back)
	}
	err = clientFor(c, h.API).DeleteCatalogue(c.UserContext(), category)
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return sessionExpired(c)
	}
	if err != nil {
		applog.Error(c, "admin.catalogue.delete.fail", err, map[string]any{"category": category})
		return failPage(c, fiber.StatusBadGateway, forms.Message(err, "Failed to delete catalogue"))
	}
	applog.Audit(c, "admin.catalogue.delete", map[string]any{"category": category})
	sep := "?"
	if strings.Contains(back, "?") {
		sep = "&"
	}
	return c.Redirect(back + sep + "notice=catalogue_deleted")
}
