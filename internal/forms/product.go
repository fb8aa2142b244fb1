package forms

import (
	"context"
	"strings"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/validate"
)

// ProductAPI is the part of the API client product forms submit to.
type ProductAPI interface {
	AddProduct(ctx context.Context, u apiclient.ProductUpload) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, u apiclient.ProductUpload) (*domain.Product, error)
	UploadCatalogue(ctx context.Context, category string, f apiclient.File) (*domain.Catalogue, error)
}

// ProductDraft backs both the add and the edit product forms. ID is empty
// when adding.
type ProductDraft struct {
	ID          string
	Name        string
	Brand       string
	Category    string
	Price       string
	ModelNo     string
	Warranty    string
	StockStatus string
	Description string
	Specs       []string

	// Existing are the stored images kept on edit.
	Existing  []domain.ImageRef
	Images    []Upload
	Catalogue *Upload

	Errors validate.Errors
}

func NewProductDraft() *ProductDraft {
	return &ProductDraft{StockStatus: domain.InStock, Specs: []string{""}, Errors: validate.Errors{}}
}

// EditDraft starts an edit form from a stored product.
func EditDraft(p domain.Product) *ProductDraft {
	d := NewProductDraft()
	d.ID = p.ID
	d.Name = p.Name
	d.Brand = p.Brand
	d.Category = p.Category
	d.Price = p.Price.String()
	d.ModelNo = p.ModelNo
	d.Warranty = p.Warranty
	if domain.IsStockStatus(p.StockStatus) {
		d.StockStatus = p.StockStatus
	}
	d.Description = p.Description
	if len(p.Specs) > 0 {
		d.Specs = append([]string(nil), p.Specs...)
	}
	d.Existing = append([]domain.ImageRef(nil), p.Images...)
	return d
}

func (d *ProductDraft) Editing() bool { return d.ID != "" }

func (d *ProductDraft) get(field string) string {
	switch field {
	case "name":
		return d.Name
	case "brand":
		return d.Brand
	case "category":
		return d.Category
	case "price":
		return d.Price
	case "modelNo":
		return d.ModelNo
	case "warranty":
		return d.Warranty
	case "stockStatus":
		return d.StockStatus
	case "description":
		return d.Description
	}
	return ""
}

// SetField updates one scalar field and clears its error. Unknown names are
// ignored.
func (d *ProductDraft) SetField(name, value string) {
	switch name {
	case "name":
		d.Name = value
	case "brand":
		d.Brand = value
	case "category":
		d.Category = value
	case "price":
		d.Price = value
	case "modelNo":
		d.ModelNo = value
	case "warranty":
		d.Warranty = value
	case "stockStatus":
		d.StockStatus = value
	case "description":
		d.Description = value
	default:
		return
	}
	delete(d.Errors, name)
}

func (d *ProductDraft) AddSpec() { d.Specs = append(d.Specs, "") }

// RemoveSpec drops spec line i. The last remaining line is never removed.
func (d *ProductDraft) RemoveSpec(i int) {
	if len(d.Specs) <= 1 || i < 0 || i >= len(d.Specs) {
		return
	}
	d.Specs = append(d.Specs[:i:i], d.Specs[i+1:]...)
}

func (d *ProductDraft) SetSpec(i int, v string) {
	if i >= 0 && i < len(d.Specs) {
		d.Specs[i] = v
	}
}

// AddImage attaches f when it passes the image checks and returns the
// rejection message otherwise.
func (d *ProductDraft) AddImage(f Upload) string {
	if msg := validate.Image(f.check()); msg != "" {
		d.Errors["images"] = msg
		return msg
	}
	d.Images = append(d.Images, f)
	delete(d.Errors, "images")
	return ""
}

func (d *ProductDraft) RemoveImage(i int) {
	if i >= 0 && i < len(d.Images) {
		d.Images = append(d.Images[:i:i], d.Images[i+1:]...)
	}
}

func (d *ProductDraft) RemoveExistingImage(i int) {
	if i >= 0 && i < len(d.Existing) {
		d.Existing = append(d.Existing[:i:i], d.Existing[i+1:]...)
	}
}

// SetCatalogue attaches a category catalogue when it passes the PDF checks
// and a category is selected.
func (d *ProductDraft) SetCatalogue(f Upload) string {
	if msg := validate.Catalogue(f.check(), d.Category); msg != "" {
		d.Errors["catalogue"] = msg
		return msg
	}
	d.Catalogue = &f
	delete(d.Errors, "catalogue")
	return ""
}

func (d *ProductDraft) ClearCatalogue() {
	d.Catalogue = nil
	delete(d.Errors, "catalogue")
}

// Validate returns the field errors of the draft. New products need at least
// one acceptable image.
func (d *ProductDraft) Validate() validate.Errors {
	errs := productRules.Check(d.get)
	if !d.Editing() && len(d.acceptedImages()) == 0 {
		msg := "At least one product image is required"
		if rejected := d.Errors["images"]; rejected != "" {
			msg = rejected
		}
		for _, img := range d.Images {
			msg = validate.Image(img.check())
		}
		errs["images"] = msg
	}
	if d.Catalogue != nil {
		if msg := validate.Catalogue(d.Catalogue.check(), d.Category); msg != "" {
			errs["catalogue"] = msg
		}
	}
	return errs
}

func (d *ProductDraft) upload() apiclient.ProductUpload {
	u := apiclient.ProductUpload{
		Name:        strings.TrimSpace(d.Name),
		Brand:       strings.TrimSpace(d.Brand),
		Category:    d.Category,
		Price:       strings.TrimSpace(d.Price),
		ModelNo:     strings.TrimSpace(d.ModelNo),
		Warranty:    strings.TrimSpace(d.Warranty),
		StockStatus: d.StockStatus,
		Description: strings.TrimSpace(d.Description),
		Specs:       []string{},
	}
	for _, s := range d.Specs {
		if s = strings.TrimSpace(s); s != "" {
			u.Specs = append(u.Specs, s)
		}
	}
	if d.Editing() {
		u.ExistingImages = append([]domain.ImageRef{}, d.Existing...)
	}
	for _, img := range d.acceptedImages() {
		u.Images = append(u.Images, img.file())
	}
	return u
}

func (d *ProductDraft) acceptedImages() []Upload {
	var out []Upload
	for _, img := range d.Images {
		if validate.Image(img.check()) == "" {
			out = append(out, img)
		}
	}
	return out
}

// Submit validates and sends the draft. On edit, an attached catalogue is
// uploaded after the product update; a catalogue failure is reported while
// the update stays done. The draft is reset after a successful add or edit.
func (d *ProductDraft) Submit(ctx context.Context, api ProductAPI) Outcome {
	if errs := d.Validate(); errs.Any() {
		d.Errors = errs
		return invalid(errs)
	}

	if !d.Editing() {
		if _, err := api.AddProduct(ctx, d.upload()); err != nil {
			return failed(err, "Failed to add product")
		}
		d.reset()
		return Outcome{Done: true}
	}

	if _, err := api.UpdateProduct(ctx, d.ID, d.upload()); err != nil {
		return failed(err, "Failed to update product")
	}
	out := Outcome{Done: true}
	if d.Catalogue != nil {
		if _, err := api.UploadCatalogue(ctx, d.Category, d.Catalogue.file()); err != nil {
			out = failed(err, "Product updated but the catalogue upload failed")
			out.Done = true
		}
	}
	d.reset()
	return out
}

func (d *ProductDraft) reset() {
	id := d.ID
	*d = *NewProductDraft()
	d.ID = id
}
