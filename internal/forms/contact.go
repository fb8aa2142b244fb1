package forms

import (
	"context"
	"strings"

	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/validate"
)

// ContactSink records public contact messages.
type ContactSink interface {
	Create(ctx context.Context, c domain.Contact) (domain.Contact, error)
}

// ContactDraft is the public contact form.
type ContactDraft struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	GSTNumber string
	Message   string

	Errors validate.Errors
}

func NewContactDraft() *ContactDraft { return &ContactDraft{Errors: validate.Errors{}} }

func (d *ContactDraft) get(field string) string {
	switch field {
	case "name":
		return d.Name
	case "email":
		return d.Email
	case "phone":
		return d.Phone
	case "company":
		return d.Company
	case "gstNumber":
		return strings.TrimSpace(d.GSTNumber)
	case "message":
		return d.Message
	}
	return ""
}

func (d *ContactDraft) SetField(name, value string) {
	switch name {
	case "name":
		d.Name = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	case "company":
		d.Company = value
	case "gstNumber":
		d.GSTNumber = value
	case "message":
		d.Message = value
	default:
		return
	}
	delete(d.Errors, name)
}

func (d *ContactDraft) Validate() validate.Errors { return contactRules.Check(d.get) }

func (d *ContactDraft) Submit(ctx context.Context, sink ContactSink) Outcome {
	if errs := d.Validate(); errs.Any() {
		d.Errors = errs
		return invalid(errs)
	}
	email, _ := validate.Email(d.Email)
	phone, _ := validate.Phone(d.Phone)
	gst, _ := validate.GST(d.GSTNumber)
	_, err := sink.Create(ctx, domain.Contact{
		Name:      strings.TrimSpace(d.Name),
		Email:     email,
		Phone:     phone,
		Company:   strings.TrimSpace(d.Company),
		GSTNumber: gst,
		Message:   strings.TrimSpace(d.Message),
	})
	if err != nil {
		return failed(err, "Failed to send your message")
	}
	*d = *NewContactDraft()
	return Outcome{Done: true}
}
