package forms

import (
	"context"
	"strings"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/validate"
)

// ThankYou is shown after an enquiry goes through.
const ThankYou = "Thank you for your enquiry! Our sales team will contact you shortly."

type EnquiryAPI interface {
	SubmitEnquiry(ctx context.Context, in apiclient.EnquiryInput) error
}

// EnquiryDraft is the public "enquire about this product" form.
type EnquiryDraft struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
	// Product is the name of the product being asked about.
	Product string

	Errors validate.Errors
}

func NewEnquiryDraft(product string) *EnquiryDraft {
	return &EnquiryDraft{Product: product, Errors: validate.Errors{}}
}

func (d *EnquiryDraft) get(field string) string {
	switch field {
	case "name":
		return d.Name
	case "email":
		return d.Email
	case "phone":
		return d.Phone
	case "company":
		return d.Company
	case "message":
		return d.Message
	}
	return ""
}

func (d *EnquiryDraft) SetField(name, value string) {
	switch name {
	case "name":
		d.Name = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	case "company":
		d.Company = value
	case "message":
		d.Message = value
	default:
		return
	}
	delete(d.Errors, name)
}

func (d *EnquiryDraft) Validate() validate.Errors { return enquiryRules.Check(d.get) }

func (d *EnquiryDraft) Submit(ctx context.Context, api EnquiryAPI) Outcome {
	if errs := d.Validate(); errs.Any() {
		d.Errors = errs
		return invalid(errs)
	}
	email, _ := validate.Email(d.Email)
	phone, _ := validate.Phone(d.Phone)
	err := api.SubmitEnquiry(ctx, apiclient.EnquiryInput{
		Name:    strings.TrimSpace(d.Name),
		Email:   email,
		Phone:   phone,
		Company: strings.TrimSpace(d.Company),
		Message: strings.TrimSpace(d.Message),
		Product: d.Product,
	})
	if err != nil {
		return failed(err, "Failed to send enquiry")
	}
	*d = *NewEnquiryDraft(d.Product)
	return Outcome{Done: true}
}
