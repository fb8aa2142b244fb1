package forms

import (
	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/validate"
)

var productRules = validate.Table{
	"name":        {validate.Required("Product name")},
	"brand":       {validate.Required("Brand")},
	"category":    {validate.Required("Category"), validate.OneOf("Category", domain.Categories)},
	"price":       {validate.Required("Price"), validate.NonNegative("Price")},
	"modelNo":     {validate.Required("Model number")},
	"warranty":    {validate.Required("Warranty")},
	"stockStatus": {validate.OneOf("Stock status", domain.StockStatuses)},
	"description": {validate.Required("Description")},
}

// personRules cover everyone who writes to the sales team.
var personRules = validate.Table{
	"name":    {validate.Required("Name")},
	"email":   {validate.Required("Email"), validate.EmailRule},
	"phone":   {validate.Required("Phone number"), validate.PhoneRule},
	"message": {validate.Required("Message"), validate.MinLen("Message", 10)},
}

var enquiryRules = personRules

var contactRules = personRules.Merge(validate.Table{
	"gstNumber": {optional(validate.GSTRule)},
})

var passwordRules = validate.Table{
	"password": {
		func(v string) string {
			if v == "" {
				return "Please generate or enter a password"
			}
			return ""
		},
		validate.MinLen("Password", 6),
	},
}

var gstRules = validate.Table{
	"gstNumber": {validate.Required("GST number"), validate.GSTRule},
}

// optional skips r for empty values.
func optional(r validate.Rule) validate.Rule {
	return func(v string) string {
		if v == "" {
			return ""
		}
		return r(v)
	}
}
