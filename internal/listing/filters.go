package listing

import (
	"strings"

	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/validate"
)

// contains reports whether any field holds q, ignoring case. q must already
// be normalized with validate.Q.
func contains(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ProductQuery filters by name, brand or model number and by category.
type ProductQuery struct {
	Search   string
	Category string
}

func (q ProductQuery) Match() func(domain.Product) bool {
	s, _ := validate.Q(q.Search)
	return func(p domain.Product) bool {
		if q.Category != "" && q.Category != "all" && p.Category != q.Category {
			return false
		}
		return contains(s, p.Name, p.Brand, p.ModelNo)
	}
}

// EnquiryQuery filters by name, email or product and by display status.
type EnquiryQuery struct {
	Search string
	Status string
}

func (q EnquiryQuery) Match() func(domain.Enquiry) bool {
	s, _ := validate.Q(q.Search)
	return func(e domain.Enquiry) bool {
		if q.Status != "" && q.Status != "all" && e.Status != q.Status {
			return false
		}
		return contains(s, e.Name, e.Email, e.Product)
	}
}

// ContactQuery filters by name, email, company or GST number and by
// customer type.
type ContactQuery struct {
	Search string
	Type   string
}

func (q ContactQuery) Match() func(domain.Contact) bool {
	s, _ := validate.Q(q.Search)
	return func(c domain.Contact) bool {
		if q.Type != "" && q.Type != "all" && c.Type != q.Type {
			return false
		}
		return contains(s, c.Name, c.Email, c.Company, c.GSTNumber)
	}
}

type GalleryQuery struct{ Search string }

func (q GalleryQuery) Match() func(domain.GalleryImage) bool {
	s, _ := validate.Q(q.Search)
	return func(g domain.GalleryImage) bool { return contains(s, g.Name) }
}

func ProductID(p domain.Product) string      { return p.ID }
func EnquiryID(e domain.Enquiry) string      { return e.ID }
func ContactID(c domain.Contact) string      { return c.ID }
func GalleryID(g domain.GalleryImage) string { return g.ID }
