package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Categories is the fixed set of product categories, in display order.
var Categories = []string{
	"Desktops",
	"Laptops",
	"Printers",
	"Projectors",
	"Interactive Panels",
	"Scanners",
	"CCTV Systems",
	"UPS Systems",
	"Accessories",
}

// IsCategory reports whether c is one of Categories (exact match).
func IsCategory(c string) bool {
	for _, x := range Categories {
		if x == c {
			return true
		}
	}
	return false
}

const (
	InStock    = "In Stock"
	OutOfStock = "Out of Stock"
	PreOrder   = "Pre Order"
	BackOrder  = "Back Order"
)

var StockStatuses = []string{InStock, OutOfStock, PreOrder, BackOrder}

func IsStockStatus(s string) bool {
	for _, x := range StockStatuses {
		if x == s {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	Category    string     `json:"category"`
	Price       Price      `json:"price"`
	ModelNo     string     `json:"modelNo"`
	Warranty    string     `json:"warranty"`
	StockStatus string     `json:"stockStatus"`
	Description string     `json:"description"`
	Images      []ImageRef `json:"images"`
	Specs       []string   `json:"specs"`
	Catalogue   *Catalogue `json:"catalogue,omitempty"`
}

// Price is a product price as the backend stores it. Older rows hold free
// text ("", "₹285,000", "Call us"); those decode without failing the row.
// Valid is false when no number could be read, and Raw keeps the text.
type Price struct {
	decimal.Decimal
	Valid bool
	Raw   string
}

func NewPrice(d decimal.Decimal) Price { return Price{Decimal: d, Valid: true} }

func (p *Price) UnmarshalJSON(b []byte) error {
	*p = Price{}
	text := strings.TrimSpace(string(b))
	if text == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		text = strings.TrimSpace(s)
	}
	if text == "" {
		return nil
	}
	if d, err := decimal.NewFromString(text); err == nil {
		*p = NewPrice(d)
		return nil
	}
	// "₹285,000", "Rs. 1,200.50"
	digits := strings.TrimLeft(strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' {
			return r
		}
		if r == ',' || r == ' ' {
			return -1
		}
		return 'x'
	}, text), "x.")
	if d, err := decimal.NewFromString(digits); err == nil {
		*p = NewPrice(d)
		return nil
	}
	p.Raw = text
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		if p.Raw == "" {
			return []byte("null"), nil
		}
		return json.Marshal(p.Raw)
	}
	return p.Decimal.MarshalJSON()
}

// String is the form value of the price: the number, or the stored text.
func (p Price) String() string {
	if !p.Valid {
		return p.Raw
	}
	return p.Decimal.String()
}

// Display renders the price for pages.
func (p Price) Display() string {
	switch {
	case p.Valid:
		return "₹" + p.StringFixed(2)
	case p.Raw != "":
		return p.Raw
	}
	return "Price on request"
}

// Cover returns the first image URL or "".
func (p Product) Cover() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// ImageRef points at an uploaded product image.
type ImageRef struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// UnmarshalJSON accepts both a bare URL string and a {url, filename} object.
func (r *ImageRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		r.URL = s
		r.Filename = ""
		return nil
	}
	type plain ImageRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = ImageRef(p)
	return nil
}

// Catalogue is the single PDF attached to a product category.
type Catalogue struct {
	Category string `json:"category"`
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}
