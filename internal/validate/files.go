package validate

import "strings"

const (
	MaxImageBytes     = 5 << 20
	MaxCatalogueBytes = 10 << 20
)

// File describes an upload as far as validation is concerned.
type File struct {
	Name        string
	ContentType string
	Size        int64
}

// Image checks an uploaded product or gallery image.
func Image(f File) string {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return "Only image files are allowed"
	}
	if f.Size > MaxImageBytes {
		return "Image size should be less than 5MB"
	}
	return ""
}

// Catalogue checks a category catalogue upload. category is the currently
// selected product category.
func Catalogue(f File, category string) string {
	if f.ContentType != "application/pdf" {
		return "Please upload a PDF file for the category catalogue"
	}
	if f.Size > MaxCatalogueBytes {
		return "Catalogue size should be less than 10MB"
	}
	if strings.TrimSpace(category) == "" {
		return "Please select a category before uploading a catalogue"
	}
	return ""
}
