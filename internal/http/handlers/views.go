package handlers

import (
	"fmt"
	"strings"
	"time"

	html "github.com/gofiber/template/html/v2"

	"nkeinfinity/internal/domain"
)

// NewEngine loads the page templates with the helpers they use.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFuncMap(map[string]any{
		"enquiryLabel": domain.EnquiryStatusLabel,
		"contactType": func(t string) string {
			if t == domain.ContactExisting {
				return "Existing Customer"
			}
			return "New Customer"
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"size": humanSize,
		"add":  func(a, b int) int { return a + b },
	})
	return engine
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
