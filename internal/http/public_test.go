package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func enquiryForm(email string) url.Values {
	return url.Values{
		"name":    {"Jane Doe"},
		"email":   {email},
		"phone":   {"9876543210"},
		"company": {"Acme Schools"},
		"message": {"Please quote for 20 units."},
	}
}

func TestProductEnquiryThankYou(t *testing.T) {
	env := newEnv(t)
	b := env.browser(t)

	resp := b.get("/products/p1")
	if body := readBody(t, resp); resp.StatusCode != http.StatusOK || !strings.Contains(body, "ThinkPad E14") {
		t.Fatalf("product page: %d", resp.StatusCode)
	}

	resp = b.post("/products/p1/enquiry", enquiryForm("jane@example.com"))
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("enquiry: %d body=%s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "Thank you for your enquiry") {
		t.Fatal("thank you message missing")
	}
	if len(env.api.submitted) != 1 || env.api.submitted[0]["product"] != "ThinkPad E14" {
		t.Fatalf("backend got %v", env.api.submitted)
	}
}

func TestProductEnquiryBadEmailNotSent(t *testing.T) {
	env := newEnv(t)
	b := env.browser(t)
	resp := b.post("/products/p1/enquiry", enquiryForm("jane.example.com"))
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), "Jane Doe") {
		t.Fatal("entered values lost")
	}
	if len(env.api.submitted) != 0 {
		t.Fatal("invalid enquiry reached the backend")
	}
}

func TestContactFormStoresMessage(t *testing.T) {
	env := newEnv(t)
	b := env.browser(t)
	form := enquiryForm("jane@example.com")
	form.Set("gstNumber", "27aapfu0939f1zv")
	resp := b.post("/contact", form)
	if body := readBody(t, resp); !strings.Contains(body, "Thank you for contacting us") {
		t.Fatalf("contact: %d body=%s", resp.StatusCode, body)
	}

	admin := env.admin(t)
	body := readBody(t, admin.get("/admin/contacts?q=acme&filter=new"))
	if !strings.Contains(body, "Jane Doe") || !strings.Contains(body, "27AAPFU0939F1ZV") {
		t.Fatal("contact not listed as new customer")
	}
}

func TestCSRFRequiredOnPost(t *testing.T) {
	env := newEnv(t)
	b := env.browser(t)
	b.csrf()
	r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(enquiryForm("jane@example.com").Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := b.do(r)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), "Security check failed") {
		t.Fatal("csrf message missing")
	}
}

func TestPublicPages(t *testing.T) {
	env := newEnv(t)
	b := env.browser(t)

	for _, p := range []string{"/", "/about", "/clients", "/contact", "/products", "/products?category=Laptops", "/search"} {
		if resp := b.get(p); resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: %d", p, resp.StatusCode)
		}
	}
	body := readBody(t, b.get("/products?category=Printers"))
	if !strings.Contains(body, "LaserJet Pro") || strings.Contains(body, "ThinkPad E14") {
		t.Fatal("category listing not narrowed")
	}
	if !strings.Contains(body, "17450.50") {
		t.Fatal("price not rendered with two decimals")
	}

	resp := b.get("/category/Interactive%20Panels")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/products?category=Interactive+Panels" {
		t.Fatalf("category redirect: %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	if resp := b.get("/category/Toasters"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown category: %d", resp.StatusCode)
	}
	if resp := b.get("/products/missing"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: %d", resp.StatusCode)
	}
	if resp := b.get("/no-such-page"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("fallback: %d", resp.StatusCode)
	}
	if body := readBody(t, b.get("/healthz")); !strings.Contains(body, `"ok":true`) {
		t.Fatalf("healthz = %s", body)
	}
}

func TestSearch(t *testing.T) {
	env := newEnv(t)
	b := env.browser(t)
	body := readBody(t, b.get("/search?q=lenovo"))
	if !strings.Contains(body, "1 result for") || !strings.Contains(body, "ThinkPad E14") {
		t.Fatal("search by brand failed")
	}
	body = readBody(t, b.get("/search?q=lenovo&category=Printers"))
	if !strings.Contains(body, "0 results for") {
		t.Fatal("category not applied to search")
	}

	long := "thinkpad" + strings.Repeat("x", 50)
	resp := b.get("/search?q=" + long)
	body = readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "Search text is too long") {
		t.Fatalf("long query: %d", resp.StatusCode)
	}
	if strings.Contains(body, "ThinkPad E14") {
		t.Fatal("long query matched on its prefix")
	}
}

func TestTemplateAutoEscape(t *testing.T) {
	env := newEnv(t)
	env.api.products[0]["name"] = "<script>alert(1)</script>"
	b := env.browser(t)
	body := readBody(t, b.get("/products"))
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatal("found unescaped script tag in output")
	}
	if !strings.Contains(body, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatal("escaped script not found")
	}
}

func TestProductPageBackendDownIsNot404(t *testing.T) {
	env := newEnv(t)
	b := env.browser(t)

	if resp := b.get("/products/missing"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product: %d", resp.StatusCode)
	}

	env.api.mu.Lock()
	env.api.catalogueDown = true
	env.api.mu.Unlock()

	resp := b.get("/products/p1")
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Could not load this product") || strings.Contains(body, "no longer available") {
		t.Fatal("outage reported as a missing product")
	}
	if strings.Contains(body, "database unavailable") {
		t.Fatal("backend detail leaked")
	}
}
