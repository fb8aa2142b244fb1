package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestAdminPagesRequireSession(t *testing.T) {
	env := newEnv(t)
	b := env.browser(t)
	for _, p := range []string{"/admin", "/admin/products", "/admin/enquiries", "/admin/contacts", "/admin/gallery", "/admin/enquiries/export.csv"} {
		resp := b.get(p)
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %d %s", p, resp.StatusCode, resp.Header.Get("Location"))
		}
	}
}

func TestDashboardCounts(t *testing.T) {
	env := newEnv(t)
	b := env.admin(t)
	resp := b.get("/admin")
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard: %d body=%s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "Welcome to the admin dashboard") {
		t.Fatal("backend message missing")
	}
	if !strings.Contains(body, adminEmail) {
		t.Fatal("admin email missing from nav")
	}
}

func TestExpiredTokenRedirectsToLogin(t *testing.T) {
	env := newEnv(t)
	b := env.admin(t)

	env.api.setExpired(true)
	resp := b.get("/admin/products")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login?expired=1" {
		t.Fatalf("expected redirect to /login?expired=1, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	// the token is gone, so the guard turns the admin away without a backend call
	env.api.setExpired(false)
	resp = b.get("/admin")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login?expired=1" {
		t.Fatalf("token survived expiry: %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = b.get("/login?expired=1")
	if !strings.Contains(readBody(t, resp), "Your session has expired. Please login again.") {
		t.Fatal("expired notice missing from login page")
	}
}

func TestExpiredTokenOnDashboard(t *testing.T) {
	env := newEnv(t)
	b := env.admin(t)
	env.api.setExpired(true)
	resp := b.get("/admin")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login?expired=1" {
		t.Fatalf("expected expiry redirect, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
}
