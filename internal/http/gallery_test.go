package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestGalleryUpload(t *testing.T) {
	env := newEnv(t)
	b := env.admin(t)

	resp := b.postMultipart("/admin/gallery", nil, upload{"image", "notes.txt", []byte("plain text, not an image")})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("text upload: %d", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), "Only image files are allowed") {
		t.Fatal("type message missing")
	}

	resp = b.postMultipart("/admin/gallery", nil, upload{"image", "huge.png", pngBytes(6 << 20)})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("oversized upload: %d", resp.StatusCode)
	}
	if len(env.api.gallery) != 1 {
		t.Fatal("rejected image reached the backend")
	}

	resp = b.postMultipart("/admin/gallery", nil, upload{"image", "site.png", pngBytes(4096)})
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/gallery?notice=uploaded" {
		t.Fatalf("upload: %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	body := readBody(t, b.get("/admin/gallery?notice=uploaded"))
	if !strings.Contains(body, "Image uploaded successfully") || !strings.Contains(body, "site.png") {
		t.Fatal("uploaded image not listed")
	}
}

func TestGalleryUploadsEveryPickedFile(t *testing.T) {
	env := newEnv(t)
	b := env.admin(t)

	resp := b.postMultipart("/admin/gallery", nil,
		upload{"image", "office.png", pngBytes(2048)},
		upload{"image", "warehouse.png", pngBytes(4096)},
	)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/gallery?notice=uploaded&count=2" {
		t.Fatalf("upload: %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	if len(env.api.gallery) != 3 {
		t.Fatalf("backend has %d images, want 3", len(env.api.gallery))
	}
	body := readBody(t, b.get(resp.Header.Get("Location")))
	for _, want := range []string{"2 images uploaded successfully", "office.png", "warehouse.png"} {
		if !strings.Contains(body, want) {
			t.Fatalf("gallery page missing %q", want)
		}
	}

	// one bad file is reported by name; the good one still goes through
	resp = b.postMultipart("/admin/gallery", nil,
		upload{"image", "readme.txt", []byte("not an image at all")},
		upload{"image", "lobby.png", pngBytes(1024)},
	)
	body = readBody(t, resp)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("mixed upload: %d", resp.StatusCode)
	}
	if !strings.Contains(body, "readme.txt: Only image files are allowed") || !strings.Contains(body, "Image uploaded successfully") {
		t.Fatal("per-file outcome missing")
	}
	if len(env.api.gallery) != 4 || !strings.Contains(body, "lobby.png") {
		t.Fatal("accepted file not uploaded")
	}
}

func TestGalleryDeleteNeedsConfirmation(t *testing.T) {
	env := newEnv(t)
	b := env.admin(t)

	if resp := b.post("/admin/gallery/g1/delete", nil); resp.StatusCode != http.StatusFound {
		t.Fatalf("unconfirmed delete: %d", resp.StatusCode)
	}
	if len(env.api.deleted) != 0 {
		t.Fatal("deleted without confirmation")
	}
	resp := b.post("/admin/gallery/g1/delete", url.Values{"confirm": {"yes"}})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Image deleted successfully") {
		t.Fatalf("confirmed delete: %d", resp.StatusCode)
	}
	if strings.Contains(body, "install.jpg") {
		t.Fatal("deleted image still listed")
	}
}
