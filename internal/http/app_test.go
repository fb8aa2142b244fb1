package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/config"
	"nkeinfinity/internal/http/handlers"
	"nkeinfinity/internal/repos"
	"nkeinfinity/internal/server"
	"nkeinfinity/internal/services"
	"nkeinfinity/internal/session"
)

const (
	adminEmail = "admin@nke.test"
	staffEmail = "staff@nke.test"
	password   = "secret123"
)

func signToken(t *testing.T, email string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

// fakeAPI stands in for the inventory backend.
type fakeAPI struct {
	mu         sync.Mutex
	adminToken string
	staffToken string
	// expired makes every admin call answer 401
	expired bool
	// catalogueDown makes the public product listing answer 500
	catalogueDown bool
	// listsDown makes the admin product and gallery listings answer 500
	listsDown bool

	products  []map[string]any
	enquiries []map[string]any
	gallery   []map[string]any

	submitted []map[string]any
	added     []url.Values
	addedImgs int
	deleted   []string
	statuses  map[string]string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{
		adminToken: signToken(t, adminEmail),
		staffToken: signToken(t, staffEmail),
		products: []map[string]any{
			{"id": "p1", "name": "ThinkPad E14", "brand": "Lenovo", "category": "Laptops", "price": 58999, "modelNo": "E14-G5", "stockStatus": "In Stock", "images": []string{"https://cdn.test/e14.png"}, "specs": []string{"16GB RAM"}},
			{"id": "p2", "name": "LaserJet Pro", "brand": "HP", "category": "Printers", "price": 17450.5, "modelNo": "M126nw", "stockStatus": "Out of Stock"},
		},
		enquiries: []map[string]any{
			{"id": "e1", "name": "Jane Doe", "email": "jane@example.com", "phone": "9876543210", "product": "ThinkPad E14", "message": "Need ten units", "status": "pending", "createdAt": "2026-01-05T10:00:00Z"},
			{"id": "e2", "name": "John Roe", "email": "john@example.com", "phone": "9123456780", "product": "LaserJet Pro", "message": "Toner pricing", "status": "closed", "createdAt": "2026-01-06T10:00:00Z"},
		},
		gallery:  []map[string]any{{"id": "g1", "name": "install.jpg", "url": "https://cdn.test/install.jpg", "size": 2048}},
		statuses: map[string]string{},
	}
}

func (f *fakeAPI) setExpired(v bool) {
	f.mu.Lock()
	f.expired = v
	f.mu.Unlock()
}

func reply(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		expired := f.expired
		f.mu.Unlock()
		auth := r.Header.Get("Authorization")
		switch {
		case expired || auth == "":
			reply(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Token expired"})
		case auth != "Bearer "+f.adminToken:
			reply(w, http.StatusForbidden, map[string]any{"success": false, "message": "Admin access required"})
		default:
			f.mu.Lock()
			defer f.mu.Unlock()
			next(w, r)
		}
	}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		switch {
		case in.Password != password:
			reply(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
		case in.Email == adminEmail:
			reply(w, 200, map[string]any{"success": true, "token": f.adminToken})
		default:
			reply(w, 200, map[string]any{"success": true, "token": f.staffToken})
		}
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.catalogueDown {
			reply(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "database unavailable"})
			return
		}
		reply(w, 200, map[string]any{"success": true, "products": f.products})
	})
	mux.HandleFunc("GET /category/{name}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []map[string]any{}
		for _, p := range f.products {
			if p["category"] == r.PathValue("name") {
				out = append(out, p)
			}
		}
		reply(w, 200, map[string]any{"success": true, "products": out})
	})
	mux.HandleFunc("GET /category-catalogue/{name}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusNotFound, map[string]any{"success": false, "message": "No catalogue"})
	})
	mux.HandleFunc("POST /enquiry", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		f.submitted = append(f.submitted, in)
		f.mu.Unlock()
		reply(w, 201, map[string]any{"success": true})
	})

	mux.HandleFunc("GET /admin/dashboard", f.admin(func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, map[string]any{"message": "Welcome to the admin dashboard", "user": map[string]any{"email": adminEmail}})
	}))
	mux.HandleFunc("GET /admin/products/all", f.admin(func(w http.ResponseWriter, r *http.Request) {
		if f.listsDown {
			reply(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "Listing unavailable"})
			return
		}
		reply(w, 200, map[string]any{"success": true, "products": f.products})
	}))
	mux.HandleFunc("GET /admin/products/{id}", f.admin(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range f.products {
			if p["id"] == r.PathValue("id") {
				reply(w, 200, map[string]any{"success": true, "product": p})
				return
			}
		}
		reply(w, http.StatusNotFound, map[string]any{"success": false, "message": "Product not found"})
	}))
	mux.HandleFunc("POST /admin/products/add", f.admin(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			reply(w, 400, map[string]any{"success": false, "message": err.Error()})
			return
		}
		f.added = append(f.added, url.Values(r.MultipartForm.Value))
		f.addedImgs += len(r.MultipartForm.File["images"])
		var specs []string
		_ = json.Unmarshal([]byte(r.FormValue("specs")), &specs)
		p := map[string]any{
			"id": "p" + strconv.Itoa(len(f.products)+1), "name": r.FormValue("name"), "brand": r.FormValue("brand"),
			"category": r.FormValue("category"), "price": r.FormValue("price"), "modelNo": r.FormValue("modelNo"),
			"warranty": r.FormValue("warranty"), "stockStatus": r.FormValue("stockStatus"),
			"description": r.FormValue("description"), "specs": specs,
		}
		f.products = append(f.products, p)
		reply(w, 201, map[string]any{"success": true, "product": p})
	}))
	mux.HandleFunc("DELETE /admin/products-del/{id}", f.admin(func(w http.ResponseWriter, r *http.Request) {
		f.deleted = append(f.deleted, r.PathValue("id"))
		reply(w, 200, map[string]any{"success": true})
	}))
	mux.HandleFunc("GET /admin/enquiries", f.admin(func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, map[string]any{"success": true, "enquiries": f.enquiries})
	}))
	mux.HandleFunc("PUT /admin/enquiries/{id}/status", f.admin(func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Status string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.statuses[r.PathValue("id")] = in.Status
		reply(w, 200, map[string]any{"success": true, "enquiry": map[string]any{"id": r.PathValue("id"), "status": in.Status}})
	}))
	mux.HandleFunc("GET /admin/gallery", f.admin(func(w http.ResponseWriter, r *http.Request) {
		if f.listsDown {
			reply(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "Listing unavailable"})
			return
		}
		reply(w, 200, map[string]any{"success": true, "images": f.gallery})
	}))
	mux.HandleFunc("POST /admin/gallery", f.admin(func(w http.ResponseWriter, r *http.Request) {
		_, fh, err := r.FormFile("image")
		if err != nil {
			reply(w, 400, map[string]any{"success": false, "message": "No image uploaded"})
			return
		}
		img := map[string]any{"id": "g" + strconv.Itoa(len(f.gallery)+1), "name": fh.Filename, "url": "https://cdn.test/" + fh.Filename, "size": fh.Size}
		f.gallery = append(f.gallery, img)
		reply(w, 201, map[string]any{"success": true, "image": img})
	}))
	mux.HandleFunc("DELETE /admin/gallery/{id}", f.admin(func(w http.ResponseWriter, r *http.Request) {
		f.deleted = append(f.deleted, r.PathValue("id"))
		reply(w, 200, map[string]any{"success": true})
	}))
	return mux
}

type testEnv struct {
	app      *fiber.App
	api      *fakeAPI
	db       *sqlx.DB
	contacts *services.ContactService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := newFakeAPI(t)
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		TemplatesDir: "../../web/templates",
		StaticDir:    "../../web/static",
		BodyLimitMB:  50,
		SessionTTL:   time.Hour,
	}
	api := apiclient.New(srv.URL, 5*time.Second)
	contacts := services.NewContactService(repos.NewContactRepo(db), nil)
	sessions := &handlers.Sessions{Store: session.NewMemoryStore(), TTL: cfg.SessionTTL}
	deps := handlers.NewDeps(api, sessions, &services.AuthService{API: api}, contacts)
	return &testEnv{app: server.New(cfg, deps), api: fake, db: db, contacts: contacts}
}

// browser replays cookies between requests the way a real one would.
type browser struct {
	t   *testing.T
	app *fiber.App
	jar map[string]string
}

func (e *testEnv) browser(t *testing.T) *browser {
	return &browser{t: t, app: e.app, jar: map[string]string{}}
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for k, v := range b.jar {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.app.Test(req, -1)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	for _, c := range resp.Cookies() {
		if c.Value == "" || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(b.jar, c.Name)
			continue
		}
		b.jar[c.Name] = c.Value
	}
	return resp
}

func (b *browser) get(path string) *http.Response {
	b.t.Helper()
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) csrf() string {
	b.t.Helper()
	if tok := b.jar["csrf_"]; tok != "" {
		return tok
	}
	b.get("/login")
	tok := b.jar["csrf_"]
	if tok == "" {
		b.t.Fatal("csrf token missing")
	}
	return tok
}

func (b *browser) post(path string, form url.Values) *http.Response {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", b.csrf())
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

type upload struct {
	field, name string
	data        []byte
}

func (b *browser) postMultipart(path string, form url.Values, files ...upload) *http.Response {
	b.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("csrf", b.csrf())
	for k, vs := range form {
		for _, v := range vs {
			_ = mw.WriteField(k, v)
		}
	}
	for _, f := range files {
		w, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			b.t.Fatal(err)
		}
		_, _ = w.Write(f.data)
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

func (b *browser) login(email string) *http.Response {
	b.t.Helper()
	return b.post("/login", url.Values{"email": {email}, "password": {password}})
}

// admin returns a browser signed in as the admin.
func (e *testEnv) admin(t *testing.T) *browser {
	t.Helper()
	b := e.browser(t)
	if resp := b.login(adminEmail); resp.StatusCode != http.StatusFound {
		t.Fatalf("admin login: status %d body=%s", resp.StatusCode, readBody(t, resp))
	}
	return b
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

// pngBytes returns n bytes that sniff as a PNG image.
func pngBytes(n int) []byte {
	b := make([]byte, n)
	copy(b, "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	return b
}
