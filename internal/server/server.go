// Package server assembles the fiber application: middleware, static files
// and routes.
package server

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"nkeinfinity/internal/config"
	"nkeinfinity/internal/http/handlers"
	applog "nkeinfinity/internal/log"
)

func New(cfg config.Config, deps *handlers.Deps) *fiber.App {
	engine := handlers.NewEngine(cfg.TemplatesDir)

	limit := cfg.BodyLimitMB
	if limit <= 0 {
		limit = 50
	}
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: limit << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			applog.Error(c, "server.error", err, map[string]any{"code": code})
			msg := "Something went wrong. Please try again."
			if code == fiber.StatusRequestEntityTooLarge {
				msg = "The upload is too large."
			}
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
				return c.Status(code).SendString(msg)
			}
			return nil
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	// product images are served from the backend's origin
	app.Use(helmet.New(helmet.Config{CrossOriginEmbedderPolicy: "unsafe-none"}))
	app.Use(handlers.LoadAdmin(deps.Sessions, deps.Auth))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	log.Printf("[static] /static -> %s", cfg.StaticDir)
	app.Static("/static", cfg.StaticDir)

	Routes(app, deps)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
	return app
}

// Routes registers every page of the site on app.
func Routes(app fiber.Router, d *handlers.Deps) {
	// Public pages
	app.Get("/", d.CategoryHandler.Home)
	app.Get("/about", d.PagesHandler.About)
	app.Get("/clients", d.PagesHandler.Clients)
	app.Get("/products", d.CategoryHandler.List)
	app.Get("/products/:id", handlers.ValidID, d.ProductHandler.Detail)
	app.Post("/products/:id/enquiry", handlers.ValidID, limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.enquiry.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("notfound", fiber.Map{"Message": "Too many enquiries. Please try again later."})
		},
	}), d.ProductHandler.Enquire)
	app.Get("/category/:name", d.CategoryHandler.ByName)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), d.SearchHandler.Search)
	app.Get("/contact", d.PagesHandler.ContactForm)
	app.Post("/contact", d.PagesHandler.Contact)

	// Auth routes (login throttled)
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(d.Sessions, d.Auth))
	admin.Get("/", d.AdminHandler.Home)

	products := d.ProductAdminHandler
	admin.Get("/products", products.List)
	admin.Get("/products/new", products.NewForm)
	admin.Post("/products/new", products.Create)
	admin.Get("/products/:id", handlers.ValidID, products.Detail)
	admin.Get("/products/:id/edit", handlers.ValidID, products.EditForm)
	admin.Post("/products/:id/edit", handlers.ValidID, products.Update)
	admin.Get("/products/:id/delete", handlers.ValidID, products.ConfirmDelete)
	admin.Post("/products/:id/delete", handlers.ValidID, products.Delete)
	admin.Post("/catalogues/:category/delete", products.DeleteCatalogue)

	admin.Get("/enquiries", d.EnquiryHandler.List)
	admin.Get("/enquiries/export.csv", d.EnquiryHandler.Export)
	admin.Post("/enquiries/:id/status", handlers.ValidID, d.EnquiryHandler.UpdateStatus)

	contacts := d.ContactHandler
	admin.Get("/contacts", contacts.List)
	admin.Get("/contacts/passwords", contacts.GSTForm)
	admin.Post("/contacts/passwords", contacts.GeneratePassword)
	admin.Get("/contacts/:id", handlers.ValidID, contacts.Detail)
	admin.Post("/contacts/:id/status", handlers.ValidID, contacts.UpdateStatus)
	admin.Get("/contacts/:id/password", handlers.ValidID, contacts.PasswordForm)
	admin.Post("/contacts/:id/password", handlers.ValidID, contacts.SetPassword)

	admin.Get("/gallery", d.GalleryHandler.List)
	admin.Post("/gallery", d.GalleryHandler.Upload)
	admin.Post("/gallery/:id/delete", handlers.ValidID, d.GalleryHandler.Delete)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}
