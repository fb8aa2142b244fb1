package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jszwec/csvutil"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/domain"
	applog "nkeinfinity/internal/log"
	"nkeinfinity/internal/listing"
)

type EnquiryHandler struct {
	API *apiclient.Client
}

func (h *EnquiryHandler) load(c *fiber.Ctx) (*listing.List[domain.Enquiry], error) {
	l := listing.New(listing.EnquiryID)
	err := l.Load(c.UserContext(), clientFor(c, h.API).Enquiries, "Failed to load enquiries")
	if err != nil && !l.SessionExpired {
		applog.Error(c, "admin.enquiries.list.fail", err, nil)
	}
	return l, err
}

func enquiryQuery(c *fiber.Ctx) listing.EnquiryQuery {
	return listing.EnquiryQuery{Search: c.FormValue("q"), Status: c.FormValue("filter")}
}

func (h *EnquiryHandler) list(c *fiber.Ctx, status int, l *listing.List[domain.Enquiry], data fiber.Map) error {
	q := enquiryQuery(c)
	data["Enquiries"] = l.Filter(q.Match())
	data["Total"] = l.Len()
	data["Query"] = q
	data["Statuses"] = domain.EnquiryStatuses
	if l.Err != "" {
		data["Err"] = l.Err
	}
	return render(c.Status(status), "admin_enquiries", data)
}

// GET /admin/enquiries
func (h *EnquiryHandler) List(c *fiber.Ctx) error {
	l, _ := h.load(c)
	if l.SessionExpired {
		return sessionExpired(c)
	}
	return h.list(c, fiber.StatusOK, l, fiber.Map{})
}

// POST /admin/enquiries/:id/status
func (h *EnquiryHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if _, ok := domain.EnquiryStatusToBackend(status); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "status", "value": status})
		return c.Status(fiber.StatusBadRequest).SendString("invalid status")
	}
	l, _ := h.load(c)
	if l.SessionExpired {
		return sessionExpired(c)
	}
	api := clientFor(c, h.API)
	err := l.Mutate(c.UserContext(), id,
		func(ctx context.Context) (*domain.Enquiry, error) { return api.UpdateEnquiryStatus(ctx, id, status) },
		func(e *domain.Enquiry) { e.Status = status },
		"Failed to update status")
	if l.SessionExpired {
		return sessionExpired(c)
	}
	if err != nil {
		applog.Error(c, "admin.enquiries.status.fail", err, map[string]any{"enquiry_id": id})
		return h.list(c, fiber.StatusBadGateway, l, fiber.Map{})
	}
	applog.Audit(c, "admin.enquiries.status", map[string]any{"enquiry_id": id, "status": status})
	return h.list(c, fiber.StatusOK, l, fiber.Map{"Notice": notices["status"]})
}

type enquiryRow struct {
	ID      string `csv:"id"`
	Date    string `csv:"date"`
	Name    string `csv:"name"`
	Email   string `csv:"email"`
	Phone   string `csv:"phone"`
	Company string `csv:"company"`
	Product string `csv:"product"`
	Status  string `csv:"status"`
	Message string `csv:"message"`
}

// GET /admin/enquiries/export.csv exports the filtered enquiries.
func (h *EnquiryHandler) Export(c *fiber.Ctx) error {
	l, err := h.load(c)
	if l.SessionExpired {
		return sessionExpired(c)
	}
	if err != nil {
		return failPage(c, fiber.StatusBadGateway, l.Err)
	}
	rows := []enquiryRow{}
	for _, e := range l.Filter(enquiryQuery(c).Match()) {
		r := enquiryRow{
			ID: e.ID, Name: e.Name, Email: e.Email, Phone: e.Phone, Company: e.Company,
			Product: e.Product, Status: domain.EnquiryStatusLabel(e.Status), Message: e.Message,
		}
		if !e.CreatedAt.IsZero() {
			r.Date = e.CreatedAt.Format(time.RFC3339)
		}
		rows = append(rows, r)
	}
	b, err := csvutil.Marshal(rows)
	if err != nil {
		return err
	}
	applog.Audit(c, "admin.enquiries.export", map[string]any{"rows": len(rows)})
	c.Attachment("enquiries.csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(b)
}
