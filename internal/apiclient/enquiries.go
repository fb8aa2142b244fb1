package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/domain"
)

// EnquiryInput is what the public enquiry form posts.
type EnquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
	Product string `json:"product"`
}

func (c *Client) SubmitEnquiry(ctx context.Context, in EnquiryInput) error {
	return c.do(ctx, request{method: fiber.MethodPost, path: "/enquiry", json: in}, nil)
}

type enquiriesEnvelope struct {
	Enquiries []domain.Enquiry `json:"enquiries"`
}

// Enquiries lists enquiries with statuses mapped to their display values.
func (c *Client) Enquiries(ctx context.Context) ([]domain.Enquiry, error) {
	var out enquiriesEnvelope
	if err := c.do(ctx, request{method: fiber.MethodGet, path: "/admin/enquiries"}, &out); err != nil {
		return nil, err
	}
	for i := range out.Enquiries {
		out.Enquiries[i].Status = domain.EnquiryStatusFromBackend(out.Enquiries[i].Status)
	}
	return out.Enquiries, nil
}

type enquiryEnvelope struct {
	Enquiry *domain.Enquiry `json:"enquiry"`
}

// UpdateEnquiryStatus sets a display status. The returned enquiry is the
// backend's echo (display-mapped) or nil when the response carries none.
func (c *Client) UpdateEnquiryStatus(ctx context.Context, id, status string) (*domain.Enquiry, error) {
	backend, ok := domain.EnquiryStatusToBackend(status)
	if !ok {
		return nil, fmt.Errorf("unknown enquiry status %q", status)
	}
	var out enquiryEnvelope
	err := c.do(ctx, request{
		method: fiber.MethodPut,
		path:   "/admin/enquiries/" + url.PathEscape(id) + "/status",
		json:   map[string]string{"status": backend},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Enquiry != nil {
		out.Enquiry.Status = domain.EnquiryStatusFromBackend(out.Enquiry.Status)
	}
	return out.Enquiry, nil
}
