package domain

import "time"

// Display statuses for enquiries.
const (
	EnquiryNew        = "new"
	EnquiryInProgress = "in-progress"
	EnquiryResolved   = "resolved"
)

var EnquiryStatuses = []string{EnquiryNew, EnquiryInProgress, EnquiryResolved}

var (
	enquiryToBackend = map[string]string{
		EnquiryNew:        "pending",
		EnquiryInProgress: "responded",
		EnquiryResolved:   "closed",
	}
	enquiryFromBackend = map[string]string{
		"pending":   EnquiryNew,
		"responded": EnquiryInProgress,
		"closed":    EnquiryResolved,
	}
)

// EnquiryStatusToBackend maps a display status to the backend value.
func EnquiryStatusToBackend(s string) (string, bool) {
	b, ok := enquiryToBackend[s]
	return b, ok
}

// EnquiryStatusFromBackend maps a backend status to its display value.
// Unknown values pass through unchanged.
func EnquiryStatusFromBackend(s string) string {
	if d, ok := enquiryFromBackend[s]; ok {
		return d
	}
	return s
}

// EnquiryStatusLabel is the human label for a display status.
func EnquiryStatusLabel(s string) string {
	switch s {
	case EnquiryNew:
		return "New"
	case EnquiryInProgress:
		return "In Progress"
	case EnquiryResolved:
		return "Resolved"
	}
	return s
}

type Enquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message"`
	Product   string    `json:"product"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
