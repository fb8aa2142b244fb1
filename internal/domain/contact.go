package domain

const (
	ContactNew      = "new"
	ContactExisting = "existing"
)

const (
	ContactPending   = "pending"
	ContactContacted = "contacted"
	ContactCompleted = "completed"
)

var ContactStatuses = []string{ContactPending, ContactContacted, ContactCompleted}

func IsContactStatus(s string) bool {
	for _, x := range ContactStatuses {
		if x == s {
			return true
		}
	}
	return false
}

type Contact struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	Company      string `db:"company"`
	GSTNumber    string `db:"gst_number"`
	Message      string `db:"message"`
	Type         string `db:"type"`   // new | existing
	Status       string `db:"status"` // pending | contacted | completed
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

// HasPassword reports whether a password was ever set for the contact.
func (c Contact) HasPassword() bool { return c.PasswordHash != "" }

// GeneratedCredential records a password issued against a GST number.
type GeneratedCredential struct {
	ID           int64  `db:"id"`
	GSTNumber    string `db:"gst_number"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
}
