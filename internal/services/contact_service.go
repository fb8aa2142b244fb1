package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/forms"
	applog "nkeinfinity/internal/log"
	"nkeinfinity/internal/notify"
	"nkeinfinity/internal/repos"
	"nkeinfinity/internal/validate"
)

var ErrInvalidStatus = errors.New("invalid contact status")

// ContactService keeps the locally stored contact messages and the
// passwords issued to customers. Passwords are only ever stored as bcrypt
// hashes.
type ContactService struct {
	Contacts *repos.ContactRepo
	Notify   notify.Notifier
	Now      func() time.Time
}

func NewContactService(r *repos.ContactRepo, n notify.Notifier) *ContactService {
	if n == nil {
		n = notify.Noop{}
	}
	return &ContactService{Contacts: r, Notify: n, Now: time.Now}
}

// Create stores a new contact message and notifies the sales inbox.
func (s *ContactService) Create(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	c.ID = uuid.NewString()
	c.Type = domain.ContactNew
	c.Status = domain.ContactPending
	c.CreatedAt = s.Now().UTC().Format(time.RFC3339)
	if err := s.Contacts.Create(ctx, c); err != nil {
		return domain.Contact{}, err
	}
	if err := s.Notify.NewContact(ctx, c); err != nil {
		applog.Event("contact.notify.fail", err, map[string]any{"contact_id": c.ID})
	}
	return c, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	return s.Contacts.List(ctx)
}

func (s *ContactService) Get(ctx context.Context, id string) (domain.Contact, error) {
	c, err := s.Contacts.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

// UpdateStatus changes a contact's status and returns the stored row.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) (*domain.Contact, error) {
	if !domain.IsContactStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.Contacts.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c, err := s.Contacts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SetPassword hashes plaintext and marks the contact an existing customer.
func (s *ContactService) SetPassword(ctx context.Context, id, plaintext string) error {
	if !validate.Password(plaintext) {
		return forms.UserError("Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = s.Contacts.SetPassword(ctx, id, string(hash))
	if errors.Is(err, sql.ErrNoRows) {
		return forms.UserError("Contact not found")
	}
	return err
}

// IssueCredential records a password generated for a GST number.
func (s *ContactService) IssueCredential(ctx context.Context, gst, plaintext string) error {
	gst, ok := validate.GST(gst)
	if !ok {
		return forms.UserError("Please enter a valid 15 character GST number")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.Contacts.AddCredential(ctx, gst, string(hash))
	return err
}

func (s *ContactService) Credentials(ctx context.Context) ([]domain.GeneratedCredential, error) {
	return s.Contacts.ListCredentials(ctx)
}

func (s *ContactService) Count(ctx context.Context) (int, error) {
	return s.Contacts.Count(ctx)
}
