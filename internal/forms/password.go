package forms

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"nkeinfinity/internal/validate"
)

const (
	passwordChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	passwordLength = 8
)

// GeneratePassword returns a random 8 character alphanumeric password.
func GeneratePassword() (string, error) {
	b := make([]byte, passwordLength)
	max := big.NewInt(int64(len(passwordChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordChars[n.Int64()]
	}
	return string(b), nil
}

// PasswordSetter stores a contact's new password.
type PasswordSetter interface {
	SetPassword(ctx context.Context, contactID, plaintext string) error
}

// PasswordDraft is the admin "set password" form for one contact.
type PasswordDraft struct {
	ContactID string
	Password  string
	Errors    validate.Errors
}

func NewPasswordDraft(contactID string) *PasswordDraft {
	return &PasswordDraft{ContactID: contactID, Errors: validate.Errors{}}
}

func (d *PasswordDraft) SetField(name, value string) {
	if name != "password" {
		return
	}
	d.Password = value
	delete(d.Errors, name)
}

// Generate fills the password field with a fresh random password.
func (d *PasswordDraft) Generate() error {
	p, err := GeneratePassword()
	if err != nil {
		return err
	}
	d.SetField("password", p)
	return nil
}

func (d *PasswordDraft) Validate() validate.Errors {
	return passwordRules.Check(func(string) string { return d.Password })
}

func (d *PasswordDraft) Submit(ctx context.Context, s PasswordSetter) Outcome {
	if errs := d.Validate(); errs.Any() {
		d.Errors = errs
		return invalid(errs)
	}
	if err := s.SetPassword(ctx, d.ContactID, d.Password); err != nil {
		return failed(err, "Failed to save password")
	}
	*d = *NewPasswordDraft(d.ContactID)
	return Outcome{Done: true}
}

// CredentialIssuer records a password generated for a GST number.
type CredentialIssuer interface {
	IssueCredential(ctx context.Context, gst, plaintext string) error
}

// Issued is a generated GST password, visible once.
type Issued struct {
	GSTNumber string
	Password  string
	At        time.Time
}

// GSTDraft is the GST password generator form.
type GSTDraft struct {
	GSTNumber string
	// Issued is the result of the last successful Submit.
	Issued *Issued
	Errors validate.Errors
}

func NewGSTDraft() *GSTDraft { return &GSTDraft{Errors: validate.Errors{}} }

func (d *GSTDraft) SetField(name, value string) {
	if name != "gstNumber" {
		return
	}
	d.GSTNumber = value
	delete(d.Errors, name)
}

func (d *GSTDraft) Validate() validate.Errors {
	return gstRules.Check(func(string) string { return d.GSTNumber })
}

func (d *GSTDraft) Submit(ctx context.Context, s CredentialIssuer) Outcome {
	if errs := d.Validate(); errs.Any() {
		d.Errors = errs
		return invalid(errs)
	}
	gst, _ := validate.GST(d.GSTNumber)
	pw, err := GeneratePassword()
	if err != nil {
		return failed(err, "Failed to generate password")
	}
	if err := s.IssueCredential(ctx, gst, pw); err != nil {
		return failed(err, "Failed to save generated password")
	}
	*d = *NewGSTDraft()
	d.Issued = &Issued{GSTNumber: gst, Password: pw, At: time.Now()}
	return Outcome{Done: true}
}
