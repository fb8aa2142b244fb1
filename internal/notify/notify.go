// Package notify tells the sales inbox about new contact messages.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"nkeinfinity/internal/domain"
)

type Notifier interface {
	NewContact(ctx context.Context, c domain.Contact) error
}

// Noop is used when no SMTP server is configured.
type Noop struct{}

func (Noop) NewContact(context.Context, domain.Contact) error { return nil }

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Mailer sends notifications over SMTP.
type Mailer struct {
	cfg  SMTPConfig
	opts []mail.Option
}

func NewMailer(cfg SMTPConfig) *Mailer {
	opts := []mail.Option{mail.WithPort(cfg.Port), mail.WithTLSPolicy(mail.TLSOpportunistic)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	return &Mailer{cfg: cfg, opts: opts}
}

func (m *Mailer) NewContact(ctx context.Context, c domain.Contact) error {
	msg, err := contactMessage(m.cfg.From, m.cfg.To, c)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(m.cfg.Host, m.opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func contactMessage(from, to string, c domain.Contact) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	if c.Email != "" {
		if err := msg.ReplyTo(c.Email); err != nil {
			return nil, err
		}
	}
	msg.Subject("New contact message from " + c.Name)
	msg.SetBodyString(mail.TypeTextPlain, contactBody(c))
	return msg, nil
}

func contactBody(c domain.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	if c.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", c.Company)
	}
	if c.GSTNumber != "" {
		fmt.Fprintf(&b, "GST: %s\n", c.GSTNumber)
	}
	fmt.Fprintf(&b, "\n%s\n", c.Message)
	return b.String()
}
