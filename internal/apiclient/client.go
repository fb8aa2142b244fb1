// Package apiclient translates back-office operations into calls on the
// external REST API. Every request carries the bearer token of the bound
// session; a 401/403 response clears that token and yields ErrUnauthorized.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrUnauthorized marks responses that mean the session token is missing,
	// invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNetwork is returned when no response was received.
	ErrNetwork = errors.New("No response from server. Please check your connection.")
)

// Error is a non-success response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error {
	if e.Status == fiber.StatusUnauthorized || e.Status == fiber.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// TokenSource supplies and revokes the bearer token. session.Holder satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type noTokens struct{}

func (noTokens) Token(context.Context) (string, error) { return "", nil }
func (noTokens) Clear(context.Context) error           { return nil }

type Client struct {
	base    string
	timeout time.Duration
	tokens  TokenSource
}

// New returns an anonymous client. timeout <= 0 keeps the transport default.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/"), timeout: timeout, tokens: noTokens{}}
}

// As returns a copy of the client bound to ts.
func (c *Client) As(ts TokenSource) *Client {
	cp := *c
	if ts == nil {
		ts = noTokens{}
	}
	cp.tokens = ts
	return &cp
}

// File is one uploaded file inside a multipart request.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type field struct{ key, value string }

type part struct {
	field string
	file  File
}

type request struct {
	method string
	path   string
	json   any
	fields []field
	files  []part
}

func (r *request) multipart() bool { return len(r.fields) > 0 || len(r.files) > 0 }

// envelope is the status portion every backend response carries.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(r.method)
	req.SetRequestURI(c.base + r.path)
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	if tok != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	switch {
	case r.multipart():
		body, ctype, err := encodeMultipart(r.fields, r.files)
		if err != nil {
			fiber.ReleaseAgent(a)
			return err
		}
		a.ContentType(ctype)
		a.Body(body)
	case r.json != nil:
		a.JSON(r.json)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w (%s %s: %v)", ErrNetwork, r.method, r.path, errs[0])
	}
	return c.decode(ctx, code, body, out)
}

func (c *Client) decode(ctx context.Context, code int, body []byte, out any) error {
	var env envelope
	_ = json.Unmarshal(body, &env)

	if code < 200 || code > 299 {
		msg := env.text()
		if msg == "" {
			msg = fmt.Sprintf("Server error: %d", code)
		}
		apiErr := &Error{Status: code, Message: msg}
		if errors.Is(apiErr, ErrUnauthorized) {
			_ = c.tokens.Clear(ctx)
		}
		return apiErr
	}
	if env.Success != nil && !*env.Success {
		msg := env.text()
		if msg == "" {
			msg = "Request failed"
		}
		return &Error{Status: code, Message: msg}
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func encodeMultipart(fields []field, files []part) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", err
		}
	}
	for _, p := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(p.field), escapeQuotes(p.file.Name)))
		ct := p.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := pw.Write(p.file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
