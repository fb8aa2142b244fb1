package apiclient

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type loginResponse struct {
	Token   string `json:"token"`
	IDToken string `json:"idToken"`
}

// Login exchanges admin credentials for a token at the backend.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	err := c.do(ctx, request{
		method: fiber.MethodPost,
		path:   "/login",
		json:   map[string]string{"email": email, "password": password},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Token != "" {
		return out.Token, nil
	}
	if out.IDToken != "" {
		return out.IDToken, nil
	}
	return "", errors.New("Login failed")
}

// Dashboard is the admin landing payload.
type Dashboard struct {
	Message string `json:"message"`
	User    struct {
		Email string `json:"email"`
	} `json:"user"`
}

// Dashboard probes the admin-only endpoint; it fails with ErrUnauthorized
// when the bound token is not an admin token.
func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var out Dashboard
	err := c.do(ctx, request{method: fiber.MethodGet, path: "/admin/dashboard"}, &out)
	return out, err
}
