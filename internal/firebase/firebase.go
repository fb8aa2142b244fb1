// Package firebase signs admins in through the Identity Toolkit REST API.
package firebase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const DefaultURL = "https://identitytoolkit.googleapis.com"

// ErrInvalidCredentials covers every "wrong email or password" answer.
var ErrInvalidCredentials = errors.New("Invalid email or password")

type Client struct {
	base    string
	apiKey  string
	timeout time.Duration
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), apiKey: apiKey, timeout: timeout}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken   string `json:"idToken"`
	Email     string `json:"email"`
	ExpiresIn string `json:"expiresIn"`
	Error     *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn returns the ID token for email/password.
func (c *Client) SignIn(_ context.Context, email, password string) (string, error) {
	a := fiber.Post(c.base + "/v1/accounts:signInWithPassword?key=" + url.QueryEscape(c.apiKey))
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	a.JSON(signInRequest{Email: email, Password: password, ReturnSecureToken: true})

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("firebase sign-in: %w", errs[0])
	}
	var out signInResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("firebase sign-in: status %d: %w", code, err)
	}
	if out.Error != nil {
		if credentialError(out.Error.Message) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("firebase sign-in: %s", out.Error.Message)
	}
	if code != fiber.StatusOK || out.IDToken == "" {
		return "", fmt.Errorf("firebase sign-in: status %d", code)
	}
	return out.IDToken, nil
}

func credentialError(msg string) bool {
	switch {
	case strings.HasPrefix(msg, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(msg, "INVALID_PASSWORD"),
		strings.HasPrefix(msg, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(msg, "INVALID_EMAIL"),
		strings.HasPrefix(msg, "USER_DISABLED"):
		return true
	}
	return false
}
