package services

import (
	"context"
	"errors"
	"time"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/firebase"
	"nkeinfinity/internal/session"
)

var (
	ErrBadCreds = errors.New("Invalid email or password")
	ErrNotAdmin = errors.New("This account does not have admin access")
	// ErrExpired is returned when the identity provider hands back a token
	// that is already expired or unreadable.
	ErrExpired = errors.New("Your session has expired. Please login again.")
)

// SignIner issues ID tokens for email/password credentials.
type SignIner interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

type AuthService struct {
	API *apiclient.Client
	// Identity signs admins in when set; otherwise the backend's /login is used.
	Identity SignIner
	Now      func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) signIn(ctx context.Context, email, password string) (string, error) {
	if s.Identity != nil {
		tok, err := s.Identity.SignIn(ctx, email, password)
		if errors.Is(err, firebase.ErrInvalidCredentials) {
			return "", ErrBadCreds
		}
		return tok, err
	}
	tok, err := s.API.Login(ctx, email, password)
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return "", ErrBadCreds
	}
	return tok, err
}

// Login signs in, stores the token in h and confirms admin access against
// the backend. It returns the admin's email.
func (s *AuthService) Login(ctx context.Context, h session.Holder, email, password string) (string, error) {
	tok, err := s.signIn(ctx, email, password)
	if err != nil {
		return "", err
	}
	if session.Expired(tok, s.now()) {
		return "", ErrExpired
	}
	if err := h.SetToken(ctx, tok); err != nil {
		return "", err
	}
	dash, err := s.API.As(h).Dashboard(ctx)
	if err != nil {
		_ = h.Clear(ctx)
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return "", ErrNotAdmin
		}
		return "", err
	}
	if who := session.Email(tok); who != "" {
		return who, nil
	}
	if dash.User.Email != "" {
		return dash.User.Email, nil
	}
	return email, nil
}

func (s *AuthService) Logout(ctx context.Context, h session.Holder) error {
	return h.Clear(ctx)
}

// CurrentAdmin returns the email behind the session token, and whether a
// live token exists at all.
func (s *AuthService) CurrentAdmin(ctx context.Context, h session.Holder) (string, bool, error) {
	tok, err := h.Token(ctx)
	if err != nil || tok == "" {
		return "", false, err
	}
	return session.Email(tok), true, nil
}
