package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry decodes the exp claim from the token's middle segment without
// verifying the signature. A token without exp yields the zero time.
func Expiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, err
	}
	return exp.Time, nil
}

// Expired reports whether the token is unreadable or past its exp at now.
func Expired(token string, now time.Time) bool {
	if token == "" {
		return true
	}
	exp, err := Expiry(token)
	if err != nil {
		return true
	}
	if exp.IsZero() {
		return false
	}
	return !now.Before(exp)
}

// Email returns the email claim when present.
func Email(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	e, _ := claims["email"].(string)
	return e
}
