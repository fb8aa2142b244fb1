package firebase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nkeinfinity/internal/firebase"
)

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts:signInWithPassword" || r.URL.Query().Get("key") != "k1" {
			t.Errorf("unexpected request %s", r.URL)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		if body["password"] != "secret1" {
			w.WriteHeader(400)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))
			return
		}
		if body["returnSecureToken"] != true {
			t.Errorf("returnSecureToken not set")
		}
		_, _ = w.Write([]byte(`{"idToken":"id.tok.en","email":"admin@example.com","expiresIn":"3600"}`))
	}))
	defer srv.Close()

	c := firebase.New(srv.URL, "k1", 2*time.Second)
	tok, err := c.SignIn(context.Background(), "admin@example.com", "secret1")
	if err != nil || tok != "id.tok.en" {
		t.Fatalf("sign in = %q, %v", tok, err)
	}
	if _, err := c.SignIn(context.Background(), "admin@example.com", "nope"); !errors.Is(err, firebase.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}
