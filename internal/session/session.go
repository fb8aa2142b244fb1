// Package session owns the lifecycle of the admin's API token. A Holder is a
// narrow read/write view of one browser session's token over a Store.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoToken is returned by a Store when the session has no token.
var ErrNoToken = errors.New("session: no token")

// Store persists tokens keyed by session id.
type Store interface {
	Get(ctx context.Context, sid string) (string, error)
	Put(ctx context.Context, sid, token string, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
}

// Holder is the token view handed to the API client.
type Holder interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type bound struct {
	store Store
	sid   string
	ttl   time.Duration
	now   func() time.Time
}

// Bind returns the Holder for one session id. ttl caps how long a token is
// kept; a token's own expiry shortens it further.
func Bind(store Store, sid string, ttl time.Duration) Holder {
	return &bound{store: store, sid: sid, ttl: ttl, now: time.Now}
}

// Token returns the current token, or "" when there is none or it expired.
// Expired tokens are removed from the store.
func (b *bound) Token(ctx context.Context) (string, error) {
	if b.sid == "" {
		return "", nil
	}
	tok, err := b.store.Get(ctx, b.sid)
	if errors.Is(err, ErrNoToken) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if Expired(tok, b.now()) {
		_ = b.store.Delete(ctx, b.sid)
		return "", nil
	}
	return tok, nil
}

func (b *bound) SetToken(ctx context.Context, token string) error {
	if b.sid == "" {
		return errors.New("session: no session id")
	}
	ttl := b.ttl
	if exp, err := Expiry(token); err == nil && !exp.IsZero() {
		if left := exp.Sub(b.now()); ttl <= 0 || left < ttl {
			ttl = left
		}
	}
	return b.store.Put(ctx, b.sid, token, ttl)
}

func (b *bound) Clear(ctx context.Context) error {
	if b.sid == "" {
		return nil
	}
	return b.store.Delete(ctx, b.sid)
}

// Static is a Holder over a single in-process token.
type Static struct {
	mu    sync.Mutex
	Value string
}

func (s *Static) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Value, nil
}

func (s *Static) SetToken(_ context.Context, t string) error {
	s.mu.Lock()
	s.Value = t
	s.mu.Unlock()
	return nil
}

func (s *Static) Clear(context.Context) error {
	s.mu.Lock()
	s.Value = ""
	s.mu.Unlock()
	return nil
}
