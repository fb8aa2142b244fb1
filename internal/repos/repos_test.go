package repos_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"nkeinfinity/internal/domain"
	"nkeinfinity/internal/repos"
	"nkeinfinity/internal/session"
)

func TestSessionRepoStore(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	r := repos.NewSessionRepo(db)

	if _, err := r.Get(ctx, "missing"); !errors.Is(err, session.ErrNoToken) {
		t.Fatalf("want ErrNoToken, got %v", err)
	}
	if err := r.Put(ctx, "sid", "tok-1", time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := r.Put(ctx, "sid", "tok-2", time.Hour); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(ctx, "sid")
	if err != nil || got != "tok-2" {
		t.Fatalf("want tok-2, got %q err=%v", got, err)
	}
	if err := r.Delete(ctx, "sid"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(ctx, "sid"); !errors.Is(err, session.ErrNoToken) {
		t.Fatalf("want ErrNoToken after delete, got %v", err)
	}
}

func TestSessionRepoExpiry(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	r := repos.NewSessionRepo(db)
	if _, err := db.Exec(`INSERT INTO sessions(id, token, expires_at) VALUES('old','tok', ?)`,
		time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(ctx, "old"); !errors.Is(err, session.ErrNoToken) {
		t.Fatalf("expired row should read as no token, got %v", err)
	}
	n, err := r.PurgeExpired(ctx)
	if err != nil || n != 1 {
		t.Fatalf("want 1 purged, got %d err=%v", n, err)
	}
}

func TestContactRepo(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	r := repos.NewContactRepo(db)

	seeded, err := r.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(seeded) != 4 {
		t.Fatalf("want 4 seeded contacts, got %d", len(seeded))
	}

	c := domain.Contact{ID: "c-new", Name: "Jane Doe", Email: "jane@x.com", Phone: "9876543210",
		Message: "Interested in bulk laptop purchase", Type: domain.ContactNew, Status: domain.ContactPending,
		CreatedAt: "2030-01-01T00:00:00Z"}
	if err := r.Create(ctx, c); err != nil {
		t.Fatal(err)
	}
	list, _ := r.List(ctx)
	if list[0].ID != "c-new" {
		t.Fatalf("newest contact should be first, got %s", list[0].ID)
	}

	if err := r.UpdateStatus(ctx, "c-new", domain.ContactContacted); err != nil {
		t.Fatal(err)
	}
	if err := r.SetPassword(ctx, "c-new", "$2a$hash"); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(ctx, "c-new")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.ContactContacted || got.Type != domain.ContactExisting || !got.HasPassword() {
		t.Fatalf("unexpected contact after updates: %+v", got)
	}

	if err := r.UpdateStatus(ctx, "nope", domain.ContactCompleted); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want ErrNoRows for unknown id, got %v", err)
	}

	g, err := r.AddCredential(ctx, "29ABCDE1234F1Z5", "$2a$hash")
	if err != nil {
		t.Fatal(err)
	}
	if g.ID == 0 || g.GSTNumber != "29ABCDE1234F1Z5" {
		t.Fatalf("bad credential row: %+v", g)
	}
	creds, _ := r.ListCredentials(ctx)
	if len(creds) != 1 {
		t.Fatalf("want 1 credential, got %d", len(creds))
	}
}
