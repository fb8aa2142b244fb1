package handlers_test

import (
	"bytes"
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"sync"
	"testing"
)

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Admin  string         `json:"admin"`
	Fields map[string]any `json:"fields"`
}

// capture logs by temporarily replacing the standard logger output
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0) // remove timestamps to make JSON parseable
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

func find(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

func TestAuthLogging(t *testing.T) {
	env := newEnv(t)
	b := env.browser(t)
	b.csrf()

	failLogs := captureLogs(t, func() {
		b.post("/login", url.Values{"email": {adminEmail}, "password": {"badpass!"}})
	})
	e, ok := find(failLogs, "auth.login.fail")
	if !ok {
		t.Fatal("auth.login.fail log not found")
	}
	if _, ok := e.Fields["email"]; !ok {
		t.Fatal("auth.login.fail missing email field")
	}
	if e.Level != "warn" {
		t.Fatalf("auth.login.fail level = %s", e.Level)
	}

	successLogs := captureLogs(t, func() { b.login(adminEmail) })
	e, ok = find(successLogs, "auth.login.success")
	if !ok {
		t.Fatal("auth.login.success log not found")
	}
	if e.Fields["email"] != adminEmail {
		t.Fatalf("auth.login.success email = %v", e.Fields["email"])
	}
}

func TestAdminActionsAudited(t *testing.T) {
	env := newEnv(t)
	b := env.admin(t)

	logs := captureLogs(t, func() {
		b.post("/admin/products/p2/delete", url.Values{"confirm": {"yes"}})
	})
	e, ok := find(logs, "admin.products.delete")
	if !ok {
		t.Fatal("delete not audited")
	}
	if e.Level != "audit" || e.Admin != adminEmail || e.Fields["product_id"] != "p2" {
		t.Fatalf("audit entry = %+v", e)
	}

	env.api.setExpired(true)
	logs = captureLogs(t, func() { b.get("/admin/gallery") })
	if _, ok := find(logs, "session.expired"); !ok {
		t.Fatal("session expiry not logged")
	}
}
