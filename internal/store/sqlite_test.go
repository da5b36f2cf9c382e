package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "raincast-test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestStoreCreateAndLookupUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == "" || u.CreatedUTC.IsZero() {
		t.Fatalf("expected id and created time, got %+v", u)
	}

	byName, err := s.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("user by username: %v", err)
	}
	if byName.ID != u.ID || byName.Email != "alice@example.com" || byName.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", byName)
	}

	byID, err := s.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("user by id: %v", err)
	}
	if byID.Username != "alice" {
		t.Fatalf("unexpected username %q", byID.Username)
	}

	n, err := s.CountUsers(ctx)
	if err != nil || n != 1 {
		t.Fatalf("count users: n=%d err=%v", n, err)
	}
}

func TestStoreRejectsDuplicates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "bob", "bob@example.com", "h"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := s.CreateUser(ctx, "bob", "other@example.com", "h"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := s.CreateUser(ctx, "bobby", "bob@example.com", "h"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	n, _ := s.CountUsers(ctx)
	if n != 1 {
		t.Fatalf("duplicates must not be inserted, count=%d", n)
	}
}

func TestStoreUnknownUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.UserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.TouchLogin(ctx, "missing-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from TouchLogin, got %v", err)
	}
}

func TestStoreReopenKeepsUsers(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.CreateUser(context.Background(), "carol", "carol@example.com", "h"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = s.Close()

	s, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen (migrations must be idempotent): %v", err)
	}
	defer s.Close()
	if _, err := s.UserByUsername(context.Background(), "carol"); err != nil {
		t.Fatalf("user lost after reopen: %v", err)
	}
}

func TestStoreAppState(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.GetAppState("model_version"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := s.SetAppState("model_version", "v1.0.0"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetAppState("model_version", "v1.1.0"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.GetAppState("model_version")
	if err != nil || !ok || v != "v1.1.0" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}
}
