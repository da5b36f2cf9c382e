package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/izzyreal/raincast/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "raincast.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st, NewTokens("test-secret", time.Hour)), st
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if !CheckPasswordHash("hunter22", hash) {
		t.Fatalf("expected password to match")
	}
	if CheckPasswordHash("hunter23", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u, err := svc.Register(ctx, Signup{Username: " rain ", Email: "rain@example.com", Password: "pw123456", ConfirmPassword: "pw123456"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Username != "rain" {
		t.Fatalf("username should be trimmed, got %q", u.Username)
	}

	got, token, err := svc.Login(ctx, "rain", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID || token == "" {
		t.Fatalf("unexpected login result: %+v token=%q", got, token)
	}
	claims, err := svc.Tokens().Validate(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Subject != u.ID || claims.Username != "rain" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, Signup{Username: "a", Email: "a@x.io", Password: "one", ConfirmPassword: "two"}); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if _, err := svc.Register(ctx, Signup{Username: "a", Email: "a@x.io", Password: "pw", ConfirmPassword: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, Signup{Username: "a", Email: "b@x.io", Password: "pw", ConfirmPassword: "pw"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
	if _, err := svc.Register(ctx, Signup{Username: "b", Email: "a@x.io", Password: "pw", ConfirmPassword: "pw"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
	if ErrUsernameTaken.Error() != "Username already exists" {
		t.Fatalf("user-facing message changed: %q", ErrUsernameTaken.Error())
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, Signup{Username: "a", Email: "a@x.io", Password: "pw", ConfirmPassword: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Login(ctx, "a", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", err)
	}
}

func TestTokenExpiryAndTamper(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return base }
	token, err := tokens.Issue("u1", "rain")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tokens.Validate(token); err != nil {
		t.Fatalf("fresh token should validate: %v", err)
	}
	if _, err := NewTokens("other", time.Minute).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret should fail, got %v", err)
	}
	tokens.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := tokens.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token should fail, got %v", err)
	}
}

func TestCookieHelpers(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	token, err := tokens.Issue("u1", "rain")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec := httptest.NewRecorder()
	tokens.SetCookie(rec, token)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || !cookies[0].HttpOnly || cookies[0].MaxAge != 3600 {
		t.Fatalf("unexpected cookie: %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/index", nil)
	req.AddCookie(cookies[0])
	claims, err := tokens.FromRequest(req)
	if err != nil || claims.Subject != "u1" {
		t.Fatalf("from request: %+v %v", claims, err)
	}
	if _, err := tokens.FromRequest(httptest.NewRequest(http.MethodGet, "/index", nil)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("missing cookie should fail, got %v", err)
	}

	rec = httptest.NewRecorder()
	ClearCookie(rec)
	if c := rec.Result().Cookies(); len(c) != 1 || c[0].MaxAge >= 0 {
		t.Fatalf("clear cookie should expire it: %+v", c)
	}
}
