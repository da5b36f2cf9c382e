package server

import (
	"context"
	"net/http"

	"github.com/izzyreal/raincast/internal/auth"
	"github.com/izzyreal/raincast/internal/server/httpx"
)

const msgLoginFirst = "Please login first"

type sessionKey struct{}

func withSession(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, sessionKey{}, claims)
}

func sessionFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(sessionKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}

// apiSessionRequired answers 401 JSON for requests without a valid session.
func (a *app) apiSessionRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.users.Tokens().FromRequest(r)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, msgLoginFirst)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), claims)))
	})
}

// pageSessionRequired redirects page requests without a session to /login.
func (a *app) pageSessionRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.users.Tokens().FromRequest(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), claims)))
	})
}

func (a *app) redirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := a.users.Tokens().FromRequest(r); err == nil {
			http.Redirect(w, r, "/index", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *app) rootHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := a.users.Tokens().FromRequest(r); err == nil {
		http.Redirect(w, r, "/index", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
