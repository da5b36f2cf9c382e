package server

import (
	"errors"
	"log/slog"
	"html/template"
	"net/http"
	"strings"

	"github.com/izzyreal/raincast/internal/auth"
	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/forms"
	"github.com/izzyreal/raincast/internal/server/httpx"
)

const (
	msgLoginSuccess  = "Login successful!"
	msgSignupSuccess = "Account created successfully! Please login."
	msgLoggedOut     = "You have been logged out"
	msgServerError   = "Something went wrong, please try again"
)

func (a *app) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	a.renderPage(w, r, http.StatusOK, loginTemplate, pageData{Title: "Login"})
}

func (a *app) loginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	data := pageData{
		Title:  "Login",
		Values: map[string]string{forms.FieldUsername: strings.TrimSpace(r.PostForm.Get(forms.FieldUsername))},
	}
	rep := forms.Validate(forms.LoginFields(), r.PostForm)
	if !rep.Valid {
		data.Report = rep
		a.formFailure(w, r, http.StatusBadRequest, loginTemplate, data)
		return
	}

	user, token, err := a.users.Login(r.Context(), r.PostForm.Get(forms.FieldUsername), r.PostForm.Get(forms.FieldPassword))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Info("login rejected", "username", data.Values[forms.FieldUsername])
		data.Flashes = []flash.Entry{{Kind: flash.KindError, Text: err.Error()}}
		a.formFailure(w, r, http.StatusUnauthorized, loginTemplate, data)
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err)
		data.Flashes = []flash.Entry{{Kind: flash.KindError, Text: msgServerError}}
		a.formFailure(w, r, http.StatusInternalServerError, loginTemplate, data)
		return
	}

	a.users.Tokens().SetCookie(w, token)
	flash.Push(w, r, flash.KindSuccess, msgLoginSuccess)
	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

func (a *app) signupPageHandler(w http.ResponseWriter, r *http.Request) {
	a.renderPage(w, r, http.StatusOK, signupTemplate, pageData{Title: "Sign Up"})
}

func (a *app) signupHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	data := pageData{
		Title: "Sign Up",
		Values: map[string]string{
			forms.FieldUsername: strings.TrimSpace(r.PostForm.Get(forms.FieldUsername)),
			forms.FieldEmail:    strings.TrimSpace(r.PostForm.Get(forms.FieldEmail)),
		},
	}
	rep := forms.CheckSubmit(forms.SignupFields(), r.PostForm)
	if !rep.Valid {
		data.Report = rep
		if rep.Notice != "" {
			data.Flashes = []flash.Entry{{Kind: flash.KindError, Text: rep.Notice}}
		}
		a.formFailure(w, r, http.StatusBadRequest, signupTemplate, data)
		return
	}

	_, err := a.users.Register(r.Context(), auth.Signup{
		Username:        r.PostForm.Get(forms.FieldUsername),
		Email:           r.PostForm.Get(forms.FieldEmail),
		Password:        r.PostForm.Get(forms.FieldPassword),
		ConfirmPassword: r.PostForm.Get(forms.FieldConfirmPassword),
	})
	switch {
	case errors.Is(err, auth.ErrPasswordMismatch):
		data.Flashes = []flash.Entry{{Kind: flash.KindError, Text: err.Error()}}
		a.formFailure(w, r, http.StatusBadRequest, signupTemplate, data)
		return
	case errors.Is(err, auth.ErrUsernameTaken), errors.Is(err, auth.ErrEmailTaken):
		data.Flashes = []flash.Entry{{Kind: flash.KindError, Text: err.Error()}}
		a.formFailure(w, r, http.StatusConflict, signupTemplate, data)
		return
	case err != nil:
		slog.Error("signup failed", "error", err)
		data.Flashes = []flash.Entry{{Kind: flash.KindError, Text: msgServerError}}
		a.formFailure(w, r, http.StatusInternalServerError, signupTemplate, data)
		return
	}

	flash.Push(w, r, flash.KindSuccess, msgSignupSuccess)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *app) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if claims, err := a.users.Tokens().FromRequest(r); err == nil {
		slog.Info("user logged out", "user_id", claims.Subject, "username", claims.Username)
	}
	auth.ClearCookie(w)
	flash.Push(w, r, flash.KindInfo, msgLoggedOut)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// formFailure re-renders a rejected form, or answers {"error": ...} when the
// caller asked for JSON (the command line client does).
func (a *app) formFailure(w http.ResponseWriter, r *http.Request, status int, t *template.Template, data pageData) {
	if !strings.Contains(r.Header.Get("Accept"), "application/json") {
		a.renderPage(w, r, status, t, data)
		return
	}
	httpx.WriteError(w, status, failureMessage(data))
}

func failureMessage(data pageData) string {
	if len(data.Flashes) > 0 {
		return data.Flashes[0].Text
	}
	parts := make([]string, 0, len(data.Report.Annotations))
	for _, ann := range data.Report.Annotations {
		parts = append(parts, ann.Field+": "+ann.Message)
	}
	return strings.Join(parts, "; ")
}
