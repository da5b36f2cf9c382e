package server

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/izzyreal/raincast/internal/features"
	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/forms"
	"github.com/izzyreal/raincast/internal/protocol"
)

var (
	loginTemplate  = mustPage("login", loginHTML)
	signupTemplate = mustPage("signup", signupHTML)
	indexTemplate  = mustPage("index", indexHTML)
)

func mustPage(name, body string) *template.Template {
	t := template.Must(template.New(name).Parse(uiHeadHTML))
	return template.Must(t.Parse(body))
}

type pageData struct {
	Title    string
	Flashes  []flash.Entry
	Report   forms.Report
	Values   map[string]string
	Username string
	Features []featureField
	Model    protocol.ModelInfo

	FlashTTLMS  int64
	FlashExitMS int64
}

type fieldView struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Message  string
	Strength bool
}

// Field builds the view for one auth form input.
func (d pageData) Field(name, label, typ string) fieldView {
	return fieldView{
		Name:     name,
		Label:    label,
		Type:     typ,
		Value:    d.Values[name],
		Message:  d.Report.Message(name),
		Strength: name == forms.FieldPassword && d.Title == "Sign Up",
	}
}

type featureField struct {
	features.Feature
	Label    string
	HasRange bool
}

func (a *app) indexHandler(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Predict", Model: a.predictor.Info()}
	if claims, ok := sessionFrom(r.Context()); ok {
		data.Username = claims.Username
	}
	for _, f := range a.catalog.Features {
		data.Features = append(data.Features, featureField{Feature: f, Label: f.Label(), HasRange: f.Min != f.Max})
	}
	a.renderPage(w, r, http.StatusOK, indexTemplate, data)
}

// renderPage prepends flashes queued before a redirect and writes the page.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, status int, t *template.Template, data pageData) {
	data.Flashes = append(flash.Pop(w, r), data.Flashes...)
	data.FlashTTLMS = a.cfg.Flash.TTL.Milliseconds()
	data.FlashExitMS = a.cfg.Flash.Exit.Milliseconds()

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		slog.Error("render page failed", "page", t.Name(), "error", err)
		http.Error(w, "render page failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func scriptHandler(src string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		_, _ = w.Write([]byte(src))
	}
}
