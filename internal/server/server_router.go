package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func buildRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Pages
	r.Get("/", a.rootHandler)
	r.With(a.redirectIfAuthenticated).Get("/login", a.loginPageHandler)
	r.Post("/login", a.loginHandler)
	r.With(a.redirectIfAuthenticated).Get("/signup", a.signupPageHandler)
	r.Post("/signup", a.signupHandler)
	r.Get("/logout", a.logoutHandler)
	r.With(a.pageSessionRequired).Get("/index", a.indexHandler)

	// Page scripts and static assets
	r.Get("/ui/flash.js", scriptHandler(uiFlashJS))
	r.Get("/ui/auth.js", scriptHandler(uiAuthJS))
	r.Get("/ui/predict.js", scriptHandler(uiPredictJS))
	r.Get("/static/*", a.staticHandler)

	// Prediction API
	r.With(a.apiSessionRequired).Post("/predict", a.predictHandler)
	r.Get("/model_info", a.modelInfoHandler)

	// Health/info
	r.Get("/healthz", a.healthzHandler)
	r.Get("/api/v1/server-info", serverInfoHandler)

	return r
}
