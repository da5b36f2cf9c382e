package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-chi/chi/v5"
)

// staticHandler serves files under server.static_dir whose relative path
// matches one of the server.static_allow patterns.
func (a *app) staticHandler(w http.ResponseWriter, r *http.Request) {
	root := strings.TrimSpace(a.cfg.Server.StaticDir)
	if root == "" {
		http.NotFound(w, r)
		return
	}
	rel, ok := cleanStaticPath(chi.URLParam(r, "*"))
	if !ok || !staticAllowed(a.cfg.Server.StaticAllow, rel) {
		http.NotFound(w, r)
		return
	}
	full := filepath.Join(root, filepath.FromSlash(rel))
	st, err := os.Stat(full)
	if err != nil || st.IsDir() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, full)
}

// cleanStaticPath normalises a request path and rejects anything that
// would leave the static root.
func cleanStaticPath(p string) (string, bool) {
	p = strings.TrimSpace(p)
	if p == "" || strings.Contains(p, "\\") {
		return "", false
	}
	cleaned := path.Clean("/" + p)
	rel := strings.TrimPrefix(cleaned, "/")
	if rel == "" || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return rel, true
}

func staticAllowed(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}
