package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/izzyreal/raincast/internal/protocol"
	"github.com/izzyreal/raincast/internal/server/httpx"
	"github.com/izzyreal/raincast/internal/version"
)

func serverInfoHandler(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	host = strings.TrimSpace(host)
	httpx.WriteJSON(w, http.StatusOK, protocol.ServerInfo{
		Name:       "raincast",
		APIVersion: version.APIVersion,
		Version:    version.Current(),
		Hostname:   host,
	})
}

func (a *app) healthzHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.db.Ping(r.Context()); err != nil {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
