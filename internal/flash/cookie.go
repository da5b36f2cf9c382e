package flash

import (
	"encoding/base64"
	"encoding/json"
	"html"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const CookieName = "raincast_flash"

const maxQueued = 8

// Entry is a flash message waiting for the next page render.
type Entry struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

var strict = bluemonday.StrictPolicy()

// Push queues a message to be shown after a redirect. Entries already
// queued on r are kept.
func Push(w http.ResponseWriter, r *http.Request, kind Kind, text string) {
	queue := read(r)
	queue = append(queue, Entry{Kind: kind, Text: text})
	if len(queue) > maxQueued {
		queue = queue[len(queue)-maxQueued:]
	}
	data, err := json.Marshal(queue)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns queued messages and clears the cookie. The cookie is client
// controlled, so text is stripped of markup. Templates escape it again on
// output.
func Pop(w http.ResponseWriter, r *http.Request) []Entry {
	queue := read(r)
	if _, err := r.Cookie(CookieName); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return queue
}

func read(r *http.Request) []Entry {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var queue []Entry
	if err := json.Unmarshal(data, &queue); err != nil {
		return nil
	}
	out := queue[:0]
	for _, e := range queue {
		e.Text = strings.TrimSpace(html.UnescapeString(strict.Sanitize(e.Text)))
		if e.Text == "" {
			continue
		}
		switch e.Kind {
		case KindSuccess, KindError, KindWarning, KindInfo:
		default:
			e.Kind = KindInfo
		}
		out = append(out, e)
	}
	return out
}
