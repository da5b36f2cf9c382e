package flash

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/izzyreal/raincast/internal/testutil"
)

func newTestNotifier(c *testutil.ManualClock, observer func(Event)) *Notifier {
	return New(Options{Clock: c, TTL: 5 * time.Second, Exit: 300 * time.Millisecond, Observer: observer})
}

func TestNotifierCreatesContainerLazily(t *testing.T) {
	n := newTestNotifier(testutil.NewManualClock(), nil)
	if n.HasContainer() || n.Len() != 0 || n.Messages() != nil {
		t.Fatalf("container must not exist before first notify")
	}
	n.Notify(KindInfo, "hello")
	if !n.HasContainer() || n.Len() != 1 {
		t.Fatalf("expected one message in a new container")
	}
}

func TestNotifierAutoDismiss(t *testing.T) {
	c := testutil.NewManualClock()
	var mu sync.Mutex
	var states []State
	n := newTestNotifier(c, func(ev Event) {
		mu.Lock()
		states = append(states, ev.State)
		mu.Unlock()
	})
	m := n.Notify(KindError, "bad input")

	c.Advance(4999 * time.Millisecond)
	if m.State() != Visible || n.Len() != 1 {
		t.Fatalf("message should still be visible before the delay")
	}
	c.Advance(time.Millisecond)
	if m.State() != AnimatingOut || n.Len() != 1 {
		t.Fatalf("message should be animating out, got %v", m.State())
	}
	c.Advance(300 * time.Millisecond)
	if m.State() != Removed || n.Len() != 0 {
		t.Fatalf("message should be removed, state=%v len=%d", m.State(), n.Len())
	}
	if diff := cmp.Diff([]State{Visible, AnimatingOut, Removed}, states); diff != "" {
		t.Fatalf("state sequence mismatch (-want +got):\n%s", diff)
	}
	if c.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", c.Pending())
	}
}

func TestNotifierManualCloseBeforeDelay(t *testing.T) {
	c := testutil.NewManualClock()
	n := newTestNotifier(c, nil)
	m := n.Notify(KindSuccess, "Login successful!")

	c.Advance(time.Second)
	if !m.Close() {
		t.Fatalf("close of visible message should report true")
	}
	if m.Close() {
		t.Fatalf("second close must be a no-op")
	}
	c.Advance(300 * time.Millisecond)
	if m.State() != Removed || n.Len() != 0 {
		t.Fatalf("closed message should be gone, state=%v len=%d", m.State(), n.Len())
	}
	c.Advance(10 * time.Second)
	if m.State() != Removed || n.Len() != 0 {
		t.Fatalf("removed is terminal")
	}
	if c.Pending() != 0 {
		t.Fatalf("auto-dismiss timer should have been stopped")
	}
}

func TestNotifierIndependentMessages(t *testing.T) {
	c := testutil.NewManualClock()
	n := newTestNotifier(c, nil)
	first := n.Notify(KindInfo, "one")
	c.Advance(2 * time.Second)
	second := n.Notify(KindInfo, "two")
	if first.ID() == second.ID() {
		t.Fatalf("message ids must differ")
	}
	c.Advance(3300 * time.Millisecond)
	msgs := n.Messages()
	if len(msgs) != 1 || msgs[0].Text != "two" {
		t.Fatalf("only the second message should remain: %+v", msgs)
	}
	c.Advance(2 * time.Second)
	if n.Len() != 0 {
		t.Fatalf("expected empty container, got %d", n.Len())
	}
}

func TestNotifierDefaults(t *testing.T) {
	n := New(Options{})
	if n.ttl != DefaultTTL || n.exit != DefaultExit {
		t.Fatalf("unexpected defaults: ttl=%v exit=%v", n.ttl, n.exit)
	}
}

func TestCookieQueueSurvivesRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	Push(rec, httptest.NewRequest(http.MethodPost, "/logout", nil), KindSuccess, "You have been logged out")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected flash cookie, got %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	got := Pop(rec, req)
	if diff := cmp.Diff([]Entry{{Kind: KindSuccess, Text: "You have been logged out"}}, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("pop should expire the cookie: %+v", cleared)
	}
}

func TestCookieQueueStripsMarkup(t *testing.T) {
	rec := httptest.NewRecorder()
	Push(rec, httptest.NewRequest(http.MethodGet, "/", nil), Kind("bogus"), `<script>alert(1)</script>hi <b>there</b>`)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	got := Pop(httptest.NewRecorder(), req)
	if len(got) != 1 || got[0].Text != "hi there" || got[0].Kind != KindInfo {
		t.Fatalf("unexpected sanitized entry: %+v", got)
	}
}

func TestPopWithoutCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	if got := Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil)); got != nil {
		t.Fatalf("expected no entries, got %+v", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie should be written")
	}
}
