package page

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/izzyreal/raincast/internal/client"
	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/protocol"
	"github.com/izzyreal/raincast/internal/testutil"
)

type predictFixture struct {
	clock    *testutil.ManualClock
	submit   *fakeControl
	view     *fakeView
	notifier *flash.Notifier
	ctrl     *PredictionController
}

func newPredictFixture(t *testing.T, h http.Handler) *predictFixture {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return newPredictFixtureWith(c)
}

func newPredictFixtureWith(p Predictor) *predictFixture {
	f := &predictFixture{
		clock:  testutil.NewManualClock(),
		submit: &fakeControl{label: "Predict Rainfall"},
		view:   &fakeView{},
	}
	f.notifier = flash.New(flash.Options{Clock: f.clock})
	f.ctrl = NewPredictionController(PredictionOptions{
		Predictor: p,
		Submit:    f.submit,
		View:      f.view,
		Notifier:  f.notifier,
	})
	return f
}

func (f *predictFixture) assertRestored(t *testing.T) {
	t.Helper()
	if f.submit.Label() != "Predict Rainfall" || f.submit.disabled {
		t.Fatalf("submit control not restored: label=%q disabled=%v", f.submit.Label(), f.submit.disabled)
	}
}

func TestPredictionSuccessRendersResult(t *testing.T) {
	var sawDisabled bool
	var f *predictFixture
	f = newPredictFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawDisabled = f.submit.isDisabled() && f.submit.Label() == LabelPredicting
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction": "Rain Expected", "confidence": 82, "features": {"humidity_pct": 91}}`))
	}))

	if err := f.ctrl.Submit(context.Background(), url.Values{"humidity": {"91"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !sawDisabled {
		t.Fatalf("control should be disabled with the predicting label while in flight")
	}
	if len(f.view.revealed) != 1 {
		t.Fatalf("expected one reveal, got %d", len(f.view.revealed))
	}
	r := f.view.revealed[0]
	if r.Text != "Rain Expected" || r.Class != protocol.ResultClassRain || r.ConfidenceText != "Confidence: 82%" || r.Band != BandHigh {
		t.Fatalf("unexpected rendering: %+v", r)
	}
	if len(r.Features) != 1 || r.Features[0].Name != "Humidity Pct" || r.Features[0].Value != "91" {
		t.Fatalf("unexpected feature rows: %+v", r.Features)
	}
	if f.notifier.Len() != 0 {
		t.Fatalf("success must not notify")
	}
	f.assertRestored(t)
}

func TestPredictionDemoModeWarns(t *testing.T) {
	f := newPredictFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction": "No Rainfall Expected", "confidence": 33, "features": {}, "demo_mode": true}`))
	}))
	if err := f.ctrl.Submit(context.Background(), url.Values{}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(f.view.revealed) != 1 {
		t.Fatalf("demo results still render, got %d reveals", len(f.view.revealed))
	}
	msgs := f.notifier.Messages()
	if len(msgs) != 1 || msgs[0].Kind != flash.KindWarning || msgs[0].Text != MsgDemoMode {
		t.Fatalf("expected demo mode warning, got %+v", msgs)
	}
	f.assertRestored(t)
}

func TestPredictionApplicationErrorNotifies(t *testing.T) {
	f := newPredictFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad input"}`))
	}))
	err := f.ctrl.Submit(context.Background(), url.Values{})
	if err == nil {
		t.Fatalf("expected error")
	}
	msgs := f.notifier.Messages()
	if len(msgs) != 1 || msgs[0].Text != "bad input" {
		t.Fatalf("expected \"bad input\" notification, got %+v", msgs)
	}
	if len(f.view.revealed) != 0 {
		t.Fatalf("result must stay hidden on error")
	}
	f.assertRestored(t)
}

func TestPredictionApplicationErrorFallbackMessage(t *testing.T) {
	f := newPredictFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	_ = f.ctrl.Submit(context.Background(), url.Values{})
	if msgs := f.notifier.Messages(); len(msgs) != 1 || msgs[0].Text != MsgPredictionFailed {
		t.Fatalf("expected fallback message, got %+v", msgs)
	}
	f.assertRestored(t)
}

func TestPredictionTransportFailureNotifies(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	srv.Close()
	f := newPredictFixtureWith(c)

	err = f.ctrl.Submit(context.Background(), url.Values{})
	var te *client.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error, got %v", err)
	}
	msgs := f.notifier.Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "Network error") {
		t.Fatalf("expected network error notification, got %+v", msgs)
	}
	f.assertRestored(t)

	f.clock.Advance(5300 * time.Millisecond)
	if f.notifier.Len() != 0 {
		t.Fatalf("notification should auto-remove, %d left", f.notifier.Len())
	}
}

func TestPredictionMalformedResponseNotifies(t *testing.T) {
	f := newPredictFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction": "Rain Expected", "confidence": 82}`))
	}))
	err := f.ctrl.Submit(context.Background(), url.Values{})
	if !errors.Is(err, protocol.ErrMalformedResult) {
		t.Fatalf("expected malformed result error, got %v", err)
	}
	msgs := f.notifier.Messages()
	if len(msgs) != 1 || !strings.HasPrefix(msgs[0].Text, "Malformed prediction response: ") || !strings.Contains(msgs[0].Text, "features is required") {
		t.Fatalf("unexpected notification: %+v", msgs)
	}
	if len(f.view.revealed) != 0 {
		t.Fatalf("malformed result must not be rendered")
	}
	f.assertRestored(t)
}

type stubPredictor struct {
	res protocol.PredictionResult
}

func (s stubPredictor) Predict(context.Context, url.Values) (protocol.PredictionResult, error) {
	return s.res, nil
}

func TestPredictionRestoresControlWhenViewPanics(t *testing.T) {
	f := newPredictFixtureWith(stubPredictor{res: protocol.PredictionResult{Prediction: "x", Features: map[string]any{}}})
	f.view.panicMsg = "render blew up"
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_ = f.ctrl.Submit(context.Background(), url.Values{})
	}()
	f.assertRestored(t)
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&client.ApplicationError{Status: 401, Message: "Please login first"}, "Please login first"},
		{&client.ApplicationError{Status: 500}, "Prediction failed"},
		{&client.TransportError{Op: "predict", Err: errors.New("connection refused")}, "Network error: connection refused"},
		{&protocol.SchemaError{Problems: []string{"a", "b"}}, "Malformed prediction response: a; b"},
		{context.DeadlineExceeded, "Network error: context deadline exceeded"},
	}
	for _, tc := range cases {
		if got := ErrorMessage(tc.err); got != tc.want {
			t.Fatalf("ErrorMessage(%v): got %q want %q", tc.err, got, tc.want)
		}
	}
}
