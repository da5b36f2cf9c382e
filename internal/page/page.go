// Package page holds the page controllers that sit between a form and the
// service: the auth form controller, the prediction submission flow and the
// result renderer. Controllers talk to the screen only through the small
// capability interfaces below, so a browser, a terminal or a test double
// can host them.
package page

import (
	"context"
	"net/url"

	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/forms"
	"github.com/izzyreal/raincast/internal/protocol"
)

const (
	LabelProcessing = "Processing..."
	LabelPredicting = "Predicting..."
)

// Control is a submit button.
type Control interface {
	Label() string
	SetLabel(string)
	SetDisabled(bool)
	// SetBusy toggles the loading indicator without disabling the control.
	SetBusy(bool)
}

// Annotator shows and clears per-field error messages.
type Annotator interface {
	Annotate(field, message string)
	Clear(field string)
}

type StrengthMeter interface {
	SetStrength(forms.Level)
}

type Notifier interface {
	Notify(kind flash.Kind, text string) *flash.Message
}

// ResultView shows the result region: fill it, reveal it, scroll to it.
type ResultView interface {
	Reveal(Rendered)
}

// Predictor sends one prediction request for a form snapshot.
type Predictor interface {
	Predict(ctx context.Context, snapshot url.Values) (protocol.PredictionResult, error)
}
