package page

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/izzyreal/raincast/internal/client"
	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/protocol"
)

const (
	MsgPredictionFailed = "Prediction failed"
	MsgDemoMode         = "⚠️ Using demo mode - actual model not available"
)

type PredictionOptions struct {
	Predictor Predictor
	Submit    Control
	View      ResultView
	Notifier  Notifier
	Renderer  *Renderer
}

// PredictionController submits the prediction form and renders the result.
type PredictionController struct {
	predictor Predictor
	submit    Control
	view      ResultView
	notifier  Notifier
	renderer  Renderer
}

func NewPredictionController(opts PredictionOptions) *PredictionController {
	c := &PredictionController{
		predictor: opts.Predictor,
		submit:    opts.Submit,
		view:      opts.View,
		notifier:  opts.Notifier,
	}
	if opts.Renderer != nil {
		c.renderer = *opts.Renderer
	} else {
		c.renderer = NewRenderer()
	}
	return c
}

// Submit sends snapshot and renders the answer. Failures are shown through
// the notifier and also returned. The submit control is restored on every
// path, including a panicking view.
func (c *PredictionController) Submit(ctx context.Context, snapshot url.Values) error {
	original := c.submit.Label()
	c.submit.SetLabel(LabelPredicting)
	c.submit.SetDisabled(true)
	defer func() {
		c.submit.SetLabel(original)
		c.submit.SetDisabled(false)
	}()

	res, err := c.predictor.Predict(ctx, snapshot)
	if err != nil {
		c.notifier.Notify(flash.KindError, ErrorMessage(err))
		return err
	}
	c.view.Reveal(c.renderer.Render(res))
	if res.DemoMode {
		c.notifier.Notify(flash.KindWarning, MsgDemoMode)
	}
	return nil
}

// ErrorMessage is the notification text for a failed prediction.
func ErrorMessage(err error) string {
	var appErr *client.ApplicationError
	var schemaErr *protocol.SchemaError
	var transportErr *client.TransportError
	switch {
	case errors.As(err, &appErr):
		if appErr.Message != "" {
			return appErr.Message
		}
		return MsgPredictionFailed
	case errors.As(err, &schemaErr):
		return "Malformed prediction response: " + strings.Join(schemaErr.Problems, "; ")
	case errors.As(err, &transportErr):
		return "Network error: " + transportErr.Err.Error()
	default:
		return "Network error: " + err.Error()
	}
}
