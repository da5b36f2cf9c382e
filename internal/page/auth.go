package page

import (
	"net/url"
	"sync"
	"time"

	"github.com/izzyreal/raincast/internal/clock"
	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/forms"
)

// DefaultRevertAfter is how long the submit control stays in its processing
// state when no navigation follows a valid submit.
const DefaultRevertAfter = 5 * time.Second

type AuthOptions struct {
	Fields      []forms.Field
	Submit      Control
	Annotator   Annotator
	Meter       StrengthMeter
	Notifier    Notifier
	Clock       clock.Clock
	RevertAfter time.Duration
}

// AuthController drives a login or signup form.
type AuthController struct {
	mu          sync.Mutex
	fields      []forms.Field
	submit      Control
	annotator   Annotator
	meter       StrengthMeter
	notifier    Notifier
	clock       clock.Clock
	revertAfter time.Duration

	revert        clock.Timer
	originalLabel string
}

func NewAuthController(opts AuthOptions) *AuthController {
	c := &AuthController{
		fields:      opts.Fields,
		submit:      opts.Submit,
		annotator:   opts.Annotator,
		meter:       opts.Meter,
		notifier:    opts.Notifier,
		clock:       opts.Clock,
		revertAfter: opts.RevertAfter,
	}
	if c.clock == nil {
		c.clock = clock.Real{}
	}
	if c.revertAfter <= 0 {
		c.revertAfter = DefaultRevertAfter
	}
	return c
}

// PasswordInput updates the strength meter for the current password.
func (c *AuthController) PasswordInput(password string) forms.Level {
	_, level := forms.Strength(password)
	if c.meter != nil {
		c.meter.SetStrength(level)
	}
	return level
}

// ConfirmInput runs the live confirm-password check. Nothing changes while
// the password itself is empty.
func (c *AuthController) ConfirmInput(password, confirm string) bool {
	if password == "" {
		return false
	}
	c.annotator.Clear(forms.FieldConfirmPassword)
	if forms.ConfirmMismatch(password, confirm) {
		c.annotator.Annotate(forms.FieldConfirmPassword, forms.MsgPasswordMismatch)
		return true
	}
	return false
}

// Submit validates the snapshot and reports whether the form may be sent.
func (c *AuthController) Submit(values url.Values) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.fields {
		c.annotator.Clear(f.Name)
	}
	rep := forms.CheckSubmit(c.fields, values)
	for _, a := range rep.Annotations {
		c.annotator.Annotate(a.Field, a.Message)
	}
	if rep.Notice != "" && c.notifier != nil {
		c.notifier.Notify(flash.KindError, rep.Notice)
	}
	if !rep.Valid {
		return false
	}

	if c.submit != nil {
		if c.revert != nil {
			c.revert.Stop()
		} else {
			c.originalLabel = c.submit.Label()
		}
		c.submit.SetLabel(LabelProcessing)
		c.submit.SetBusy(true)
		var t clock.Timer
		t = c.clock.AfterFunc(c.revertAfter, func() { c.revertSubmit(t) })
		c.revert = t
	}
	return true
}

// revertSubmit restores the control when t is still the current revert
// timer. A timer that fired while Submit replaced it is ignored.
func (c *AuthController) revertSubmit(t clock.Timer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.revert == nil || c.revert != t {
		return
	}
	c.revert = nil
	c.submit.SetLabel(c.originalLabel)
	c.submit.SetBusy(false)
}
