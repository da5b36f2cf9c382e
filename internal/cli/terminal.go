package cli

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/izzyreal/raincast/internal/flash"
	"github.com/izzyreal/raincast/internal/forms"
	"github.com/izzyreal/raincast/internal/page"
)

// lockedWriter serialises writes from timer goroutines and the command.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newLockedWriter(w io.Writer) *lockedWriter {
	if lw, ok := w.(*lockedWriter); ok {
		return lw
	}
	return &lockedWriter{w: w}
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// terminalControl is the submit control of the terminal "form". Busy labels
// are echoed as status lines.
type terminalControl struct {
	mu       sync.Mutex
	out      io.Writer
	label    string
	disabled bool
}

func (c *terminalControl) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *terminalControl) SetLabel(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == page.LabelPredicting || s == page.LabelProcessing {
		fmt.Fprintln(c.out, s)
	}
	c.label = s
}

func (c *terminalControl) SetDisabled(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = v
}

func (c *terminalControl) SetBusy(bool) {}

// terminalAnnotator prints field annotations as "field: message" lines.
type terminalAnnotator struct {
	out io.Writer
}

func (a terminalAnnotator) Annotate(field, message string) {
	fmt.Fprintf(a.out, "  %s: %s\n", field, message)
}

func (terminalAnnotator) Clear(string) {}

type terminalMeter struct {
	out io.Writer
}

func (m terminalMeter) SetStrength(l forms.Level) {
	fmt.Fprintf(m.out, "  password strength: %s\n", l)
}

type terminalView struct {
	out io.Writer
}

func (v terminalView) Reveal(r page.Rendered) {
	fmt.Fprintf(v.out, "%s  [%s]\n", r.Text, r.Class)
	fmt.Fprintf(v.out, "%s (%s)\n", r.ConfidenceText, r.Band)
	if len(r.Features) == 0 {
		return
	}
	fmt.Fprintln(v.out)
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	for _, f := range r.Features {
		fmt.Fprintf(tw, "  %s\t%s\n", f.Name, f.Value)
	}
	_ = tw.Flush()
}

// newTerminalNotifier prints each message once, when it becomes visible.
func newTerminalNotifier(out io.Writer) *flash.Notifier {
	return flash.New(flash.Options{
		Observer: func(ev flash.Event) {
			if ev.State != flash.Visible {
				return
			}
			fmt.Fprintf(out, "[%s] %s\n", ev.Kind, ev.Text)
		},
	})
}
