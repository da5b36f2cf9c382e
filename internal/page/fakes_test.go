package page

import (
	"sync"

	"github.com/izzyreal/raincast/internal/forms"
)

type fakeControl struct {
	mu       sync.Mutex
	label    string
	disabled bool
	busy     bool
	labels   []string
}

func (c *fakeControl) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *fakeControl) SetLabel(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.label = s
	c.labels = append(c.labels, s)
}

func (c *fakeControl) SetDisabled(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = v
}

func (c *fakeControl) isDisabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

func (c *fakeControl) SetBusy(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = v
}

type fakeAnnotator struct {
	fields map[string][]string
}

func newFakeAnnotator() *fakeAnnotator {
	return &fakeAnnotator{fields: map[string][]string{}}
}

func (a *fakeAnnotator) Annotate(field, message string) {
	a.fields[field] = append(a.fields[field], message)
}

func (a *fakeAnnotator) Clear(field string) {
	delete(a.fields, field)
}

func (a *fakeAnnotator) count() int {
	n := 0
	for _, msgs := range a.fields {
		n += len(msgs)
	}
	return n
}

type fakeMeter struct {
	level forms.Level
	calls int
}

func (m *fakeMeter) SetStrength(l forms.Level) {
	m.level = l
	m.calls++
}

type fakeView struct {
	revealed []Rendered
	panicMsg string
}

func (v *fakeView) Reveal(r Rendered) {
	if v.panicMsg != "" {
		panic(v.panicMsg)
	}
	v.revealed = append(v.revealed, r)
}
