// Package flash implements transient dismissible notifications.
//
// A message moves Visible -> AnimatingOut -> Removed, either because its
// auto-dismiss delay elapsed or because it was closed by hand. Removed is
// terminal and removed messages are never reused.
package flash

import (
	"sync"
	"time"

	"github.com/izzyreal/raincast/internal/clock"
)

const (
	DefaultTTL  = 5 * time.Second
	DefaultExit = 300 * time.Millisecond
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

type State int

const (
	Visible State = iota
	AnimatingOut
	Removed
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case AnimatingOut:
		return "animating-out"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Event is delivered to the observer on every state change.
type Event struct {
	ID    int
	Kind  Kind
	Text  string
	State State
}

type Options struct {
	Clock clock.Clock
	TTL   time.Duration
	Exit  time.Duration
	// Observer renders state changes. It runs without the notifier lock
	// held, possibly on a timer goroutine.
	Observer func(Event)
}

// Notifier owns the message container. The container is created on the
// first Notify call.
type Notifier struct {
	mu        sync.Mutex
	clock     clock.Clock
	ttl       time.Duration
	exit      time.Duration
	observer  func(Event)
	container *container
	nextID    int
}

type container struct {
	messages []*Message
}

type Message struct {
	n     *Notifier
	id    int
	kind  Kind
	text  string
	state State
	timer clock.Timer
}

func New(opts Options) *Notifier {
	n := &Notifier{
		clock:    opts.Clock,
		ttl:      opts.TTL,
		exit:     opts.Exit,
		observer: opts.Observer,
	}
	if n.clock == nil {
		n.clock = clock.Real{}
	}
	if n.ttl <= 0 {
		n.ttl = DefaultTTL
	}
	if n.exit <= 0 {
		n.exit = DefaultExit
	}
	return n
}

// Notify shows text and schedules its automatic dismissal.
func (n *Notifier) Notify(kind Kind, text string) *Message {
	n.mu.Lock()
	if n.container == nil {
		n.container = &container{}
	}
	n.nextID++
	m := &Message{n: n, id: n.nextID, kind: kind, text: text, state: Visible}
	n.container.messages = append(n.container.messages, m)
	m.timer = n.clock.AfterFunc(n.ttl, func() { m.startExit() })
	ev := m.eventLocked()
	n.mu.Unlock()

	n.emit(ev)
	return m
}

// HasContainer reports whether any message was ever shown.
func (n *Notifier) HasContainer() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.container != nil
}

// Len counts messages that have not been removed.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.container == nil {
		return 0
	}
	return len(n.container.messages)
}

// Messages returns a snapshot of the messages still attached.
func (n *Notifier) Messages() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.container == nil {
		return nil
	}
	out := make([]Event, 0, len(n.container.messages))
	for _, m := range n.container.messages {
		out = append(out, m.eventLocked())
	}
	return out
}

func (n *Notifier) emit(ev Event) {
	if n.observer != nil {
		n.observer(ev)
	}
}

func (m *Message) ID() int      { return m.id }
func (m *Message) Kind() Kind   { return m.kind }
func (m *Message) Text() string { return m.text }

func (m *Message) State() State {
	m.n.mu.Lock()
	defer m.n.mu.Unlock()
	return m.state
}

// Close is the manual dismiss control. It reports whether the message was
// still visible.
func (m *Message) Close() bool {
	return m.startExit()
}

func (m *Message) startExit() bool {
	n := m.n
	n.mu.Lock()
	if m.state != Visible {
		n.mu.Unlock()
		return false
	}
	m.state = AnimatingOut
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = n.clock.AfterFunc(n.exit, m.remove)
	ev := m.eventLocked()
	n.mu.Unlock()

	n.emit(ev)
	return true
}

func (m *Message) remove() {
	n := m.n
	n.mu.Lock()
	if m.state != AnimatingOut {
		n.mu.Unlock()
		return
	}
	m.state = Removed
	m.timer = nil
	msgs := n.container.messages
	for i, other := range msgs {
		if other == m {
			n.container.messages = append(msgs[:i], msgs[i+1:]...)
			break
		}
	}
	ev := m.eventLocked()
	n.mu.Unlock()

	n.emit(ev)
}

func (m *Message) eventLocked() Event {
	return Event{ID: m.id, Kind: m.kind, Text: m.text, State: m.state}
}
