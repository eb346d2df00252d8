// Package notify reports operation outcomes to the user. Notifiers are
// advisory: they never block and never fail.
package notify

import (
	"io"
	"sync"
	"time"

	"github.com/Makepad-fr/tada/internal/ui"
)

// DismissAfter is how long a notification stays on screen.
const DismissAfter = 3 * time.Second

// Kind classifies a notification.
type Kind int

const (
	Success Kind = iota
	Error
	Warning
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return "unknown"
}

// Notifier displays a message.
type Notifier interface {
	Notify(message string, kind Kind)
}

// Func adapts a function to Notifier.
type Func func(message string, kind Kind)

func (f Func) Notify(message string, kind Kind) { f(message, kind) }

// Console prints styled lines, one per notification.
type Console struct {
	Out io.Writer
	Err io.Writer
}

func (c Console) Notify(message string, kind Kind) {
	switch kind {
	case Error:
		ui.Fail(c.Err, message)
	case Warning:
		ui.Warn(c.Err, message)
	default:
		ui.OK(c.Out, message)
	}
}

// Toast is a queued notification with its dismissal deadline.
type Toast struct {
	Message   string
	Kind      Kind
	ExpiresAt time.Time
}

// Queue buffers toasts for a renderer that polls it.
type Queue struct {
	mu    sync.Mutex
	now   func() time.Time
	items []Toast
}

// NewQueue returns a queue using now as its clock (time.Now if nil).
func NewQueue(now func() time.Time) *Queue {
	if now == nil {
		now = time.Now
	}
	return &Queue{now: now}
}

func (q *Queue) Notify(message string, kind Kind) {
	q.mu.Lock()
	q.items = append(q.items, Toast{Message: message, Kind: kind, ExpiresAt: q.now().Add(DismissAfter)})
	q.mu.Unlock()
}

// Active drops expired toasts and returns the remaining ones, oldest first.
func (q *Queue) Active(now time.Time) []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, t := range q.items {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	q.items = kept
	return append([]Toast(nil), kept...)
}

// Entry is one recorded notification.
type Entry struct {
	Message string
	Kind    Kind
}

// Recorder keeps every notification; handy in tests.
type Recorder struct {
	mu      sync.Mutex
	Entries []Entry
}

func (r *Recorder) Notify(message string, kind Kind) {
	r.mu.Lock()
	r.Entries = append(r.Entries, Entry{Message: message, Kind: kind})
	r.mu.Unlock()
}

// Last returns the latest entry, or the zero Entry.
func (r *Recorder) Last() Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Entries) == 0 {
		return Entry{}
	}
	return r.Entries[len(r.Entries)-1]
}
