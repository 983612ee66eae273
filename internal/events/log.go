package events

import "sync"

// Log is the append-only event log for one recording session. Appends
// come from the instrumentation binding, snapshots from the render
// loop; the mutex makes that race explicit and safe. Events are never
// mutated, removed, or reordered, so a snapshot taken at any instant
// is a valid prefix of the eventual log.
type Log struct {
	mu     sync.Mutex
	events []Event
}

func NewLog() *Log {
	return &Log{}
}

// Append adds one event in arrival order.
func (l *Log) Append(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

// AppendBatch adds a batch of events, preserving their order.
func (l *Log) AppendBatch(evs []Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evs...)
}

// Snapshot returns a copy of the events accumulated so far.
func (l *Log) Snapshot() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
