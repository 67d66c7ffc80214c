package demo

import "sync"

// EventQueue hands work from other goroutines to the update loop.
// Post is safe from any goroutine; Drain runs on the update goroutine.
type EventQueue struct {
	mu     sync.Mutex
	events []func()
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

func (q *EventQueue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, fn)
	q.mu.Unlock()
}

// Drain runs every queued event in posting order and returns how many
// ran. Events posted while draining wait for the next call.
func (q *EventQueue) Drain() int {
	q.mu.Lock()
	events := q.events
	q.events = nil
	q.mu.Unlock()

	for _, fn := range events {
		fn()
	}
	return len(events)
}

func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
