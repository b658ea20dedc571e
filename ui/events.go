package ui

import (
	"sync"
	"time"

	"github.com/user-none/emdual/layout"
)

// event is anything the UI goroutine applies to the controller.
type event interface{}

type (
	surfaceAvailableEvent struct{ surface Surface }
	surfaceDestroyedEvent struct{}
	startOrResumeEvent    struct{ path string }
	pauseEvent            struct{}
	stopEvent             struct{}
	layoutEditEvent       struct{ enter bool }
	controlEditEvent      struct{ enter bool }
	doneEvent             struct{}
	touchEvent            struct{ touch layout.Touch }
	frameEvent            struct{ at time.Time }
	workerExitEvent       struct {
		generation uint64
		err        error
	}
)

// EventQueue is an unbounded multi-producer, single-consumer FIFO.
// Any goroutine may Push; only the UI goroutine calls Consume.
// Lifecycle events are never dropped.
type EventQueue struct {
	mu     sync.Mutex
	events []event
	notify chan struct{}
	closed bool
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{notify: make(chan struct{}, 1)}
}

// Push appends an event. Pushes after Close are discarded.
func (q *EventQueue) Push(ev event) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.events = append(q.events, ev)
	q.mu.Unlock()

	// Non-blocking wakeup (buffer size 1)
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Consume returns all pending events in FIFO order.
func (q *EventQueue) Consume() []event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Ready is signalled after a Push. A single signal may cover many events.
func (q *EventQueue) Ready() <-chan struct{} {
	return q.notify
}

// Close stops accepting events. Pending events are kept for Consume.
func (q *EventQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}
