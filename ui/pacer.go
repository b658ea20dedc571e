package ui

import (
	"time"
)

// FrameCallback is invoked once per display refresh after being posted.
type FrameCallback interface {
	DoFrame(frameTime time.Time)
}

// FrameScheduler delivers one-shot callbacks on the next refresh tick.
// A callback that wants the following tick must post itself again.
type FrameScheduler interface {
	PostFrameCallback(cb FrameCallback)
	RemoveFrameCallback(cb FrameCallback)
}

// Choreographer is a FrameScheduler driven by an external refresh source.
// The platform calls Tick once per display refresh on the UI goroutine.
type Choreographer struct {
	pending []FrameCallback
}

// NewChoreographer creates a scheduler with no pending callbacks.
func NewChoreographer() *Choreographer {
	return &Choreographer{}
}

// PostFrameCallback schedules cb for the next Tick. Posting a callback that
// is already pending is a no-op.
func (c *Choreographer) PostFrameCallback(cb FrameCallback) {
	for _, p := range c.pending {
		if p == cb {
			return
		}
	}
	c.pending = append(c.pending, cb)
}

// RemoveFrameCallback cancels a pending callback. Removing a callback that
// is not pending is a no-op.
func (c *Choreographer) RemoveFrameCallback(cb FrameCallback) {
	for i, p := range c.pending {
		if p == cb {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// Tick fires every callback that was pending when the tick began. Callbacks
// posted while firing wait for the next Tick.
func (c *Choreographer) Tick(frameTime time.Time) {
	if len(c.pending) == 0 {
		return
	}
	fire := c.pending
	c.pending = nil
	for _, cb := range fire {
		cb.DoFrame(frameTime)
	}
}

// Pending reports whether any callback waits for the next Tick.
func (c *Choreographer) Pending() bool {
	return len(c.pending) > 0
}

// Pacer issues one advance per refresh tick while started.
type Pacer struct {
	scheduler  FrameScheduler
	advance    func()
	registered bool
	frames     uint64
}

// NewPacer creates a stopped pacer that calls advance once per tick.
func NewPacer(scheduler FrameScheduler, advance func()) *Pacer {
	return &Pacer{
		scheduler: scheduler,
		advance:   advance,
	}
}

// Start registers for the next refresh tick. Starting twice is a no-op.
func (p *Pacer) Start() {
	if p.registered {
		return
	}
	p.registered = true
	p.scheduler.PostFrameCallback(p)
}

// Stop withdraws the pending registration. Stopping when not registered is
// a no-op.
func (p *Pacer) Stop() {
	if !p.registered {
		return
	}
	p.registered = false
	p.scheduler.RemoveFrameCallback(p)
}

// Active reports whether the pacer is registered.
func (p *Pacer) Active() bool {
	return p.registered
}

// Frames returns the number of advances issued.
func (p *Pacer) Frames() uint64 {
	return p.frames
}

// DoFrame implements FrameCallback. It re-registers before advancing so the
// pacing sustains itself without a timer.
func (p *Pacer) DoFrame(frameTime time.Time) {
	if !p.registered {
		return
	}
	p.scheduler.PostFrameCallback(p)
	p.frames++
	p.advance()
}
