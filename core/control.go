package core

import "sync"

// RunControl coordinates the UI goroutine with the emulation goroutine.
// The emulation goroutine advances exactly one frame per granted token and
// never while paused.
type RunControl struct {
	mu      sync.Mutex
	cond    *sync.Cond
	paused  bool
	stopped bool
	pending bool
	waiting bool
}

// NewRunControl creates a control that starts unpaused with no frame granted.
func NewRunControl() *RunControl {
	rc := &RunControl{}
	rc.cond = sync.NewCond(&rc.mu)
	return rc
}

// Advance grants one frame. Grants do not accumulate; a grant that arrives
// while the previous one is still unclaimed is merged into it. Grants made
// while paused are dropped.
func (rc *RunControl) Advance() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.paused || rc.stopped {
		return
	}
	rc.pending = true
	rc.cond.Signal()
}

// Pause withholds frames until Resume. It does not wait for the emulation
// goroutine, which parks at its next Next call.
func (rc *RunControl) Pause() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.paused = true
	rc.pending = false
}

// Resume lifts a pause.
func (rc *RunControl) Resume() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.paused = false
	rc.cond.Broadcast()
}

// Stop makes every current and future Next return false.
func (rc *RunControl) Stop() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.stopped = true
	rc.pending = false
	rc.cond.Broadcast()
}

// Next is called by the emulation goroutine before each frame. It blocks
// until a frame is granted and returns false once stopped.
func (rc *RunControl) Next() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.waiting = true
	for !rc.stopped && (rc.paused || !rc.pending) {
		rc.cond.Wait()
	}
	rc.waiting = false
	if rc.stopped {
		return false
	}
	rc.pending = false
	return true
}

// Stopped reports whether Stop has been called.
func (rc *RunControl) Stopped() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.stopped
}

// Paused reports whether frames are withheld.
func (rc *RunControl) Paused() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.paused
}

// Waiting reports whether the emulation goroutine is parked in Next.
func (rc *RunControl) Waiting() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.waiting
}
