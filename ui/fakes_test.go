package ui

import (
	"fmt"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/user-none/emdual/layout"
)

// fakeEngine records every call. Run blocks until Stop.
type fakeEngine struct {
	mu       sync.Mutex
	calls    []string
	surface  Surface
	layouts  map[layout.Screen]image.Rectangle
	running  bool
	stopCh   chan struct{}
	// stopPending covers a Stop that lands before Run has started.
	stopPending bool
	runStart chan string
	runErr   error
	// idle is signalled when a Run returns. Run waits for the previous
	// one the way the real engine does.
	idle *sync.Cond
	// holdExit, when set, keeps a stopped Run from returning until closed.
	holdExit chan struct{}

	liveRuns int
	maxLive  int

	// violations records calls made while no surface was bound.
	violations []string
}

func newFakeEngine() *fakeEngine {
	f := &fakeEngine{
		layouts: map[layout.Screen]image.Rectangle{
			layout.ScreenTop:    image.Rect(0, 0, 400, 240),
			layout.ScreenBottom: image.Rect(40, 240, 360, 480),
		},
		runStart: make(chan string, 64),
	}
	f.idle = sync.NewCond(&f.mu)
	return f
}

func (f *fakeEngine) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeEngine) requireSurface(call string) {
	if f.surface == nil {
		f.violations = append(f.violations, call)
	}
}

func (f *fakeEngine) BindSurface(s Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.surface = s
	f.record("bind")
}

func (f *fakeEngine) SurfaceGone() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.surface = nil
	f.record("surface-gone")
}

func (f *fakeEngine) Run(path string) error {
	f.mu.Lock()
	for f.liveRuns > 0 {
		f.idle.Wait()
	}
	f.record("run:" + path)
	f.running = true
	f.liveRuns++
	if f.liveRuns > f.maxLive {
		f.maxLive = f.liveRuns
	}
	stop := make(chan struct{})
	f.stopCh = stop
	if f.stopPending {
		f.stopPending = false
		close(stop)
		f.stopCh = nil
	}
	err := f.runErr
	hold := f.holdExit
	f.mu.Unlock()

	select {
	case f.runStart <- path:
	default:
	}
	if err == nil {
		<-stop
		if hold != nil {
			<-hold
		}
	}

	f.mu.Lock()
	f.liveRuns--
	f.running = false
	f.idle.Broadcast()
	f.mu.Unlock()
	return err
}

func (f *fakeEngine) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requireSurface("resume")
	f.record("resume")
}

func (f *fakeEngine) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("pause")
}

func (f *fakeEngine) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("stop")
	if f.stopCh != nil {
		close(f.stopCh)
		f.stopCh = nil
	} else {
		f.stopPending = true
	}
}

func (f *fakeEngine) AdvanceFrame() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requireSurface("advance")
	f.record("advance")
}

func (f *fakeEngine) CustomLayout(screen layout.Screen) image.Rectangle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.layouts[screen]
}

func (f *fakeEngine) SetCustomLayout(screen layout.Screen, r image.Rectangle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.layouts[screen] = r
	f.record(fmt.Sprintf("set-layout:%s", screen))
}

func (f *fakeEngine) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

// Calls returns a copy of the recorded calls.
func (f *fakeEngine) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeEngine) Count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeEngine) Violations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.violations...)
}

func (f *fakeEngine) MaxLive() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxLive
}

func (f *fakeEngine) waitRun(t *testing.T) string {
	t.Helper()
	select {
	case p := <-f.runStart:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Run")
		return ""
	}
}

type fakeSurface struct {
	w, h int
}

func (s *fakeSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.w, s.h)
}

type fakeOverlay struct {
	hidden   bool
	editing  bool
	refresh  int
	touches  []layout.Touch
	consumes bool
}

func (o *fakeOverlay) HandleTouch(t layout.Touch) bool {
	o.touches = append(o.touches, t)
	return o.consumes
}
func (o *fakeOverlay) SetInEditMode(editing bool) { o.editing = editing }
func (o *fakeOverlay) Hidden() bool               { return o.hidden }
func (o *fakeOverlay) SetHidden(hidden bool)      { o.hidden = hidden }
func (o *fakeOverlay) Refresh()                   { o.refresh++ }

type fakeAffordance struct {
	visible bool
}

func (a *fakeAffordance) SetVisible(visible bool) { a.visible = visible }

// Active reports whether a Run is in progress and has not been stopped.
func (f *fakeEngine) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.liveRuns > 0 && f.stopCh != nil
}

// Live returns the number of Run calls that have not returned.
func (f *fakeEngine) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.liveRuns
}
