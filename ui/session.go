package ui

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// State represents the lifecycle state of an emulation session
type State int

const (
	// StateStopped means no run goroutine has been started for the engine
	StateStopped State = iota
	// StateRunning means the surface is bound and frames are being paced
	StateRunning
	// StatePaused means the engine is initialised but has no surface
	StatePaused
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Session is the lifecycle of one run of the engine against a single game
// path. It must only be used from the UI goroutine.
type Session struct {
	engine Engine
	pacer  *Pacer
	log    *logrus.Entry

	state   State
	surface Surface
	path    string

	// runWhenSurfaceValid records a start/resume request that arrived
	// before the surface did.
	runWhenSurfaceValid bool

	// generation identifies the current run goroutine so stale exits are
	// ignored.
	generation uint64
	liveRuns   atomic.Int32

	// stopIssued is set once this session has told the engine to stop.
	stopIssued bool

	// respawn records a start that arrived while the previous run
	// goroutine was still unwinding from Stop. The run is spawned when
	// that goroutine's exit is applied, so runs never overlap.
	respawn bool

	// onRunExit is called from the run goroutine when Run returns.
	onRunExit func(generation uint64, err error)
}

// NewSession creates a stopped session. The pacer is started and stopped
// as the session enters and leaves StateRunning.
func NewSession(engine Engine, pacer *Pacer, log *logrus.Entry, onRunExit func(uint64, error)) *Session {
	return &Session{
		engine:    engine,
		pacer:     pacer,
		log:       log,
		onRunExit: onRunExit,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Surface returns the currently borrowed surface, or nil.
func (s *Session) Surface() Surface {
	return s.surface
}

// Path returns the game path, empty until the first start request.
func (s *Session) Path() string {
	return s.path
}

// Deferred reports whether a run is waiting for the surface.
func (s *Session) Deferred() bool {
	return s.runWhenSurfaceValid
}

// SpawnPending reports whether a run waits for the previous one to exit.
func (s *Session) SpawnPending() bool {
	return s.respawn
}

// LiveRuns returns the number of run goroutines that have not returned.
func (s *Session) LiveRuns() int {
	return int(s.liveRuns.Load())
}

// StartOrResume runs the session now if a surface is bound, otherwise it
// records the intent and waits for SurfaceAvailable.
func (s *Session) StartOrResume(path string) {
	switch {
	case s.path == "":
		s.path = path
	case path != "" && path != s.path:
		s.log.WithFields(logrus.Fields{"path": path, "session": s.path}).
			Warn("Ignoring game path change for existing session")
	}

	// The engine may have outlived the previous UI instance. A run this
	// session started or adopted and then stopped may still be unwinding;
	// that one is never adopted.
	if s.state == StateStopped && s.generation == 0 && !s.stopIssued && s.engine.IsRunning() {
		s.log.Debug("Engine already running, treating session as paused")
		s.state = StatePaused
	}

	if s.surface == nil {
		s.log.Debug("No surface yet, deferring run")
		s.runWhenSurfaceValid = true
		return
	}
	s.runWithValidSurface()
}

// SurfaceAvailable borrows a new surface and performs any deferred run.
func (s *Session) SurfaceAvailable(surface Surface) {
	if surface == nil {
		return
	}
	changed := s.surface != surface
	s.surface = surface

	if s.state == StateRunning && changed {
		s.engine.BindSurface(surface)
	}
	if s.runWhenSurfaceValid {
		s.runWithValidSurface()
	}
}

// SurfaceDestroyed releases the borrowed surface. A running session pauses.
func (s *Session) SurfaceDestroyed() {
	if s.surface == nil {
		s.log.Debug("Surface destroyed, but surface already nil")
		return
	}
	s.surface = nil

	switch s.state {
	case StateRunning:
		s.engine.SurfaceGone()
		s.pacer.Stop()
		s.state = StatePaused
	case StatePaused:
		s.log.Debug("Surface destroyed while paused")
	default:
		s.log.Debug("Surface destroyed while stopped")
	}
}

// Pause withdraws the surface from a running engine and pauses it.
func (s *Session) Pause() {
	s.runWhenSurfaceValid = false
	if s.state != StateRunning {
		s.log.WithField("state", s.state).Debug("Ignoring pause")
		return
	}
	s.engine.SurfaceGone()
	s.pacer.Stop()
	// With a spawn pending there is no run to pause yet.
	if !s.respawn {
		s.engine.Pause()
	}
	s.state = StatePaused
}

// Stop signals the engine to stop. The run goroutine is not joined.
func (s *Session) Stop() {
	s.runWhenSurfaceValid = false
	switch s.state {
	case StateStopped:
		s.log.Debug("Ignoring stop, session already stopped")
		return
	case StateRunning:
		s.engine.SurfaceGone()
		s.pacer.Stop()
	}
	s.state = StateStopped
	if s.respawn {
		// The previous run was already told to stop.
		s.respawn = false
		s.log.Debug("Cancelled pending run")
		return
	}
	s.stopIssued = true
	s.engine.Stop()
}

// RunExited is applied on the UI goroutine after a run goroutine returns.
func (s *Session) RunExited(generation uint64, err error) {
	entry := s.log.WithField("generation", generation)
	if err != nil {
		entry = entry.WithError(err)
	}
	if s.respawn {
		entry.Debug("Previous run exited")
		if s.liveRuns.Load() == 0 {
			s.respawn = false
			s.spawnRun()
		}
		return
	}
	if generation != s.generation || s.state == StateStopped {
		entry.Debug("Run goroutine exited")
		return
	}

	entry.Warn("Engine stopped on its own")
	if s.state == StateRunning {
		s.engine.SurfaceGone()
		s.pacer.Stop()
	}
	s.state = StateStopped
}

// AdvanceFrame is the pacer's per-tick action.
func (s *Session) AdvanceFrame() {
	if s.state != StateRunning || s.surface == nil {
		return
	}
	s.engine.AdvanceFrame()
}

func (s *Session) runWithValidSurface() {
	s.runWhenSurfaceValid = false

	switch s.state {
	case StateStopped:
		s.engine.BindSurface(s.surface)
		if s.liveRuns.Load() > 0 {
			s.log.Debug("Previous run still exiting, deferring spawn")
			s.respawn = true
		} else {
			s.spawnRun()
		}
	case StatePaused:
		s.engine.BindSurface(s.surface)
		s.engine.Resume()
	case StateRunning:
		s.log.Debug("Ignoring start, session already running")
		return
	}
	s.state = StateRunning
	s.pacer.Start()
}

// spawnRun starts the single goroutine that blocks in Engine.Run.
func (s *Session) spawnRun() {
	s.generation++
	gen := s.generation
	path := s.path
	s.liveRuns.Add(1)

	s.log.WithFields(logrus.Fields{"path": path, "generation": gen}).Info("Starting emulation")
	go func() {
		err := s.engine.Run(path)
		s.liveRuns.Add(-1)
		if s.onRunExit != nil {
			s.onRunExit(gen, err)
		}
	}()
}
