package ui

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/user-none/emdual/layout"
)

// Controller is the facade the platform shell talks to. Every public method
// may be called from any goroutine; the request is queued and applied when
// the UI goroutine calls Pump or while Run is active.
type Controller struct {
	queue        *EventQueue
	choreo       *Choreographer
	pacer        *Pacer
	session      *Session
	layoutEditor *LayoutEditor
	log          *logrus.Entry
}

// NewController wires a controller to its engine. overlay and done may be nil.
func NewController(engine Engine, overlay ControlOverlay, done Affordance, cfg Config) *Controller {
	cfg = cfg.withDefaults()
	log := logrus.NewEntry(cfg.Logger)

	c := &Controller{
		queue:  NewEventQueue(),
		choreo: NewChoreographer(),
		log:    log.WithField("component", "controller"),
	}

	// The pacer closure is bound after the session exists.
	c.pacer = NewPacer(c.choreo, func() { c.session.AdvanceFrame() })
	c.session = NewSession(engine, c.pacer, log.WithField("component", "session"),
		func(gen uint64, err error) {
			c.queue.Push(workerExitEvent{generation: gen, err: err})
		})
	c.layoutEditor = NewLayoutEditor(engine, overlay, done, cfg, log.WithField("component", "layout-edit"))
	return c
}

// StartOrResumeSession requests that the session run against path,
// starting the engine when stopped and resuming it when paused.
func (c *Controller) StartOrResumeSession(path string) {
	c.queue.Push(startOrResumeEvent{path: path})
}

// PauseSessionForBackground releases the surface and pauses the engine.
func (c *Controller) PauseSessionForBackground() {
	c.queue.Push(pauseEvent{})
}

// StopSession stops the engine.
func (c *Controller) StopSession() {
	c.queue.Push(stopEvent{})
}

// EnterLayoutEdit shows the two region editors.
func (c *Controller) EnterLayoutEdit() {
	c.queue.Push(layoutEditEvent{enter: true})
}

// ExitLayoutEdit hides the region editors and restores the overlay.
func (c *Controller) ExitLayoutEdit() {
	c.queue.Push(layoutEditEvent{enter: false})
}

// EnterControlEdit puts the control overlay in its edit mode.
func (c *Controller) EnterControlEdit() {
	c.queue.Push(controlEditEvent{enter: true})
}

// ExitControlEdit returns the control overlay to play mode.
func (c *Controller) ExitControlEdit() {
	c.queue.Push(controlEditEvent{enter: false})
}

// Done is wired to the done affordance.
func (c *Controller) Done() {
	c.queue.Push(doneEvent{})
}

// SurfaceAvailable reports a new or changed drawing surface.
func (c *Controller) SurfaceAvailable(s Surface) {
	c.queue.Push(surfaceAvailableEvent{surface: s})
}

// SurfaceDestroyed reports that the surface is gone.
func (c *Controller) SurfaceDestroyed() {
	c.queue.Push(surfaceDestroyedEvent{})
}

// Touch queues a pointer event.
func (c *Controller) Touch(t layout.Touch) {
	c.queue.Push(touchEvent{touch: t})
}

// PostFrame queues a display refresh tick.
func (c *Controller) PostFrame(at time.Time) {
	c.queue.Push(frameEvent{at: at})
}

// Pump applies every queued event on the calling goroutine, which becomes
// the UI goroutine for the duration of the call.
func (c *Controller) Pump() {
	for {
		events := c.queue.Consume()
		if events == nil {
			return
		}
		for _, ev := range events {
			c.dispatch(ev)
		}
	}
}

// Run pumps events until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	for {
		c.Pump()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.queue.Ready():
		}
	}
}

// Close stops the session and stops accepting events. It must be called on
// the UI goroutine. The engine's run goroutine is not joined.
func (c *Controller) Close() {
	c.StopSession()
	c.Pump()
	c.queue.Close()
}

// The accessors below must be called on the UI goroutine.

// State returns the session state.
func (c *Controller) State() State {
	return c.session.State()
}

// Session returns the underlying session.
func (c *Controller) Session() *Session {
	return c.session
}

// InLayoutEdit reports whether layout edit mode is on.
func (c *Controller) InLayoutEdit() bool {
	return c.layoutEditor.Active()
}

// LayoutEditor returns the edit coordinator.
func (c *Controller) LayoutEditor() *LayoutEditor {
	return c.layoutEditor
}

// Editor returns the region editor for screen.
func (c *Controller) Editor(screen layout.Screen) *layout.Editor {
	return c.layoutEditor.Editor(screen)
}

// Editors returns both region editors indexed by layout.Screen.
func (c *Controller) Editors() [2]*layout.Editor {
	return [2]*layout.Editor{
		c.layoutEditor.Editor(layout.ScreenTop),
		c.layoutEditor.Editor(layout.ScreenBottom),
	}
}

// WantsFrame reports whether a refresh tick is awaited. Platforms that
// request refresh explicitly use it to keep the tick chain alive.
func (c *Controller) WantsFrame() bool {
	return c.choreo.Pending()
}

// Pacer returns the frame pacer.
func (c *Controller) Pacer() *Pacer {
	return c.pacer
}

func (c *Controller) dispatch(ev event) {
	switch e := ev.(type) {
	case surfaceAvailableEvent:
		c.session.SurfaceAvailable(e.surface)
	case surfaceDestroyedEvent:
		c.session.SurfaceDestroyed()
	case startOrResumeEvent:
		c.session.StartOrResume(e.path)
	case pauseEvent:
		c.session.Pause()
	case stopEvent:
		c.layoutEditor.Done()
		c.session.Stop()
	case layoutEditEvent:
		if e.enter {
			c.layoutEditor.Enter()
		} else {
			c.layoutEditor.Exit()
		}
	case controlEditEvent:
		if e.enter {
			c.layoutEditor.EnterControlEdit()
		} else {
			c.layoutEditor.ExitControlEdit()
		}
	case doneEvent:
		c.layoutEditor.Done()
	case touchEvent:
		c.layoutEditor.HandleTouch(e.touch)
	case frameEvent:
		c.choreo.Tick(e.at)
	case workerExitEvent:
		c.session.RunExited(e.generation, e.err)
	default:
		c.log.Warnf("Unknown event %T", ev)
	}
}
