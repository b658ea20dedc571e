// Package ui binds a rendering surface to a running emulation engine.
// It owns the session lifecycle, paces frames off display refresh ticks and
// coordinates interactive editing of the two screen layouts.
//
// All state is mutated on a single UI goroutine: platform callbacks and
// public requests are queued and applied by Pump or Run.
package ui

import (
	"image"

	"github.com/user-none/emdual/layout"
)

// Surface is a borrowed drawing target. It is valid only between its
// available and destroyed notifications and is never owned by the
// controller.
type Surface interface {
	Bounds() image.Rectangle
}

// Engine is the native core the controller drives. All calls are
// fire-and-forget except Run, which blocks until the engine stops.
type Engine interface {
	// BindSurface hands the engine the surface to draw to.
	BindSurface(s Surface)

	// SurfaceGone tells the engine the bound surface must no longer be used.
	SurfaceGone()

	// Run loads the game at path and emulates until stopped.
	Run(path string) error

	Resume()
	Pause()
	Stop()

	// AdvanceFrame asks the engine to produce and present one frame.
	AdvanceFrame()

	// CustomLayout returns the persisted placement of a screen.
	CustomLayout(screen layout.Screen) image.Rectangle

	// SetCustomLayout replaces the persisted placement of a screen.
	SetCustomLayout(screen layout.Screen, r image.Rectangle)

	// IsRunning reports whether a run is in progress inside the engine.
	IsRunning() bool
}

// ControlOverlay is the on-screen controller that receives input while the
// session is in play mode.
type ControlOverlay interface {
	HandleTouch(t layout.Touch) bool
	SetInEditMode(editing bool)
	Hidden() bool
	SetHidden(hidden bool)
	Refresh()
}

// Affordance is a UI element that can be shown or hidden, such as the
// "done" button used to leave edit modes.
type Affordance interface {
	SetVisible(visible bool)
}
