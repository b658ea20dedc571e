package ui

import (
	"github.com/sirupsen/logrus"
	"github.com/user-none/emdual/layout"
)

// LayoutEditor switches between play mode and layout edit mode. In edit
// mode one region editor per screen is shown and every resize is written
// straight through to the engine.
type LayoutEditor struct {
	engine  Engine
	overlay ControlOverlay
	done    Affordance
	log     *logrus.Entry

	editors [2]*layout.Editor

	active      bool
	controlEdit bool
	prevHidden  bool
}

// NewLayoutEditor creates the coordinator and its two hidden editors.
// overlay and done may be nil when the shell has no such elements.
func NewLayoutEditor(engine Engine, overlay ControlOverlay, done Affordance, cfg Config, log *logrus.Entry) *LayoutEditor {
	le := &LayoutEditor{
		engine:  engine,
		overlay: overlay,
		done:    done,
		log:     log,
	}

	ratios := [2]float64{cfg.TopRatio, cfg.BottomRatio}
	for i := range le.editors {
		screen := layout.Screen(i)
		ed := layout.NewEditor(cfg.HandleSize)
		ed.SetRect(cfg.DefaultRect)
		ed.SetDesiredRatio(ratios[i])
		ed.SetOnResize(func(ed *layout.Editor) {
			if !le.active {
				return
			}
			le.engine.SetCustomLayout(screen, ed.Rect())
		})
		le.editors[i] = ed
	}
	return le
}

// Editor returns the region editor bound to screen.
func (le *LayoutEditor) Editor(screen layout.Screen) *layout.Editor {
	return le.editors[screen]
}

// Active reports whether layout edit mode is on.
func (le *LayoutEditor) Active() bool {
	return le.active
}

// ControlEditing reports whether the control overlay is in its own edit mode.
func (le *LayoutEditor) ControlEditing() bool {
	return le.controlEdit
}

// Enter hides the control overlay, reveals both editors seeded from the
// engine's persisted layouts and shows the done affordance.
func (le *LayoutEditor) Enter() {
	if le.active {
		return
	}
	le.active = true

	if le.overlay != nil {
		le.prevHidden = le.overlay.Hidden()
		le.overlay.SetHidden(true)
		le.overlay.SetInEditMode(false)
		le.overlay.Refresh()
	}
	le.controlEdit = false

	for i, ed := range le.editors {
		ed.SetRect(le.engine.CustomLayout(layout.Screen(i)))
		ed.SetVisible(true)
	}
	le.setDone(true)
	le.log.Debug("Entered layout edit")
}

// Exit hides both editors and restores the overlay state saved by Enter.
func (le *LayoutEditor) Exit() {
	if !le.active {
		return
	}
	le.active = false

	if le.overlay != nil {
		le.overlay.SetHidden(le.prevHidden)
		le.overlay.Refresh()
	}
	for _, ed := range le.editors {
		ed.SetVisible(false)
	}
	le.setDone(false)
	le.log.Debug("Left layout edit")
}

// EnterControlEdit puts the control overlay into its own edit mode.
func (le *LayoutEditor) EnterControlEdit() {
	if le.active {
		return
	}
	le.controlEdit = true
	if le.overlay != nil {
		le.overlay.SetInEditMode(true)
	}
	le.setDone(true)
}

// ExitControlEdit returns the control overlay to play mode.
func (le *LayoutEditor) ExitControlEdit() {
	if !le.controlEdit {
		return
	}
	le.controlEdit = false
	if le.overlay != nil {
		le.overlay.SetInEditMode(false)
	}
	le.setDone(false)
}

// Done is the done affordance's action: it leaves both edit modes.
func (le *LayoutEditor) Done() {
	le.ExitControlEdit()
	le.Exit()
}

// HandleTouch routes a touch to the editors in edit mode, otherwise to the
// control overlay. The bottom editor is stacked above the top one and gets
// the first chance to claim a press.
func (le *LayoutEditor) HandleTouch(t layout.Touch) bool {
	if !le.active {
		if le.overlay != nil {
			return le.overlay.HandleTouch(t)
		}
		return false
	}

	if le.editors[layout.ScreenBottom].HandleTouch(t) {
		return true
	}
	return le.editors[layout.ScreenTop].HandleTouch(t)
}

func (le *LayoutEditor) setDone(visible bool) {
	if le.done != nil {
		le.done.SetVisible(visible)
	}
}
