// Package mobile turns golang.org/x/mobile app events into controller
// events. It holds no GL state so it can be driven from tests.
package mobile

import (
	"image"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/user-none/emdual/layout"
	"github.com/user-none/emdual/ui"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
)

// Controller is the part of ui.Controller the translator drives.
type Controller interface {
	SurfaceAvailable(ui.Surface)
	SurfaceDestroyed()
	StartOrResumeSession(path string)
	PauseSessionForBackground()
	StopSession()
	Touch(layout.Touch)
	PostFrame(at time.Time)
	Pump()
}

var _ Controller = (*ui.Controller)(nil)

// Surface is the window's drawable area in pixels. Each size change makes
// a new Surface so the controller can tell handles apart.
type Surface struct {
	W, H int
}

// Bounds implements ui.Surface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.W, s.H)
}

// Translator maps app events to controller calls. Handle must be called
// from the app's event goroutine, which is also the controller's UI
// goroutine.
type Translator struct {
	ctrl Controller
	path string
	log  *logrus.Entry

	surface *Surface
	visible bool
}

// NewTranslator creates a translator that starts path once the app is
// visible.
func NewTranslator(ctrl Controller, path string, log *logrus.Entry) *Translator {
	return &Translator{
		ctrl: ctrl,
		path: path,
		log:  log,
	}
}

// Surface returns the current surface, or nil before the first size event.
func (t *Translator) Surface() *Surface {
	return t.surface
}

// Visible reports whether the app is on screen.
func (t *Translator) Visible() bool {
	return t.visible
}

// Handle applies one event and pumps the controller. It reports true once
// the app has reached lifecycle.StageDead.
func (t *Translator) Handle(e interface{}, now time.Time) (dead bool) {
	switch e := e.(type) {
	case lifecycle.Event:
		dead = t.lifecycle(e)
	case size.Event:
		t.resize(e)
	case touch.Event:
		t.touch(e)
	case paint.Event:
		if !e.External {
			t.ctrl.PostFrame(now)
		}
	}
	t.ctrl.Pump()
	return dead
}

func (t *Translator) lifecycle(e lifecycle.Event) bool {
	switch e.Crosses(lifecycle.StageVisible) {
	case lifecycle.CrossOn:
		t.visible = true
		if t.surface != nil {
			t.ctrl.SurfaceAvailable(t.surface)
		}
		t.ctrl.StartOrResumeSession(t.path)
	case lifecycle.CrossOff:
		t.visible = false
		t.ctrl.PauseSessionForBackground()
		t.ctrl.SurfaceDestroyed()
	}

	if e.To == lifecycle.StageDead {
		t.log.Info("App is shutting down")
		t.ctrl.StopSession()
		return true
	}
	return false
}

func (t *Translator) resize(e size.Event) {
	if e.WidthPx <= 0 || e.HeightPx <= 0 {
		return
	}
	if t.surface != nil && t.surface.W == e.WidthPx && t.surface.H == e.HeightPx {
		return
	}
	t.surface = &Surface{W: e.WidthPx, H: e.HeightPx}
	t.log.WithFields(logrus.Fields{"width": e.WidthPx, "height": e.HeightPx}).Debug("Surface resized")
	if t.visible {
		t.ctrl.SurfaceAvailable(t.surface)
	}
}

func (t *Translator) touch(e touch.Event) {
	var action layout.TouchAction
	switch e.Type {
	case touch.TypeBegin:
		action = layout.TouchPress
	case touch.TypeMove:
		action = layout.TouchMove
	case touch.TypeEnd:
		action = layout.TouchRelease
	default:
		return
	}
	t.ctrl.Touch(layout.Touch{
		Pointer: int64(e.Sequence),
		Action:  action,
		X:       int(e.X),
		Y:       int(e.Y),
	})
}
