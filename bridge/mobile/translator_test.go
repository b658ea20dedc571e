package mobile

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/user-none/emdual/layout"
	"github.com/user-none/emdual/ui"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
)

type fakeController struct {
	calls    []string
	surfaces []ui.Surface
	touches  []layout.Touch
	frames   int
	pumps    int
}

func (f *fakeController) SurfaceAvailable(s ui.Surface) {
	f.calls = append(f.calls, "surface")
	f.surfaces = append(f.surfaces, s)
}
func (f *fakeController) SurfaceDestroyed()            { f.calls = append(f.calls, "destroyed") }
func (f *fakeController) StartOrResumeSession(string)  { f.calls = append(f.calls, "start") }
func (f *fakeController) PauseSessionForBackground()   { f.calls = append(f.calls, "pause") }
func (f *fakeController) StopSession()                 { f.calls = append(f.calls, "stop") }
func (f *fakeController) Touch(t layout.Touch)         { f.touches = append(f.touches, t) }
func (f *fakeController) PostFrame(time.Time)          { f.frames++ }
func (f *fakeController) Pump()                        { f.pumps++ }

func newTestTranslator() (*Translator, *fakeController) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	ctrl := &fakeController{}
	return NewTranslator(ctrl, "game.3ds", logrus.NewEntry(l)), ctrl
}

func equalCalls(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var (
	goVisible = lifecycle.Event{From: lifecycle.StageAlive, To: lifecycle.StageFocused}
	goHidden  = lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageAlive}
	goDead    = lifecycle.Event{From: lifecycle.StageAlive, To: lifecycle.StageDead}
)

func TestSizeBeforeVisible(t *testing.T) {
	tr, ctrl := newTestTranslator()
	now := time.Now()

	tr.Handle(size.Event{WidthPx: 1080, HeightPx: 1920}, now)
	if len(ctrl.calls) != 0 {
		t.Fatalf("expected no calls while hidden, got %v", ctrl.calls)
	}

	tr.Handle(goVisible, now)
	if want := []string{"surface", "start"}; !equalCalls(ctrl.calls, want) {
		t.Fatalf("expected %v, got %v", want, ctrl.calls)
	}
	if got := ctrl.surfaces[0].Bounds().Dx(); got != 1080 {
		t.Fatalf("expected surface width 1080, got %d", got)
	}
	if ctrl.pumps != 2 {
		t.Fatalf("expected a pump per event, got %d", ctrl.pumps)
	}
}

func TestVisibleBeforeSize(t *testing.T) {
	tr, ctrl := newTestTranslator()
	now := time.Now()

	tr.Handle(goVisible, now)
	tr.Handle(size.Event{WidthPx: 800, HeightPx: 600}, now)

	if want := []string{"start", "surface"}; !equalCalls(ctrl.calls, want) {
		t.Fatalf("expected %v, got %v", want, ctrl.calls)
	}
}

func TestResizeMakesNewSurface(t *testing.T) {
	tr, ctrl := newTestTranslator()
	now := time.Now()

	tr.Handle(goVisible, now)
	tr.Handle(size.Event{WidthPx: 800, HeightPx: 600}, now)
	tr.Handle(size.Event{WidthPx: 800, HeightPx: 600}, now)
	tr.Handle(size.Event{WidthPx: 600, HeightPx: 800}, now)

	if len(ctrl.surfaces) != 2 {
		t.Fatalf("expected 2 surfaces, got %d", len(ctrl.surfaces))
	}
	if ctrl.surfaces[0] == ctrl.surfaces[1] {
		t.Fatal("expected a distinct surface after rotation")
	}

	tr.Handle(size.Event{}, now)
	if len(ctrl.surfaces) != 2 {
		t.Fatal("expected an empty size to be ignored")
	}
}

func TestBackgroundPausesThenReleases(t *testing.T) {
	tr, ctrl := newTestTranslator()
	now := time.Now()

	tr.Handle(size.Event{WidthPx: 800, HeightPx: 600}, now)
	tr.Handle(goVisible, now)
	ctrl.calls = nil

	tr.Handle(goHidden, now)
	if want := []string{"pause", "destroyed"}; !equalCalls(ctrl.calls, want) {
		t.Fatalf("expected %v, got %v", want, ctrl.calls)
	}
	if tr.Visible() {
		t.Fatal("expected translator hidden")
	}

	ctrl.calls = nil
	tr.Handle(goVisible, now)
	if want := []string{"surface", "start"}; !equalCalls(ctrl.calls, want) {
		t.Fatalf("expected %v on return, got %v", want, ctrl.calls)
	}
}

func TestDeadStopsSession(t *testing.T) {
	tr, ctrl := newTestTranslator()

	if tr.Handle(goVisible, time.Now()) {
		t.Fatal("expected visible not to be dead")
	}
	if !tr.Handle(goDead, time.Now()) {
		t.Fatal("expected dead to be reported")
	}
	if got := ctrl.calls[len(ctrl.calls)-1]; got != "stop" {
		t.Fatalf("expected stop last, got %s", got)
	}
}

func TestTouchTranslation(t *testing.T) {
	tr, ctrl := newTestTranslator()
	now := time.Now()

	tr.Handle(touch.Event{X: 10.7, Y: 20.2, Sequence: 3, Type: touch.TypeBegin}, now)
	tr.Handle(touch.Event{X: 15, Y: 25, Sequence: 3, Type: touch.TypeMove}, now)
	tr.Handle(touch.Event{X: 15, Y: 25, Sequence: 3, Type: touch.TypeEnd}, now)

	want := []layout.Touch{
		{Pointer: 3, Action: layout.TouchPress, X: 10, Y: 20},
		{Pointer: 3, Action: layout.TouchMove, X: 15, Y: 25},
		{Pointer: 3, Action: layout.TouchRelease, X: 15, Y: 25},
	}
	if len(ctrl.touches) != len(want) {
		t.Fatalf("expected %d touches, got %v", len(want), ctrl.touches)
	}
	for i := range want {
		if ctrl.touches[i] != want[i] {
			t.Fatalf("touch %d: expected %v, got %v", i, want[i], ctrl.touches[i])
		}
	}
}

func TestPaintPostsFrame(t *testing.T) {
	tr, ctrl := newTestTranslator()

	tr.Handle(paint.Event{}, time.Now())
	tr.Handle(paint.Event{External: true}, time.Now())

	if ctrl.frames != 1 {
		t.Fatalf("expected 1 frame from internal paint, got %d", ctrl.frames)
	}
}
