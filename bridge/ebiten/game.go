package ebiten

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"github.com/user-none/eblitui/standalone/style"
	"github.com/user-none/emdual/core"
	"github.com/user-none/emdual/layout"
	"github.com/user-none/emdual/ui"
)

const editHint = "F2 layout  F3 controls  Esc done"

// windowSurface is the window's drawable area. A new value is created on
// every resize so the controller sees the change.
type windowSurface struct {
	bounds image.Rectangle
}

func (s *windowSurface) Bounds() image.Rectangle { return s.bounds }

// Options configures the desktop shell.
type Options struct {
	GamePath string

	// PauseOnBlur pauses the session while the window is unfocused.
	PauseOnBlur bool

	UI ui.Config
}

// Game implements ebiten.Game. Update is the controller's UI goroutine.
type Game struct {
	ctrl   *ui.Controller
	engine *core.Engine
	opts   Options
	log    *logrus.Entry

	renderer Renderer
	hud      *hud
	done     *doneButton
	input    inputMapping

	surface       *windowSurface
	width, height int
	focused       bool
	started       bool

	pointers pointerSnapshot
	touchBuf []ebiten.TouchID
}

// NewGame creates the desktop shell around engine.
func NewGame(engine *core.Engine, opts Options) *Game {
	logger := opts.UI.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
		opts.UI.Logger = logger
	}

	g := &Game{
		engine:   engine,
		opts:     opts,
		log:      logger.WithField("component", "window"),
		input:    newInputMapping(engine.SystemInfo().Buttons),
		pointers: make(pointerSnapshot),
		focused:  true,
	}
	g.done = newDoneButton(func() { g.ctrl.Done() })
	g.ctrl = ui.NewController(engine, nil, g.done, opts.UI)
	g.hud = newHUD(g.log)
	return g
}

// Controller returns the controller driven by this window.
func (g *Game) Controller() *ui.Controller {
	return g.ctrl
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.syncSurface()
	if !g.started {
		g.started = true
		g.ctrl.StartOrResumeSession(g.opts.GamePath)
	}
	g.syncFocus()
	g.handleKeys()

	if g.focused {
		g.engine.SetInput(0, g.input.poll())
	} else {
		g.engine.SetInput(0, 0)
	}

	var snap pointerSnapshot
	snap, g.touchBuf = pollPointers(g.touchBuf)
	for _, t := range diffPointers(g.pointers, snap) {
		g.ctrl.Touch(t)
	}
	g.pointers = snap

	g.done.Update()

	g.ctrl.PostFrame(time.Now())
	g.ctrl.Pump()
	return nil
}

// syncSurface reports a new surface whenever the window size changes.
func (g *Game) syncSurface() {
	if g.width <= 0 || g.height <= 0 {
		return
	}
	bounds := image.Rect(0, 0, g.width, g.height)
	if g.surface != nil && g.surface.bounds == bounds {
		return
	}
	g.surface = &windowSurface{bounds: bounds}
	g.log.WithField("bounds", bounds).Debug("Window resized")
	g.ctrl.SurfaceAvailable(g.surface)
}

func (g *Game) syncFocus() {
	if !g.opts.PauseOnBlur {
		return
	}
	focused := ebiten.IsFocused()
	if focused == g.focused {
		return
	}
	g.focused = focused
	if focused {
		g.ctrl.StartOrResumeSession(g.opts.GamePath)
	} else {
		g.ctrl.PauseSessionForBackground()
	}
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		if g.ctrl.InLayoutEdit() {
			g.ctrl.ExitLayoutEdit()
		} else {
			g.ctrl.EnterLayoutEdit()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		if g.ctrl.LayoutEditor().ControlEditing() {
			g.ctrl.ExitControlEdit()
		} else {
			g.ctrl.EnterControlEdit()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.ctrl.Done()
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(style.Background)

	pixels, stride, height := g.engine.Frame()
	rects := [2]image.Rectangle{
		g.engine.CustomLayout(layout.ScreenTop),
		g.engine.CustomLayout(layout.ScreenBottom),
	}
	g.renderer.DrawScreens(screen, pixels, stride, height, rects)

	if g.ctrl.InLayoutEdit() {
		for i, ed := range g.ctrl.Editors() {
			drawEditor(screen, ed, editorColors[i])
		}
	}
	g.done.Draw(screen)

	g.hud.Draw(screen,
		statusLine(g.ctrl.State(), g.engine.Game(), ebiten.ActualFPS()),
		editHint,
	)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close stops the session. The engine is closed by its owner.
func (g *Game) Close() {
	g.ctrl.Close()
}
