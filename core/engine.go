// Package core runs an emulator core behind the controller's engine
// boundary. The run loop advances one frame per pacer tick, publishes the
// framebuffer for the renderer and owns the persisted screen layouts.
package core

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/eblitui/romloader"
	"github.com/user-none/emdual/layout"
	"github.com/user-none/emdual/ui"
)

var (
	// ErrNoCore is returned when an engine is created without a core.
	ErrNoCore = errors.New("no emulator core")
	// ErrStopped is returned by Run after Close.
	ErrStopped = errors.New("engine closed")
	// ErrAlreadyRunning is returned by Run while another Run is active.
	ErrAlreadyRunning = errors.New("engine already running")
)

// Compile-time interface check.
var _ ui.Engine = (*Engine)(nil)

// Engine implements ui.Engine over an emucore.CoreFactory.
type Engine struct {
	factory emucore.CoreFactory
	info    emucore.SystemInfo
	cfg     Config
	log     *logrus.Entry

	layouts *LayoutStore
	input   SharedInput
	fb      *SharedFramebuffer

	mu      sync.Mutex
	surface ui.Surface
	// ctl receives control calls: the active run's control, or the next
	// run's when none is active or the active one is stopping.
	ctl *RunControl
	// active is the control claimed by the run inside Run, nil when idle.
	active *RunControl
	// idle is signalled when active is released.
	idle        *sync.Cond
	closed      bool
	game        string
	audio       *AudioPlayer
	audioFailed bool
}

// NewEngine creates an idle engine for factory and loads the persisted
// layouts. A layouts file that cannot be read is logged and ignored.
func NewEngine(factory emucore.CoreFactory, cfg Config) (*Engine, error) {
	if factory == nil {
		return nil, ErrNoCore
	}
	cfg = cfg.withDefaults()
	info := factory.SystemInfo()

	e := &Engine{
		factory: factory,
		info:    info,
		cfg:     cfg,
		log:     cfg.Logger.WithField("component", "engine"),
		fb:      NewSharedFramebuffer(info.ScreenWidth, info.MaxScreenHeight),
	}
	e.idle = sync.NewCond(&e.mu)

	path, err := cfg.layoutPath()
	if err != nil {
		e.log.WithError(err).Error("Layouts will not be saved")
	}
	e.layouts = NewLayoutStore(path)
	if err := e.layouts.Load(); err != nil {
		e.log.WithError(err).Error("Ignoring saved layouts")
	}
	return e, nil
}

// SystemInfo returns the core's metadata.
func (e *Engine) SystemInfo() emucore.SystemInfo {
	return e.info
}

// Layouts returns the layout store.
func (e *Engine) Layouts() *LayoutStore {
	return e.layouts
}

// control returns the control for the current or next run. Once the active
// run has been stopped, calls go to a fresh control for the run after it.
// Must be called with e.mu held.
func (e *Engine) control() *RunControl {
	if e.ctl == nil || (e.ctl == e.active && e.ctl.Stopped()) {
		e.ctl = NewRunControl()
	}
	return e.ctl
}

// BindSurface lends the engine a drawing surface.
func (e *Engine) BindSurface(s ui.Surface) {
	e.mu.Lock()
	e.surface = s
	e.mu.Unlock()
	if s != nil {
		e.log.WithField("bounds", s.Bounds()).Debug("Surface bound")
	}
}

// SurfaceGone withdraws the surface.
func (e *Engine) SurfaceGone() {
	e.mu.Lock()
	e.surface = nil
	e.mu.Unlock()
	e.log.Debug("Surface released")
}

// Surface returns the bound surface, or nil.
func (e *Engine) Surface() ui.Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surface
}

// Run loads the game at path and emulates it until Stop or Close. Frames are
// only produced in response to AdvanceFrame. A run that is still unwinding
// from Stop is waited for.
func (e *Engine) Run(path string) error {
	e.mu.Lock()
	for {
		if e.closed {
			e.mu.Unlock()
			return ErrStopped
		}
		if e.active == nil {
			break
		}
		if !e.active.Stopped() {
			e.mu.Unlock()
			return ErrAlreadyRunning
		}
		e.log.Debug("Waiting for the previous run to exit")
		e.idle.Wait()
	}
	ctl := e.control()
	e.active = ctl
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		if e.ctl == ctl {
			e.ctl = nil
		}
		e.active = nil
		e.game = ""
		e.idle.Broadcast()
		e.mu.Unlock()
	}()

	if ctl.Stopped() {
		e.log.Debug("Stopped before the run began")
		return nil
	}

	rom, name, err := romloader.Load(path, e.info.Extensions)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	region, found := e.factory.DetectRegion(rom)
	if !found {
		e.log.WithField("region", region).Debug("Region not detected, using core default")
	}
	emu, err := e.factory.CreateEmulator(rom, region)
	if err != nil {
		return fmt.Errorf("create emulator: %w", err)
	}
	defer emu.Close()

	e.mu.Lock()
	e.game = name
	e.mu.Unlock()
	e.log.WithFields(logrus.Fields{"game": name, "region": region}).Info("Game loaded")

	player := e.audioPlayer()
	players := min(e.info.Players, maxPlayers)

	for ctl.Next() {
		buttons := e.input.Read()
		for p := 0; p < players; p++ {
			emu.SetInput(p, buttons[p])
		}
		emu.RunFrame()
		if player != nil {
			player.QueueSamples(emu.GetAudioSamples())
		}
		e.fb.Update(emu.GetFramebuffer(), emu.GetFramebufferStride(), emu.GetActiveHeight())
	}

	e.log.WithField("game", name).Info("Emulation stopped")
	return nil
}

// audioPlayer starts audio on first use. Failure is not fatal; the game
// runs without sound.
func (e *Engine) audioPlayer() *AudioPlayer {
	if !e.cfg.Audio {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.audio == nil && !e.audioFailed {
		rate := e.info.SampleRate
		if rate <= 0 {
			rate = 48000
		}
		p, err := NewAudioPlayer(rate, e.cfg.Volume)
		if err != nil {
			e.log.WithError(err).Warn("Audio initialization failed")
			e.audioFailed = true
			return nil
		}
		e.audio = p
	}
	return e.audio
}

// Resume lets frames through again.
func (e *Engine) Resume() {
	e.mu.Lock()
	e.control().Resume()
	e.mu.Unlock()
}

// Pause withholds frames and saves any layout changes.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.control().Pause()
	audio := e.audio
	e.mu.Unlock()

	if audio != nil {
		audio.Flush()
	}
	e.flushLayouts()
}

// Stop ends the current run and saves any layout changes. The run goroutine
// exits at its next frame boundary.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.control().Stop()
	audio := e.audio
	e.mu.Unlock()

	if audio != nil {
		audio.Flush()
	}
	e.flushLayouts()
}

// AdvanceFrame grants the run loop one frame.
func (e *Engine) AdvanceFrame() {
	e.mu.Lock()
	e.control().Advance()
	e.mu.Unlock()
}

// IsRunning reports whether a run is inside Run and has not been told to
// stop. A run unwinding from Stop is not running.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil && !e.active.Stopped()
}

// Game returns the name of the loaded game, empty when idle.
func (e *Engine) Game() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game
}

// CustomLayout returns the persisted rectangle for screen. Without one, the
// rectangle is derived from the bound surface.
func (e *Engine) CustomLayout(screen layout.Screen) image.Rectangle {
	if r, ok := e.layouts.Get(screen); ok {
		return r
	}
	e.mu.Lock()
	s := e.surface
	e.mu.Unlock()
	if s == nil || !validScreen(screen) {
		return layout.DefaultRect
	}
	return DefaultLayouts(s.Bounds())[screen]
}

// SetCustomLayout replaces the rectangle for screen. The change is visible
// immediately and saved on the next pause, stop or Close.
func (e *Engine) SetCustomLayout(screen layout.Screen, r image.Rectangle) {
	e.layouts.Set(screen, r)
}

// SetInput stores the button bitmask for player.
func (e *Engine) SetInput(player int, buttons uint32) {
	e.input.Set(player, buttons)
}

// Frame returns the latest frame. The slice is reused by the next call.
func (e *Engine) Frame() (pixels []byte, stride, height int) {
	return e.fb.Read()
}

// Frames returns the number of frames emulated.
func (e *Engine) Frames() uint64 {
	return e.fb.Frames()
}

func (e *Engine) flushLayouts() {
	if err := e.layouts.Flush(); err != nil {
		e.log.WithError(err).Error("Failed to save layouts")
	}
}

// Close stops the run, saves the layouts and releases audio. Run returns
// ErrStopped afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.closed = true
	e.control().Stop()
	if e.active != nil {
		e.active.Stop()
	}
	audio := e.audio
	e.audio = nil
	e.idle.Broadcast()
	e.mu.Unlock()

	var result *multierror.Error
	if err := e.layouts.Flush(); err != nil {
		result = multierror.Append(result, err)
	}
	if audio != nil {
		if err := audio.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
