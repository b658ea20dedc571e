package cli

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/emdual/adapter"
	emubridge "github.com/user-none/emdual/bridge/ebiten"
	"github.com/user-none/emdual/core"
	"github.com/user-none/emdual/layout"
	"github.com/user-none/emdual/ui"
)

const layoutsFileName = "layouts.json"

// engineConfig builds the engine settings for opts.
func engineConfig(opts Options, log *logrus.Logger) core.Config {
	cfg := core.DefaultConfig()
	cfg.DataDirName = adapter.Name
	cfg.Audio = !opts.Mute
	cfg.Volume = opts.Volume
	cfg.Logger = log
	if opts.DataDir != "" {
		cfg.LayoutPath = filepath.Join(opts.DataDir, layoutsFileName)
	}
	return cfg
}

// uiConfig builds the controller settings for opts.
func uiConfig(opts Options, log *logrus.Logger) ui.Config {
	cfg := ui.DefaultConfig()
	if opts.HandleSize > 0 {
		cfg.HandleSize = opts.HandleSize
	}
	cfg.Logger = log
	return cfg
}

// Run opens the desktop window for factory and blocks until it is closed.
func Run(factory emucore.CoreFactory, opts Options, log *logrus.Logger) (err error) {
	engine, err := core.NewEngine(factory, engineConfig(opts, log))
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	game := emubridge.NewGame(engine, emubridge.Options{
		GamePath:    opts.GamePath,
		PauseOnBlur: true,
		UI:          uiConfig(opts, log),
	})

	defer func() {
		game.Close()
		if cerr := engine.Close(); cerr != nil {
			err = multierror.Append(err, fmt.Errorf("close engine: %w", cerr))
		}
	}()

	scale := opts.Scale
	if scale <= 0 {
		scale = defaultScale
	}
	ebiten.SetWindowSize(layout.FrameWidth*scale, layout.FrameHeight*scale)
	ebiten.SetWindowTitle(adapter.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(layout.BottomWidth, layout.ScreenHeight, -1, -1)
	ebiten.SetTPS(60)

	log.WithField("game", opts.GamePath).Info("Opening window")
	if rerr := ebiten.RunGame(game); rerr != nil {
		return fmt.Errorf("run window: %w", rerr)
	}
	return nil
}
