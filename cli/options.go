// Package cli parses the desktop command line and runs the window.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/user-none/emdual/ui"
)

const (
	maxScale     = 6
	defaultScale = 2
)

// Options are the desktop command-line settings.
type Options struct {
	GamePath   string
	DataDir    string
	LogLevel   logrus.Level
	Mute       bool
	Volume     float64
	HandleSize int
	Scale      int
}

// DefaultOptions returns the settings used when no flags are given.
func DefaultOptions() Options {
	return Options{
		LogLevel:   logrus.InfoLevel,
		Volume:     1.0,
		HandleSize: ui.DefaultConfig().HandleSize,
		Scale:      defaultScale,
	}
}

// ParseFlags parses args, without the program name. Usage and errors are
// written to output.
func ParseFlags(args []string, output io.Writer) (Options, error) {
	fs := flag.NewFlagSet("emdual", flag.ContinueOnError)
	fs.SetOutput(output)

	gamePath := fs.String("rom", "", "path to game file (opens a file picker if not provided)")
	dataDir := fs.String("data-dir", "", "directory for persisted layouts (default: user data directory)")
	def := DefaultOptions()
	level := fs.String("log-level", def.LogLevel.String(), "log level: trace, debug, info, warn, error")
	mute := fs.Bool("mute", def.Mute, "disable audio")
	volume := fs.Float64("volume", def.Volume, "audio volume from 0 to 1")
	handle := fs.Int("handle", def.HandleSize, "editor corner handle size in pixels")
	scale := fs.Int("scale", def.Scale, "initial window scale")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 1 {
		return Options{}, errors.New("too many arguments")
	}
	if *gamePath == "" && fs.NArg() == 1 {
		*gamePath = fs.Arg(0)
	}

	lvl, err := logrus.ParseLevel(*level)
	if err != nil {
		return Options{}, fmt.Errorf("invalid -log-level: %w", err)
	}
	if *volume < 0 || *volume > 1 {
		return Options{}, fmt.Errorf("invalid -volume %v (use 0 to 1)", *volume)
	}
	if *handle <= 0 {
		return Options{}, fmt.Errorf("invalid -handle %d", *handle)
	}
	if *scale < 1 || *scale > maxScale {
		return Options{}, fmt.Errorf("invalid -scale %d (use 1 to %d)", *scale, maxScale)
	}

	return Options{
		GamePath:   *gamePath,
		DataDir:    *dataDir,
		LogLevel:   lvl,
		Mute:       *mute,
		Volume:     *volume,
		HandleSize: *handle,
		Scale:      *scale,
	}, nil
}

// NewLogger returns a text logger at level writing to out.
func NewLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return log
}
