package ui

import (
	"image"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/user-none/emdual/layout"
)

// Config holds controller settings.
type Config struct {
	// HandleSize is the drawn diameter of an editor corner handle in pixels,
	// also used as the capture radius when hit testing.
	HandleSize int

	// Guide ratios for the two region editors.
	TopRatio    float64
	BottomRatio float64

	// DefaultRect seeds the editors before the engine's layout is loaded.
	DefaultRect image.Rectangle

	// Logger receives controller logs. Nil discards them.
	Logger *logrus.Logger
}

// DefaultConfig returns the default controller configuration.
func DefaultConfig() Config {
	return Config{
		HandleSize:  48,
		TopRatio:    layout.TopRatio,
		BottomRatio: layout.BottomRatio,
		DefaultRect: layout.DefaultRect,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.HandleSize <= 0 {
		c.HandleSize = def.HandleSize
	}
	if c.TopRatio <= 0 {
		c.TopRatio = def.TopRatio
	}
	if c.BottomRatio <= 0 {
		c.BottomRatio = def.BottomRatio
	}
	if c.DefaultRect.Empty() {
		c.DefaultRect = def.DefaultRect
	}
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Logger = l
	}
	return c
}
