package core

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/user-none/eblitui/standalone/storage"
)

const layoutsFileName = "layouts.json"

// Config holds engine settings.
type Config struct {
	// DataDirName names the per-user data directory that holds the
	// persisted layouts.
	DataDirName string

	// LayoutPath overrides the layouts file location. Used by tests and
	// the -data-dir flag.
	LayoutPath string

	Audio  bool
	Volume float64

	Logger *logrus.Logger
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		DataDirName: "emdual",
		Audio:       true,
		Volume:      1.0,
	}
}

func (c Config) withDefaults() Config {
	if c.DataDirName == "" {
		c.DataDirName = DefaultConfig().DataDirName
	}
	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.Volume > 1 {
		c.Volume = 1
	}
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Logger = l
	}
	return c
}

// layoutPath resolves the layouts file location.
func (c Config) layoutPath() (string, error) {
	if c.LayoutPath != "" {
		return c.LayoutPath, nil
	}
	storage.Init(c.DataDirName)
	base, err := storage.GetBaseDir()
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}
	return filepath.Join(base, layoutsFileName), nil
}
