// Package adapter provides the built-in dual-screen test-pattern core. It
// exercises the whole frontend without a real console core: the top screen
// scrolls a colour gradient seeded from the game file and the bottom screen
// draws a cursor steered by the d-pad.
package adapter

import (
	"errors"
	"hash/crc32"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/emdual/layout"
)

const (
	Name    = "emdual"
	Version = "0.1.0"

	sampleRate = 48000
	fps        = 60
)

// Button bit positions beyond the d-pad.
const (
	ButtonA      = 4
	ButtonB      = 5
	ButtonSelect = 6
	ButtonStart  = 7
	ButtonX      = 8
	ButtonY      = 9
)

// ErrEmptyGame is returned when the game file has no data.
var ErrEmptyGame = errors.New("empty game file")

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// Factory implements emucore.CoreFactory for the test-pattern core.
type Factory struct{}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            Name,
		ConsoleName:     "Dual Screen",
		Extensions:      []string{".3ds", ".cci", ".bin"},
		ScreenWidth:     layout.FrameWidth,
		MaxScreenHeight: layout.FrameHeight,
		AspectRatio:     float64(layout.FrameWidth) / layout.FrameHeight,
		SampleRate:      sampleRate,
		Buttons: []emucore.Button{
			{Name: "A", ID: ButtonA, DefaultKey: "J", DefaultPad: "A"},
			{Name: "B", ID: ButtonB, DefaultKey: "K", DefaultPad: "B"},
			{Name: "X", ID: ButtonX, DefaultKey: "U", DefaultPad: "X"},
			{Name: "Y", ID: ButtonY, DefaultKey: "I", DefaultPad: "Y"},
			{Name: "Select", ID: ButtonSelect, DefaultKey: "Backspace", DefaultPad: "Back"},
			{Name: "Start", ID: ButtonStart, DefaultKey: "Enter", DefaultPad: "Start"},
		},
		Players:     1,
		DataDirName: Name,
		CoreName:    Name,
		CoreVersion: Version,
	}
}

// CreateEmulator creates a new test-pattern instance for rom.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	if len(rom) == 0 {
		return nil, ErrEmptyGame
	}
	return NewEmulator(rom, region), nil
}

// DetectRegion always reports NTSC. The bool is false since no database is
// consulted.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emucore.RegionNTSC, false
}

// seed derives the pattern's base colour from the game data.
func seed(rom []byte) uint32 {
	return crc32.ChecksumIEEE(rom)
}
