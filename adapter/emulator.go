package adapter

import (
	"math"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/emdual/layout"
)

const (
	cursorSize = 16
	toneHz     = 440
	toneLevel  = 2000
)

// Emulator is one running test pattern.
type Emulator struct {
	seed    uint32
	region  emucore.Region
	frame   uint64
	buttons uint32

	cursorX, cursorY int
	phase            float64

	framebuffer []byte
	samples     []int16
	options     map[string]string
}

// Compile-time interface check.
var _ emucore.Emulator = (*Emulator)(nil)

// NewEmulator creates a test pattern seeded from rom.
func NewEmulator(rom []byte, region emucore.Region) *Emulator {
	return &Emulator{
		seed:        seed(rom),
		region:      region,
		cursorX:     (layout.BottomWidth - cursorSize) / 2,
		cursorY:     (layout.ScreenHeight - cursorSize) / 2,
		framebuffer: make([]byte, layout.FrameWidth*layout.FrameHeight*4),
		samples:     make([]int16, 0, 2*sampleRate/fps),
		options:     make(map[string]string),
	}
}

// RunFrame applies input, renders both screens and synthesises audio.
func (e *Emulator) RunFrame() {
	e.frame++
	e.moveCursor()
	e.drawTop()
	e.drawBottom()
	e.synthesize()
}

func (e *Emulator) moveCursor() {
	const speed = 2
	if e.pressed(emucore.ButtonUp) {
		e.cursorY -= speed
	}
	if e.pressed(emucore.ButtonDown) {
		e.cursorY += speed
	}
	if e.pressed(emucore.ButtonLeft) {
		e.cursorX -= speed
	}
	if e.pressed(emucore.ButtonRight) {
		e.cursorX += speed
	}
	e.cursorX = min(max(e.cursorX, 0), layout.BottomWidth-cursorSize)
	e.cursorY = min(max(e.cursorY, 0), layout.ScreenHeight-cursorSize)
}

func (e *Emulator) pressed(bit int) bool {
	return e.buttons&(1<<bit) != 0
}

func (e *Emulator) drawTop() {
	r0, g0, b0 := byte(e.seed), byte(e.seed>>8), byte(e.seed>>16)
	shift := int(e.frame)
	src := layout.SourceRect(layout.ScreenTop)
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			e.set(x, y, r0+byte(x+shift), g0+byte(y), b0+byte((x+y)/2))
		}
	}
}

func (e *Emulator) drawBottom() {
	src := layout.SourceRect(layout.ScreenBottom)
	cx, cy := src.Min.X+e.cursorX, src.Min.Y+e.cursorY
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			var c byte = 0x20
			if (x/cursorSize+y/cursorSize)%2 == 0 {
				c = 0x30
			}
			if x >= cx && x < cx+cursorSize && y >= cy && y < cy+cursorSize {
				e.set(x, y, 0xff, 0xff, 0xff)
				continue
			}
			e.set(x, y, c, c, c)
		}
	}
}

func (e *Emulator) set(x, y int, r, g, b byte) {
	i := (y*layout.FrameWidth + x) * 4
	e.framebuffer[i] = r
	e.framebuffer[i+1] = g
	e.framebuffer[i+2] = b
	e.framebuffer[i+3] = 0xff
}

// synthesize produces one frame of stereo samples: a tone while A is held,
// otherwise silence.
func (e *Emulator) synthesize() {
	n := sampleRate / fps
	e.samples = e.samples[:0]
	step := 2 * math.Pi * toneHz / sampleRate
	for i := 0; i < n; i++ {
		var s int16
		if e.pressed(ButtonA) {
			s = int16(toneLevel * math.Sin(e.phase))
			e.phase = math.Mod(e.phase+step, 2*math.Pi)
		}
		e.samples = append(e.samples, s, s)
	}
}

// GetFramebuffer returns the stacked RGBA frame.
func (e *Emulator) GetFramebuffer() []byte {
	return e.framebuffer
}

// GetFramebufferStride returns bytes per row.
func (e *Emulator) GetFramebufferStride() int {
	return layout.FrameWidth * 4
}

// GetActiveHeight returns the stacked frame height.
func (e *Emulator) GetActiveHeight() int {
	return layout.FrameHeight
}

// GetAudioSamples returns the samples produced by the last frame.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.samples
}

// SetInput sets the button bitmask. Only player 0 is wired.
func (e *Emulator) SetInput(player int, buttons uint32) {
	if player == 0 {
		e.buttons = buttons
	}
}

// GetRegion returns the current region.
func (e *Emulator) GetRegion() emucore.Region {
	return e.region
}

// SetRegion changes the region. Timing is the same for every region.
func (e *Emulator) SetRegion(region emucore.Region) {
	e.region = region
}

// GetTiming returns the fixed 60 Hz timing.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{FPS: fps, Scanlines: layout.FrameHeight}
}

// SetOption records a core option.
func (e *Emulator) SetOption(key string, value string) {
	e.options[key] = value
}

// Frame returns the number of frames run.
func (e *Emulator) Frame() uint64 {
	return e.frame
}

// Cursor returns the cursor position in bottom screen coordinates.
func (e *Emulator) Cursor() (x, y int) {
	return e.cursorX, e.cursorY
}

// Close releases nothing; the pattern holds no external resources.
func (e *Emulator) Close() {}
