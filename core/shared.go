package core

import (
	"sync"
	"sync/atomic"
)

const maxPlayers = 2

// SharedInput holds controller state written by the platform thread and
// read by the emulation goroutine once per frame.
type SharedInput struct {
	buttons [maxPlayers]atomic.Uint32
}

// Set stores the button bitmask for player. Out of range players are ignored.
func (si *SharedInput) Set(player int, buttons uint32) {
	if player < 0 || player >= maxPlayers {
		return
	}
	si.buttons[player].Store(buttons)
}

// Read returns the bitmask of every player.
func (si *SharedInput) Read() [maxPlayers]uint32 {
	var out [maxPlayers]uint32
	for i := range si.buttons {
		out[i] = si.buttons[i].Load()
	}
	return out
}

// SharedFramebuffer holds pixel data written by the emulation goroutine
// and read by the renderer. Uses separate write and read buffers so the
// emulation goroutine can write a new frame while the renderer draws the
// previous snapshot.
type SharedFramebuffer struct {
	mu           sync.Mutex
	writePixels  []byte
	readPixels   []byte
	stride       int
	activeHeight int
	frames       uint64
}

// NewSharedFramebuffer pre-allocates a buffer for width x maxHeight RGBA.
func NewSharedFramebuffer(width, maxHeight int) *SharedFramebuffer {
	return &SharedFramebuffer{
		writePixels: make([]byte, width*maxHeight*4),
		readPixels:  make([]byte, width*maxHeight*4),
	}
}

// Update copies one frame from the emulation goroutine.
func (sf *SharedFramebuffer) Update(pixels []byte, stride, activeHeight int) {
	sf.mu.Lock()
	n := min(stride*activeHeight, len(sf.writePixels), len(pixels))
	copy(sf.writePixels[:n], pixels[:n])
	sf.stride = stride
	sf.activeHeight = activeHeight
	sf.frames++
	sf.mu.Unlock()
}

// Read returns a snapshot of the latest frame. The returned slice is reused
// by the next Read and must only be used by one reader.
func (sf *SharedFramebuffer) Read() (pixels []byte, stride, activeHeight int) {
	sf.mu.Lock()
	stride = sf.stride
	activeHeight = sf.activeHeight
	n := min(stride*activeHeight, len(sf.writePixels))
	if n > 0 {
		copy(sf.readPixels[:n], sf.writePixels[:n])
	}
	pixels = sf.readPixels[:max(n, 0)]
	sf.mu.Unlock()
	return
}

// Frames returns the number of frames written.
func (sf *SharedFramebuffer) Frames() uint64 {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.frames
}
