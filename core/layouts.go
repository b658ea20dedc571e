package core

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"math"
	"sync"

	"github.com/user-none/eblitui/standalone/storage"
	"github.com/user-none/emdual/layout"
)

const layoutsVersion = 1

// layoutsFile is the on-disk form of the custom layouts.
type layoutsFile struct {
	Version int         `json:"version"`
	Top     *layoutRect `json:"top,omitempty"`
	Bottom  *layoutRect `json:"bottom,omitempty"`
}

type layoutRect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

func toLayoutRect(r image.Rectangle) *layoutRect {
	return &layoutRect{X0: r.Min.X, Y0: r.Min.Y, X1: r.Max.X, Y1: r.Max.Y}
}

func (r *layoutRect) rect() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

// LayoutStore keeps the custom rectangle of each screen in memory and
// persists it as JSON. Set only touches memory; Flush writes the file.
type LayoutStore struct {
	mu    sync.Mutex
	path  string
	rects [2]image.Rectangle
	set   [2]bool
	dirty bool
}

// NewLayoutStore creates an empty store backed by path. An empty path keeps
// the layouts in memory only.
func NewLayoutStore(path string) *LayoutStore {
	return &LayoutStore{path: path}
}

// Path returns the backing file path.
func (s *LayoutStore) Path() string {
	return s.path
}

// Load reads the backing file. A missing file leaves the store empty.
func (s *LayoutStore) Load() error {
	if s.path == "" {
		return nil
	}

	var f layoutsFile
	if err := storage.ReadJSON(s.path, &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load layouts: %w", err)
	}
	if f.Version > layoutsVersion {
		return fmt.Errorf("load layouts: unsupported version %d", f.Version)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range []*layoutRect{f.Top, f.Bottom} {
		if r == nil {
			continue
		}
		s.rects[i] = r.rect()
		s.set[i] = true
	}
	s.dirty = false
	return nil
}

// Get returns the stored rectangle for screen and whether one is set.
func (s *LayoutStore) Get(screen layout.Screen) (image.Rectangle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !validScreen(screen) {
		return image.Rectangle{}, false
	}
	return s.rects[screen], s.set[screen]
}

// Set replaces the rectangle for screen in memory.
func (s *LayoutStore) Set(screen layout.Screen, r image.Rectangle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !validScreen(screen) {
		return
	}
	if s.set[screen] && s.rects[screen] == r {
		return
	}
	s.rects[screen] = r
	s.set[screen] = true
	s.dirty = true
}

// Dirty reports whether memory differs from the last Load or Flush.
func (s *LayoutStore) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Flush writes the layouts if they changed since the last Load or Flush.
func (s *LayoutStore) Flush() error {
	s.mu.Lock()
	if !s.dirty || s.path == "" {
		s.mu.Unlock()
		return nil
	}
	f := layoutsFile{Version: layoutsVersion}
	if s.set[layout.ScreenTop] {
		f.Top = toLayoutRect(s.rects[layout.ScreenTop])
	}
	if s.set[layout.ScreenBottom] {
		f.Bottom = toLayoutRect(s.rects[layout.ScreenBottom])
	}
	s.dirty = false
	s.mu.Unlock()

	if err := storage.AtomicWriteJSON(s.path, f); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return fmt.Errorf("save layouts: %w", err)
	}
	return nil
}

func validScreen(screen layout.Screen) bool {
	return screen == layout.ScreenTop || screen == layout.ScreenBottom
}

// DefaultLayouts places the top screen in the upper half of bounds and the
// bottom screen in the lower half, each as large as its aspect ratio allows
// and centred in its half.
func DefaultLayouts(bounds image.Rectangle) [2]image.Rectangle {
	mid := bounds.Min.Y + bounds.Dy()/2
	upper := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, mid)
	lower := image.Rect(bounds.Min.X, mid, bounds.Max.X, bounds.Max.Y)
	return [2]image.Rectangle{
		fitRatio(upper, layout.TopRatio),
		fitRatio(lower, layout.BottomRatio),
	}
}

// fitRatio returns the largest rectangle of the given width/height ratio
// centred inside area.
func fitRatio(area image.Rectangle, ratio float64) image.Rectangle {
	w, h := area.Dx(), area.Dy()
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	if float64(w)/float64(h) > ratio {
		fw := int(math.Round(float64(h) * ratio))
		x := area.Min.X + (w-fw)/2
		return image.Rect(x, area.Min.Y, x+fw, area.Max.Y)
	}
	fh := int(math.Round(float64(w) / ratio))
	y := area.Min.Y + (h-fh)/2
	return image.Rect(area.Min.X, y, area.Max.X, y+fh)
}
