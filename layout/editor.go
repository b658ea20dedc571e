package layout

import (
	"image"
	"math"
)

// Corner indices in their fixed order.
const (
	CornerTopLeft = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
	numCorners
)

// ratioTolerance is how far the current ratio may drift from the desired
// ratio before a placement guide is shown.
const ratioTolerance = 0.01

// DefaultRect is the rectangle a new editor starts with.
var DefaultRect = image.Rect(0, 0, 500, 500)

// Editor tracks a rectangle through four draggable corner handles.
//
// The rectangle is stored as two vertical and two horizontal edges. Each
// corner reads its x from one vertical edge and its y from one horizontal
// edge, so moving a corner moves exactly the two neighbours sharing those
// edges. Edges may cross during a drag; Rect normalises them.
type Editor struct {
	// x0 is shared by top-left/bottom-left, x1 by top-right/bottom-right,
	// y0 by top-left/top-right, y1 by bottom-right/bottom-left.
	x0, y0, x1, y1 int

	desiredRatio float64
	handleSize   int
	visible      bool
	onResize     func(*Editor)

	drag dragState
}

// dragState exists only between a press and its release or cancel.
type dragState struct {
	active   bool
	pointer  int64
	corner   int // -1 when the whole rectangle is grabbed
	anchor   image.Point
	snapshot [numCorners]image.Point
}

// NewEditor creates a hidden editor with DefaultRect, a desired ratio of 1
// and handles of the given diameter in pixels.
func NewEditor(handleSize int) *Editor {
	e := &Editor{
		desiredRatio: 1.0,
		handleSize:   handleSize,
	}
	e.SetRect(DefaultRect)
	return e
}

// SetOnResize registers the resize notification callback.
func (e *Editor) SetOnResize(fn func(*Editor)) {
	e.onResize = fn
}

// SetVisible shows or hides the editor. Hidden editors ignore touches and
// abandon any drag in progress.
func (e *Editor) SetVisible(visible bool) {
	e.visible = visible
	if !visible {
		e.drag = dragState{}
	}
}

// Visible reports whether the editor is shown.
func (e *Editor) Visible() bool {
	return e.visible
}

// HandleSize returns the drawn diameter of a corner handle, which is also
// the capture radius used for hit testing.
func (e *Editor) HandleSize() int {
	return e.handleSize
}

// SetRect replaces all four corners from r. The resize callback fires
// immediately when the editor is visible.
func (e *Editor) SetRect(r image.Rectangle) {
	e.x0, e.y0 = r.Min.X, r.Min.Y
	e.x1, e.y1 = r.Max.X, r.Max.Y
	if e.visible {
		e.notify()
	}
}

// Rect returns the normalised rectangle spanned by the corners. Crossed
// edges are swapped so Min is never greater than Max.
func (e *Editor) Rect() image.Rectangle {
	return image.Rect(e.x0, e.y0, e.x1, e.y1)
}

// Corners returns the four corner points in top-left, top-right,
// bottom-right, bottom-left order.
func (e *Editor) Corners() [4]image.Point {
	return [4]image.Point{
		{e.x0, e.y0},
		{e.x1, e.y0},
		{e.x1, e.y1},
		{e.x0, e.y1},
	}
}

// SetDesiredRatio sets the width/height ratio shown by the placement guide.
// It never changes the rectangle itself.
func (e *Editor) SetDesiredRatio(ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return
	}
	e.desiredRatio = ratio
}

// DesiredRatio returns the guide ratio.
func (e *Editor) DesiredRatio() float64 {
	return e.desiredRatio
}

// Dragging reports whether a gesture is currently claimed.
func (e *Editor) Dragging() bool {
	return e.drag.active
}

// Guide returns the aspect-corrected sub-rectangle centred on Rect when the
// current ratio is off by more than the tolerance. The overshooting axis is
// shrunk. ok is false when no guide should be drawn, including for
// zero-height rectangles.
func (e *Editor) Guide() (guide image.Rectangle, ok bool) {
	r := e.Rect()
	w, h := r.Dx(), r.Dy()
	if h == 0 {
		return image.Rectangle{}, false
	}

	ratio := float64(w) / float64(h)
	switch {
	case ratio-e.desiredRatio > ratioTolerance:
		width := int(float64(h) * e.desiredRatio)
		r.Min.X += (w - width) / 2
		r.Max.X = r.Min.X + width
		return r, true
	case ratio-e.desiredRatio < -ratioTolerance:
		height := int(float64(w) / e.desiredRatio)
		r.Min.Y += (h - height) / 2
		r.Max.Y = r.Min.Y + height
		return r, true
	}
	return image.Rectangle{}, false
}

// HandleTouch feeds one touch event to the editor and reports whether the
// editor consumed it. Only the first pointer of a gesture is tracked.
func (e *Editor) HandleTouch(t Touch) bool {
	if !e.visible {
		return false
	}

	p := image.Pt(t.X, t.Y)
	switch t.Action {
	case TouchPress:
		if e.drag.active {
			return false
		}
		return e.press(t.Pointer, p)
	case TouchMove:
		if !e.drag.active || e.drag.pointer != t.Pointer {
			return false
		}
		e.move(p)
		return true
	case TouchRelease, TouchCancel:
		if !e.drag.active || e.drag.pointer != t.Pointer {
			return false
		}
		e.drag = dragState{}
		return true
	}
	return false
}

func (e *Editor) press(pointer int64, p image.Point) bool {
	corner := e.hitCorner(p)
	if corner < 0 && !p.In(e.Rect()) {
		return false
	}

	e.drag = dragState{
		active:   true,
		pointer:  pointer,
		corner:   corner,
		anchor:   p,
		snapshot: e.Corners(),
	}
	return true
}

// hitCorner returns the index of the closest corner whose centre lies
// strictly within the capture radius of p, or -1.
func (e *Editor) hitCorner(p image.Point) int {
	best := -1
	minDistance := float64(e.handleSize)
	for i, c := range e.Corners() {
		d := math.Hypot(float64(c.X-p.X), float64(c.Y-p.Y))
		if d < minDistance {
			best = i
			minDistance = d
		}
	}
	return best
}

func (e *Editor) move(p image.Point) {
	delta := p.Sub(e.drag.anchor)
	snap := e.drag.snapshot

	if e.drag.corner >= 0 {
		e.setCorner(e.drag.corner, clampPoint(snap[e.drag.corner].Add(delta)))
	} else {
		tl := clampPoint(snap[CornerTopLeft].Add(delta))
		br := clampPoint(snap[CornerBottomRight].Add(delta))
		e.x0, e.y0 = tl.X, tl.Y
		e.x1, e.y1 = br.X, br.Y
	}
	e.notify()
}

// setCorner moves one corner and, through the shared edges, the x of one
// neighbour and the y of the other.
func (e *Editor) setCorner(i int, p image.Point) {
	switch i {
	case CornerTopLeft:
		e.x0, e.y0 = p.X, p.Y
	case CornerTopRight:
		e.x1, e.y0 = p.X, p.Y
	case CornerBottomRight:
		e.x1, e.y1 = p.X, p.Y
	case CornerBottomLeft:
		e.x0, e.y1 = p.X, p.Y
	}
}

func (e *Editor) notify() {
	if e.onResize != nil {
		e.onResize(e)
	}
}

// clampPoint floors both coordinates at zero. There is no upper bound.
func clampPoint(p image.Point) image.Point {
	return image.Pt(max(p.X, 0), max(p.Y, 0))
}
