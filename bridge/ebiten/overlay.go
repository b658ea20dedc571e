package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/user-none/eblitui/standalone/style"
	"github.com/user-none/emdual/layout"
)

var (
	editorColors = [2]color.NRGBA{
		layout.ScreenTop:    {0x4a, 0xa8, 0xff, 0xff},
		layout.ScreenBottom: {0xff, 0x8a, 0x4a, 0xff},
	}
	guideFill = color.NRGBA{0xff, 0xff, 0xff, 0x30}
)

// drawEditor renders an editor's rectangle, its aspect guide and its four
// corner handles.
func drawEditor(dst *ebiten.Image, ed *layout.Editor, clr color.NRGBA) {
	if !ed.Visible() {
		return
	}

	if guide, ok := ed.Guide(); ok {
		fillRect(dst, guide, guideFill)
	}

	r := ed.Rect()
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, clr, true)

	radius := float32(ed.HandleSize()) / 2
	handle := clr
	if ed.Dragging() {
		handle = style.Accent
	}
	for _, c := range ed.Corners() {
		vector.DrawFilledCircle(dst, float32(c.X), float32(c.Y), radius, handle, true)
	}
}

func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}
