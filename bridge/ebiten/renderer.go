// Package ebiten is the desktop shell: an ebiten.Game that feeds window,
// focus, pointer and refresh events to the controller and presents the
// engine's two screens inside their custom layouts.
package ebiten

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/emdual/layout"
)

// Renderer draws the stacked engine frame as two independently placed
// screens.
type Renderer struct {
	offscreen *ebiten.Image           // Native stacked frame
	drawOpts  ebiten.DrawImageOptions // Reused per screen to avoid allocation
}

// DrawScreens uploads the frame and draws each screen's source area scaled
// into its destination rectangle.
func (r *Renderer) DrawScreens(dst *ebiten.Image, pixels []byte, stride, height int, rects [2]image.Rectangle) {
	if height == 0 || stride == 0 {
		return
	}
	width := stride / 4
	if len(pixels) < stride*height || width < layout.FrameWidth || height < layout.FrameHeight {
		return
	}

	if r.offscreen == nil || r.offscreen.Bounds().Dx() != width || r.offscreen.Bounds().Dy() != height {
		r.offscreen = ebiten.NewImage(width, height)
	}
	r.offscreen.WritePixels(pixels[:stride*height])

	for i, rect := range rects {
		src := layout.SourceRect(layout.Screen(i))
		if rect.Empty() {
			continue
		}
		r.drawOpts = ebiten.DrawImageOptions{}
		r.drawOpts.GeoM = screenGeoM(src, rect)
		r.drawOpts.Filter = ebiten.FilterNearest
		dst.DrawImage(r.offscreen.SubImage(src).(*ebiten.Image), &r.drawOpts)
	}
}

// screenGeoM maps src onto dst. The sub-image keeps its source origin, so
// the translation removes it before scaling.
func screenGeoM(src, dst image.Rectangle) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-float64(src.Min.X), -float64(src.Min.Y))
	g.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	g.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	return g
}
