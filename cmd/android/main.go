//go:build android

// Command android runs the dual-screen frontend as a gomobile app. The
// game path is the first file bundled under the app's data directory.
package main

import (
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/user-none/emdual/adapter"
	"github.com/user-none/emdual/bridge/mobile"
	"github.com/user-none/emdual/core"
	"github.com/user-none/emdual/layout"
	"github.com/user-none/emdual/ui"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/exp/gl/glutil"
	"golang.org/x/mobile/geom"
	"golang.org/x/mobile/gl"
)

func main() {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)

	engine, err := core.NewEngine(&adapter.Factory{}, core.Config{
		DataDirName: adapter.Name,
		Audio:       true,
		Volume:      1,
		Logger:      log,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create engine")
	}
	defer engine.Close()

	ctrl := ui.NewController(engine, nil, nil, ui.Config{Logger: log})

	app.Main(func(a app.App) {
		tr := mobile.NewTranslator(ctrl, gamePath(), log.WithField("component", "app"))
		var (
			glctx gl.Context
			sz    size.Event
			scr   *screens
		)

		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case size.Event:
				sz = e
			case paint.Event:
				if glctx == nil {
					if c, ok := e.Drawer.(gl.Context); ok {
						glctx = c
						scr = newScreens(glctx)
					}
				}
				if glctx != nil && !e.External {
					scr.draw(glctx, sz, engine)
					a.Publish()
				}
			}

			if tr.Handle(e, time.Now()) {
				if scr != nil {
					scr.release()
				}
				return
			}
			if tr.Visible() {
				a.Send(paint.Event{})
			}
		}
	})
}

// gamePath looks for a game next to the app's files.
func gamePath() string {
	dir := os.Getenv("FILESDIR")
	exts := (&adapter.Factory{}).SystemInfo().Extensions
	for _, ext := range exts {
		matches, _ := filepath.Glob(filepath.Join(dir, "*"+ext))
		if len(matches) > 0 {
			return matches[0]
		}
	}
	return filepath.Join(dir, "game.3ds")
}

// screens uploads the engine frame to a texture and draws each screen into
// its custom layout.
type screens struct {
	images *glutil.Images
	frame  *glutil.Image
}

func newScreens(glctx gl.Context) *screens {
	images := glutil.NewImages(glctx)
	return &screens{
		images: images,
		frame:  images.NewImage(layout.FrameWidth, layout.FrameHeight),
	}
}

func (s *screens) draw(glctx gl.Context, sz size.Event, engine *core.Engine) {
	glctx.ClearColor(0, 0, 0, 1)
	glctx.Clear(gl.COLOR_BUFFER_BIT)

	pixels, stride, height := engine.Frame()
	if height < layout.FrameHeight || stride < layout.FrameWidth*4 {
		return
	}
	for y := 0; y < layout.FrameHeight; y++ {
		copy(s.frame.RGBA.Pix[y*s.frame.RGBA.Stride:], pixels[y*stride:y*stride+layout.FrameWidth*4])
	}
	s.frame.Upload()

	ppt := sz.PixelsPerPt
	if ppt <= 0 {
		ppt = 1
	}
	for i := range 2 {
		screen := layout.Screen(i)
		dst := engine.CustomLayout(screen)
		if dst.Empty() {
			continue
		}
		s.frame.Draw(sz,
			pt(dst.Min, ppt),
			pt(image.Pt(dst.Max.X, dst.Min.Y), ppt),
			pt(image.Pt(dst.Min.X, dst.Max.Y), ppt),
			layout.SourceRect(screen),
		)
	}
}

func (s *screens) release() {
	s.frame.Release()
	s.images.Release()
}

func pt(p image.Point, pixelsPerPt float32) geom.Point {
	return geom.Point{
		X: geom.Pt(float32(p.X) / pixelsPerPt),
		Y: geom.Pt(float32(p.Y) / pixelsPerPt),
	}
}
