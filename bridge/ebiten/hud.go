package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"github.com/user-none/eblitui/standalone/style"
	"golang.org/x/image/font/gofont/gomono"
)

const hudFontSize = 12

// hud prints the session state and edit hints in the bottom-left corner.
type hud struct {
	face *text.GoTextFace
}

func newHUD(log *logrus.Entry) *hud {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		log.WithError(err).Warn("HUD font unavailable")
		return &hud{}
	}
	return &hud{face: &text.GoTextFace{Source: source, Size: hudFontSize}}
}

func (h *hud) Draw(screen *ebiten.Image, lines ...string) {
	if h.face == nil {
		return
	}
	lineHeight := float64(hudFontSize) * 1.4
	y := float64(screen.Bounds().Dy()) - lineHeight*float64(len(lines)) - 4
	for _, line := range lines {
		opts := &text.DrawOptions{}
		opts.GeoM.Translate(6, y)
		opts.ColorScale.ScaleWithColor(style.TextSecondary)
		text.Draw(screen, line, h.face, opts)
		y += lineHeight
	}
}

func statusLine(state fmt.Stringer, game string, fps float64) string {
	if game == "" {
		return fmt.Sprintf("%s  %.0f fps", state, fps)
	}
	return fmt.Sprintf("%s  %s  %.0f fps", state, game, fps)
}
