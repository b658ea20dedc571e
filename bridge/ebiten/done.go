package ebiten

import (
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/eblitui/standalone/style"
)

// doneButton is the "done" affordance shown while an edit mode is active.
// The ebitenui tree only exists while the button is visible.
type doneButton struct {
	onClick func()
	visible bool
	ui      *ebitenui.UI
}

func newDoneButton(onClick func()) *doneButton {
	return &doneButton{onClick: onClick}
}

// SetVisible implements ui.Affordance.
func (d *doneButton) SetVisible(visible bool) {
	if visible == d.visible {
		return
	}
	d.visible = visible
	if !visible {
		d.ui = nil
		return
	}
	d.ui = &ebitenui.UI{Container: d.build()}
}

func (d *doneButton) build() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(style.DefaultPadding)),
		)),
	)

	button := style.PrimaryTextButton("Done", style.ButtonPaddingMedium, func(*widget.ButtonClickedEventArgs) {
		if d.onClick != nil {
			d.onClick()
		}
	})
	button.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	container.AddChild(button)
	return container
}

// Update runs the widget tree while visible.
func (d *doneButton) Update() {
	if d.ui != nil {
		d.ui.Update()
	}
}

// Draw renders the widget tree while visible.
func (d *doneButton) Draw(screen *ebiten.Image) {
	if d.ui != nil {
		d.ui.Draw(screen)
	}
}

// Visible reports whether the button is shown.
func (d *doneButton) Visible() bool {
	return d.visible
}
