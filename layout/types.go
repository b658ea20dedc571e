// Package layout implements the on-screen placement of the two display
// regions and the draggable editor used to change it.
package layout

import "image"

// Screen identifies one of the two independently positioned display regions.
type Screen int

const (
	ScreenTop Screen = iota
	ScreenBottom
)

// String returns the display name of the screen.
func (s Screen) String() string {
	switch s {
	case ScreenTop:
		return "Top"
	case ScreenBottom:
		return "Bottom"
	default:
		return "Unknown"
	}
}

// Native screen sizes used for the default aspect ratios.
const (
	TopWidth     = 400
	BottomWidth  = 320
	ScreenHeight = 240
)

// The engine publishes both screens in one stacked frame: the top screen
// fills the upper half and the bottom screen is centred in the lower half.
const (
	FrameWidth  = TopWidth
	FrameHeight = 2 * ScreenHeight
)

// SourceRect returns the area of the stacked frame that holds screen.
func SourceRect(screen Screen) image.Rectangle {
	if screen == ScreenBottom {
		x := (FrameWidth - BottomWidth) / 2
		return image.Rect(x, ScreenHeight, x+BottomWidth, FrameHeight)
	}
	return image.Rect(0, 0, TopWidth, ScreenHeight)
}

// TopRatio and BottomRatio are the width/height ratios of the native screens.
const (
	TopRatio    = float64(TopWidth) / ScreenHeight
	BottomRatio = float64(BottomWidth) / ScreenHeight
)

// TouchAction is the phase of a touch event.
type TouchAction int

const (
	TouchPress TouchAction = iota
	TouchMove
	TouchRelease
	TouchCancel
)

// String returns the name of the action.
func (a TouchAction) String() string {
	switch a {
	case TouchPress:
		return "Press"
	case TouchMove:
		return "Move"
	case TouchRelease:
		return "Release"
	case TouchCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// Touch is a single pointer event in surface pixel coordinates.
type Touch struct {
	Pointer int64
	Action  TouchAction
	X, Y    int
}
