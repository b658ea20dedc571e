package ebiten

import (
	"image"
	"maps"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/emdual/layout"
)

// mousePointer is the pointer id used for the left mouse button. Touch ids
// from ebiten are never negative.
const mousePointer int64 = -1

// pointerSnapshot maps pointer ids to their positions in one tick.
type pointerSnapshot map[int64]image.Point

// pollPointers captures every active touch and a held left mouse button.
func pollPointers(buf []ebiten.TouchID) (pointerSnapshot, []ebiten.TouchID) {
	snap := make(pointerSnapshot)
	buf = ebiten.AppendTouchIDs(buf[:0])
	for _, id := range buf {
		x, y := ebiten.TouchPosition(id)
		snap[int64(id)] = image.Pt(x, y)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		snap[mousePointer] = image.Pt(x, y)
	}
	return snap, buf
}

// diffPointers converts two consecutive snapshots into touch events:
// releases for pointers that went away, presses for new pointers and moves
// for pointers whose position changed. Each group is ordered by pointer id.
func diffPointers(prev, cur pointerSnapshot) []layout.Touch {
	var out []layout.Touch
	for _, id := range slices.Sorted(maps.Keys(prev)) {
		if _, ok := cur[id]; !ok {
			p := prev[id]
			out = append(out, layout.Touch{Pointer: id, Action: layout.TouchRelease, X: p.X, Y: p.Y})
		}
	}
	for _, id := range slices.Sorted(maps.Keys(cur)) {
		p := cur[id]
		old, ok := prev[id]
		switch {
		case !ok:
			out = append(out, layout.Touch{Pointer: id, Action: layout.TouchPress, X: p.X, Y: p.Y})
		case old != p:
			out = append(out, layout.Touch{Pointer: id, Action: layout.TouchMove, X: p.X, Y: p.Y})
		}
	}
	return out
}

// keyNames maps the key names used in emucore.Button defaults.
var keyNames = map[string]ebiten.Key{
	"J":         ebiten.KeyJ,
	"K":         ebiten.KeyK,
	"L":         ebiten.KeyL,
	"U":         ebiten.KeyU,
	"I":         ebiten.KeyI,
	"O":         ebiten.KeyO,
	"Enter":     ebiten.KeyEnter,
	"Backspace": ebiten.KeyBackspace,
	"Space":     ebiten.KeySpace,
}

// padNames maps the pad names used in emucore.Button defaults.
var padNames = map[string]ebiten.StandardGamepadButton{
	"A":     ebiten.StandardGamepadButtonRightBottom,
	"B":     ebiten.StandardGamepadButtonRightRight,
	"X":     ebiten.StandardGamepadButtonRightLeft,
	"Y":     ebiten.StandardGamepadButtonRightTop,
	"L1":    ebiten.StandardGamepadButtonFrontTopLeft,
	"R1":    ebiten.StandardGamepadButtonFrontTopRight,
	"Start": ebiten.StandardGamepadButtonCenterRight,
	"Back":  ebiten.StandardGamepadButtonCenterLeft,
}

// inputMapping maps button bit ids to keyboard keys and pad buttons.
type inputMapping struct {
	keys map[int][]ebiten.Key
	pad  map[int]ebiten.StandardGamepadButton
}

// newInputMapping builds the d-pad defaults (WASD and arrows, pad d-pad)
// plus the core's own buttons.
func newInputMapping(buttons []emucore.Button) inputMapping {
	m := inputMapping{
		keys: map[int][]ebiten.Key{
			emucore.ButtonUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
			emucore.ButtonDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
			emucore.ButtonLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
			emucore.ButtonRight: {ebiten.KeyD, ebiten.KeyArrowRight},
		},
		pad: map[int]ebiten.StandardGamepadButton{
			emucore.ButtonUp:    ebiten.StandardGamepadButtonLeftTop,
			emucore.ButtonDown:  ebiten.StandardGamepadButtonLeftBottom,
			emucore.ButtonLeft:  ebiten.StandardGamepadButtonLeftLeft,
			emucore.ButtonRight: ebiten.StandardGamepadButtonLeftRight,
		},
	}
	for _, b := range buttons {
		if k, ok := keyNames[b.DefaultKey]; ok {
			m.keys[b.ID] = append(m.keys[b.ID], k)
		}
		if p, ok := padNames[b.DefaultPad]; ok {
			m.pad[b.ID] = p
		}
	}
	return m
}

// poll reads keyboard and all standard-layout gamepads into one bitmask.
func (m inputMapping) poll() uint32 {
	var buttons uint32
	for id, keys := range m.keys {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				buttons |= 1 << id
			}
		}
	}

	for _, gp := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(gp) {
			continue
		}
		for id, b := range m.pad {
			if ebiten.IsStandardGamepadButtonPressed(gp, b) {
				buttons |= 1 << id
			}
		}
		buttons |= stickButtons(
			ebiten.StandardGamepadAxisValue(gp, ebiten.StandardGamepadAxisLeftStickHorizontal),
			ebiten.StandardGamepadAxisValue(gp, ebiten.StandardGamepadAxisLeftStickVertical),
		)
	}
	return buttons
}

// stickButtons converts the left stick into d-pad bits.
func stickButtons(x, y float64) uint32 {
	const deadzone = 0.5
	var buttons uint32
	if x < -deadzone {
		buttons |= 1 << emucore.ButtonLeft
	}
	if x > deadzone {
		buttons |= 1 << emucore.ButtonRight
	}
	if y < -deadzone {
		buttons |= 1 << emucore.ButtonUp
	}
	if y > deadzone {
		buttons |= 1 << emucore.ButtonDown
	}
	return buttons
}
