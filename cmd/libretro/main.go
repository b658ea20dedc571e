// Command libretro exports the built-in core as a libretro core. It does
// not use the layout controller; the libretro frontend owns presentation.
package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/emdual/adapter"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadA, BitID: adapter.ButtonA},
		{RetroID: libretro.JoypadB, BitID: adapter.ButtonB},
		{RetroID: libretro.JoypadSelect, BitID: adapter.ButtonSelect},
		{RetroID: libretro.JoypadStart, BitID: adapter.ButtonStart},
		{RetroID: libretro.JoypadX, BitID: adapter.ButtonX},
		{RetroID: libretro.JoypadY, BitID: adapter.ButtonY},
	})
}

func main() {}
