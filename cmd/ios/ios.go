// Package emdualios exposes the built-in core to gomobile bind. Only the
// core is exported; the iOS app owns presentation and layout.
package emdualios

import (
	ios "github.com/user-none/eblitui-ios"
	"github.com/user-none/emdual/adapter"
)

func init() {
	ios.RegisterFactory(&adapter.Factory{})
}

func Init(path string, regionCode int) bool { return ios.Init(path, regionCode) }
func Close()                                { ios.Close() }
func RunFrame()                             { ios.RunFrame() }
func GetFrameData() []byte                  { return ios.GetFrameData() }
func GetAudioData() []byte                  { return ios.GetAudioData() }
func SetInput(player int, buttons int)      { ios.SetInput(player, buttons) }
func FrameWidth() int                       { return ios.FrameWidth() }
func FrameStride() int                      { return ios.FrameStride() }
func FrameHeight() int                      { return ios.FrameHeight() }
func SystemInfoJSON() string                { return ios.SystemInfoJSON() }
func GetFPS() int                           { return ios.GetFPS() }
func ExtractAndStoreROM(srcPath, destDir string) (string, error) {
	return ios.ExtractAndStoreROM(srcPath, destDir)
}
