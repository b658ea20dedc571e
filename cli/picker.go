package cli

import (
	"errors"
	"strings"

	"github.com/sqweek/dialog"
)

// ErrNoGame is returned when the file picker is cancelled.
var ErrNoGame = errors.New("no game selected")

// PickGame asks the user for a game file with one of extensions.
func PickGame(extensions []string) (string, error) {
	path, err := dialog.File().
		Title("Open game").
		Filter("Games", dialogExtensions(extensions)...).
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrNoGame
	}
	return path, err
}

// dialogExtensions strips the leading dots dialog does not expect.
func dialogExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(ext, ".")
		if ext != "" {
			out = append(out, ext)
		}
	}
	return out
}
