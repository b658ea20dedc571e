//go:build !libretro && !ios

// Command standalone runs the built-in core either inside the eblitui
// library UI or, with -frontend dual, in the dual-screen layout window.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/emdual/adapter"
	"github.com/user-none/emdual/cli"
)

func main() {
	romPath := flag.String("rom", "", "path to game file (opens the library UI if not provided)")
	frontend := flag.String("frontend", "library", "frontend: library or dual")
	flag.Parse()

	factory := &adapter.Factory{}

	switch *frontend {
	case "library":
	case "dual":
		if *romPath == "" {
			log.Fatal("-frontend dual requires -rom")
		}
		opts := cli.DefaultOptions()
		opts.GamePath = *romPath
		if err := cli.Run(factory, opts, cli.NewLogger(opts.LogLevel, os.Stderr)); err != nil {
			log.Fatal(err)
		}
		return
	default:
		log.Fatalf("invalid -frontend %q (use library or dual)", *frontend)
	}

	if *romPath != "" {
		if err := standalone.RunDirect(factory, *romPath, "auto", map[string]string{}); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}
