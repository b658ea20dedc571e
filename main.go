package main

import (
	"errors"
	"os"

	"github.com/user-none/emdual/adapter"
	"github.com/user-none/emdual/cli"
)

func main() {
	opts, err := cli.ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	log := cli.NewLogger(opts.LogLevel, os.Stderr)

	factory := &adapter.Factory{}
	if opts.GamePath == "" {
		opts.GamePath, err = cli.PickGame(factory.SystemInfo().Extensions)
		if errors.Is(err, cli.ErrNoGame) {
			log.Info("No game selected")
			return
		}
		if err != nil {
			log.WithError(err).Fatal("File picker failed")
		}
	}

	if err := cli.Run(factory, opts, log); err != nil {
		log.WithError(err).Fatal("Emulator exited with error")
	}
}
