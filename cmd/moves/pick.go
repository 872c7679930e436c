package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/ipc"
	"github.com/1broseidon/moves/internal/palette"
)

func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	backendName := fs.String("backend", "", "Launcher: auto, rofi, fuzzel, wofi, dmenu (default: picker_backend from config)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: moves pick [--backend NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Choose a template in a launcher and apply it to the focused window.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	name := *backendName
	if name == "" {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		name = cfg.PickerBackend
	}

	backend, err := palette.NewBackend(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	template, err := palette.PickTemplate(backend)
	if err != nil {
		if palette.IsCancelled(err) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	res, err := ipc.NewClient().PlaceTemplate(string(template))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printPlacement(os.Stdout, res)
	return 0
}
