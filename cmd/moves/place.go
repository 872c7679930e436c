package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/1broseidon/moves/internal/ipc"
	"github.com/1broseidon/moves/internal/placement"
)

func printPlaceUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  moves place <template>")
	fmt.Fprintln(w, "  moves place custom [options]")
	fmt.Fprintln(w, "  moves place list")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Templates:")
	for _, name := range placement.TemplateNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

func runPlace(args []string) int {
	if len(args) == 0 {
		printPlaceUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "help", "-h", "--help":
		printPlaceUsage(os.Stdout)
		return 0
	case "list":
		for _, name := range placement.TemplateNames() {
			fmt.Println(name)
		}
		return 0
	case "custom":
		custom, err := parseCustomArgs(args[1:], os.Stderr)
		if err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		res, err := ipc.NewClient().PlaceCustom(custom)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		printPlacement(os.Stdout, res)
		return 0
	}

	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "place takes a single template name")
		printPlaceUsage(os.Stderr)
		return 2
	}
	if !placement.IsTemplate(args[0]) {
		fmt.Fprintf(os.Stderr, "Unknown template: %s\n\n", args[0])
		printPlaceUsage(os.Stderr)
		return 2
	}

	res, err := ipc.NewClient().PlaceTemplate(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printPlacement(os.Stdout, res)
	return 0
}

// parseCustomArgs reads the place custom flags. Offsets are pointers so an
// explicit zero is distinguishable from an unset flag.
func parseCustomArgs(args []string, output io.Writer) (placement.Custom, error) {
	var c placement.Custom

	fs := flag.NewFlagSet("place custom", flag.ContinueOnError)
	fs.SetOutput(output)
	position := fs.String("position", string(placement.PositionTopLeft), "Anchor: topLeft, topRight, bottomLeft, bottomRight, center, left, right, top, bottom")
	fs.Float64Var(&c.AbsoluteWidth, "width", 0, "Width in pixels")
	fs.Float64Var(&c.AbsoluteHeight, "height", 0, "Height in pixels")
	fs.Float64Var(&c.RelativeWidth, "rel-width", 0, "Width as a fraction of the usable area")
	fs.Float64Var(&c.RelativeHeight, "rel-height", 0, "Height as a fraction of the usable area")
	fs.Func("x-offset", "Horizontal offset in pixels", floatPtrFlag(&c.AbsoluteXOffset))
	fs.Func("y-offset", "Vertical offset in pixels", floatPtrFlag(&c.AbsoluteYOffset))
	fs.Func("rel-x-offset", "Horizontal offset as a fraction of the usable width", floatPtrFlag(&c.RelativeXOffset))
	fs.Func("rel-y-offset", "Vertical offset as a fraction of the usable height", floatPtrFlag(&c.RelativeYOffset))
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: moves place custom [options]")
		fmt.Fprintln(output, "")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return placement.Custom{}, err
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(output, "unexpected argument: %s\n", fs.Arg(0))
		return placement.Custom{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	p := placement.ParsePosition(*position)
	if string(p) != *position {
		fmt.Fprintf(output, "unknown position %q\n", *position)
		return placement.Custom{}, fmt.Errorf("unknown position %q", *position)
	}
	c.Position = p
	return c, nil
}

func floatPtrFlag(dst **float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

func runOpen(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: moves open <moves-url>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  moves open moves://template/left-half")
		fmt.Fprintln(os.Stderr, "  moves open 'moves://custom/center?relativeWidth=0.6&relativeHeight=0.8'")
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "open takes a single URL")
		return 2
	}

	// Reject malformed URLs before dialing the daemon.
	if _, err := placement.ParseURL(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	res, err := ipc.NewClient().OpenURL(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printPlacement(os.Stdout, res)
	return 0
}

func printPlacement(w io.Writer, res *ipc.PlacementData) {
	if res == nil {
		return
	}
	fmt.Fprintf(w, "window 0x%x -> %dx%d+%d+%d", uint32(res.Window),
		res.Frame.Width, res.Frame.Height, res.Frame.X, res.Frame.Y)
	if res.Display != "" {
		fmt.Fprintf(w, " on %s", res.Display)
	}
	fmt.Fprintln(w)
}
