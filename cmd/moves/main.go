package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/ipc"
	"github.com/1broseidon/moves/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: moves daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: moves daemon")
			os.Exit(2)
		}
		os.Exit(runDaemon())
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "enable":
		os.Exit(runSetEnabled("enable", true, os.Args[2:]))
	case "disable":
		os.Exit(runSetEnabled("disable", false, os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "place":
		os.Exit(runPlace(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "pick":
		os.Exit(runPick(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: moves <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the moves daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  enable              Enable modifier drags")
	fmt.Fprintln(w, "  disable             Disable modifier drags")
	fmt.Fprintln(w, "  reload              Ask the daemon to reload its config")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  place <template>    Snap the focused window to a template")
	fmt.Fprintln(w, "  place custom        Place the focused window at a custom frame")
	fmt.Fprintln(w, "  place list          List templates")
	fmt.Fprintln(w, "  open <moves-url>    Apply a moves:// URL to the focused window")
	fmt.Fprintln(w, "  pick                Choose a template from a launcher (rofi, fuzzel, ...)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive settings")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'moves <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: moves status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printStatus(os.Stdout, status)
	return 0
}

func printStatus(w io.Writer, status *ipc.StatusData) {
	fmt.Fprintf(w, "daemon_running:   %v\n", status.DaemonRunning)
	fmt.Fprintf(w, "enabled:          %v\n", status.Enabled)
	fmt.Fprintf(w, "intention:        %s\n", status.Intention)
	fmt.Fprintf(w, "move_modifiers:   %s\n", status.MoveModifiers)
	fmt.Fprintf(w, "resize_modifiers: %s\n", status.ResizeModifiers)
	if g := status.Gesture; g != nil {
		fmt.Fprintf(w, "gesture:          %s window=0x%x frame=%dx%d+%d+%d", g.ID, g.Window,
			g.Frame.Width, g.Frame.Height, g.Frame.X, g.Frame.Y)
		if g.Corner != "" {
			fmt.Fprintf(w, " corner=%s", g.Corner)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "uptime_seconds:   %d\n", status.UptimeSeconds)
}

func runSetEnabled(name string, enabled bool, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	persist := fs.Bool("persist", false, "Also write the value to the config file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: moves %s [--persist]\n", name)
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.SetEnabled(enabled, *persist); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if enabled {
		fmt.Println("moves: enabled")
	} else {
		fmt.Println("moves: disabled")
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: moves reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Reload the daemon configuration from disk.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().Reload(); err != nil {
		// The socket may be gone while the process lives on; fall back to SIGHUP.
		pid, pidErr := readPIDFile()
		if pidErr != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if sigErr := syscall.Kill(pid, syscall.SIGHUP); sigErr != nil {
			fmt.Fprintf(os.Stderr, "%v (SIGHUP to pid %d: %v)\n", err, pid, sigErr)
			return 1
		}
		fmt.Printf("config: SIGHUP sent to pid %d\n", pid)
		return 0
	}
	fmt.Println("config: reloaded")
	return 0
}

func loadForCLI(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  moves config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  moves config print [--path PATH] [--defaults]")
		fmt.Fprintln(os.Stderr, "  moves config explain [--path PATH] <yaml.path>")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/moves/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadForCLI(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/moves/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadForCLI(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/moves/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			fmt.Fprintf(os.Stderr, "known paths: %v\n", config.Paths())
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadForCLI(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/moves/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: moves tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  tab, 1-2   Switch between General and Excluded Apps")
		fmt.Fprintln(os.Stderr, "  e          Edit general settings")
		fmt.Fprintln(os.Stderr, "  a, x       Add or remove an excluded app")
		fmt.Fprintln(os.Stderr, "  ctrl+s     Save and reload the daemon")
		fmt.Fprintln(os.Stderr, "  q, ctrl+c  Quit")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if err := tui.Run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
