package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/ipc"
	"github.com/1broseidon/moves/internal/placement"
	"github.com/1broseidon/moves/internal/platform"
)

func TestParseCustomArgs(t *testing.T) {
	c, err := parseCustomArgs([]string{
		"--position", "center",
		"--rel-width", "0.5",
		"--height", "600",
		"--x-offset", "0",
		"--rel-y-offset", "0.1",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseCustomArgs: %v", err)
	}
	if c.Position != placement.PositionCenter {
		t.Fatalf("position=%q, want center", c.Position)
	}
	if c.RelativeWidth != 0.5 || c.AbsoluteHeight != 600 {
		t.Fatalf("sizes=%v/%v, want 0.5/600", c.RelativeWidth, c.AbsoluteHeight)
	}
	if c.AbsoluteXOffset == nil || *c.AbsoluteXOffset != 0 {
		t.Fatalf("x offset=%v, want explicit 0", c.AbsoluteXOffset)
	}
	if c.AbsoluteYOffset != nil {
		t.Fatalf("y offset=%v, want unset", *c.AbsoluteYOffset)
	}
	if c.RelativeYOffset == nil || *c.RelativeYOffset != 0.1 {
		t.Fatalf("rel y offset=%v, want 0.1", c.RelativeYOffset)
	}
}

func TestParseCustomArgsDefaultsToTopLeft(t *testing.T) {
	c, err := parseCustomArgs(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseCustomArgs: %v", err)
	}
	if c.Position != placement.PositionTopLeft {
		t.Fatalf("position=%q, want topLeft", c.Position)
	}
}

func TestParseCustomArgsRejectsBadInput(t *testing.T) {
	cases := [][]string{
		{"--position", "middle"},
		{"--x-offset", "abc"},
		{"extra"},
	}
	for _, args := range cases {
		if _, err := parseCustomArgs(args, io.Discard); err == nil {
			t.Errorf("parseCustomArgs(%v) succeeded, want error", args)
		}
	}

	if _, err := parseCustomArgs([]string{"-h"}, io.Discard); err != flag.ErrHelp {
		t.Fatalf("help err=%v, want flag.ErrHelp", err)
	}
}

func TestRunPlaceRejectsUnknownTemplate(t *testing.T) {
	if rc := runPlace([]string{"sideways"}); rc != 2 {
		t.Fatalf("runPlace rc=%d, want 2", rc)
	}
	if rc := runPlace(nil); rc != 2 {
		t.Fatalf("runPlace(nil) rc=%d, want 2", rc)
	}
}

func TestRunOpenRejectsForeignScheme(t *testing.T) {
	if rc := runOpen([]string{"https://example.com"}); rc != 2 {
		t.Fatalf("runOpen rc=%d, want 2", rc)
	}
}

func TestRunConfigSubcommands(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	writeFile(t, good, "move_modifiers: [ctrl, alt]\nresize_modifiers: [ctrl, alt, shift]\n")
	if rc := runConfig([]string{"validate", "--path", good}); rc != 0 {
		t.Fatalf("validate good rc=%d, want 0", rc)
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "move_modifiers: [ctrl]\nresize_modifiers: [ctrl]\n")
	if rc := runConfig([]string{"validate", "--path", bad}); rc != 1 {
		t.Fatalf("validate bad rc=%d, want 1", rc)
	}

	if rc := runConfig([]string{"print", "--path", good}); rc != 0 {
		t.Fatalf("print rc=%d, want 0", rc)
	}
	if rc := runConfig([]string{"print", "--effective"}); rc != 2 {
		t.Fatalf("print --effective rc=%d, want 2", rc)
	}

	if rc := runConfig([]string{"frobnicate"}); rc != 2 {
		t.Fatalf("unknown subcommand rc=%d, want 2", rc)
	}
}

func TestFormatSource(t *testing.T) {
	cases := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceDefault, Name: "poll_interval_ms"}, "default:poll_interval_ms"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml"}, "file:/a.yaml"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml", Line: 3, Column: 5}, "file:/a.yaml:3:5"},
	}
	for _, tc := range cases {
		if got := formatSource(tc.src); got != tc.want {
			t.Errorf("formatSource(%+v)=%q, want %q", tc.src, got, tc.want)
		}
	}
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, &ipc.StatusData{
		DaemonRunning:   true,
		Enabled:         true,
		Intention:       "resize",
		MoveModifiers:   "ctrl+alt",
		ResizeModifiers: "ctrl+alt+shift",
		Gesture: &ipc.GestureData{
			ID:     "g-1",
			Window: 0x2a,
			Corner: "topLeft",
			Frame:  platform.Rect{X: 10, Y: 20, Width: 300, Height: 200},
		},
	})
	out := buf.String()
	for _, want := range []string{"enabled:          true", "intention:        resize", "window=0x2a", "300x200+10+20", "corner=topLeft"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	if _, err := readPIDFile(); err == nil {
		t.Fatal("readPIDFile succeeded without a pid file")
	}

	path, err := writePIDFile()
	if err != nil {
		t.Fatalf("writePIDFile: %v", err)
	}
	pid, err := readPIDFile()
	if err != nil {
		t.Fatalf("readPIDFile: %v", err)
	}
	if pid != os.Getpid() {
		t.Fatalf("pid=%d, want %d", pid, os.Getpid())
	}

	writeFile(t, path, "garbage\n")
	if _, err := readPIDFile(); err == nil {
		t.Fatal("readPIDFile accepted garbage")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
