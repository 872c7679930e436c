package tray

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSettingsCommand(t *testing.T) {
	only := func(names ...string) func(string) (string, error) {
		return func(name string) (string, error) {
			for _, n := range names {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		}
	}

	tests := []struct {
		name     string
		terminal string
		look     func(string) (string, error)
		want     []string
		wantErr  bool
	}{
		{
			name:     "terminal env",
			terminal: "alacritty",
			look:     only(),
			want:     []string{"alacritty", "-e", "/bin/moves", "tui"},
		},
		{
			name:     "terminal env with flags",
			terminal: "kitty --single-instance",
			look:     only(),
			want:     []string{"kitty", "--single-instance", "-e", "/bin/moves", "tui"},
		},
		{
			name: "fallback order",
			look: only("konsole", "xterm"),
			want: []string{"konsole", "-e", "/bin/moves", "tui"},
		},
		{
			name: "gnome terminal separator",
			look: only("gnome-terminal"),
			want: []string{"gnome-terminal", "--", "/bin/moves", "tui"},
		},
		{
			name:    "nothing installed",
			look:    only(),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := settingsCommand(tt.terminal, "/bin/moves", tt.look)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("settingsCommand: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("settingsCommand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusTitle(t *testing.T) {
	if statusTitle(true) != "Moves: enabled" || statusTitle(false) != "Moves: disabled" {
		t.Fatalf("unexpected titles")
	}
}

func TestIconIsPNG(t *testing.T) {
	if len(trayIcon) < 8 || string(trayIcon[1:4]) != "PNG" {
		t.Fatalf("embedded icon is not a PNG")
	}
}

func TestStopConcurrent(t *testing.T) {
	m := NewManager(Dependencies{})
	var quits atomic.Int32
	m.quit = func() { quits.Add(1) }

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Stop()
		}()
	}
	wg.Wait()
	m.Stop()

	if got := quits.Load(); got != 1 {
		t.Fatalf("quit called %d times, want 1", got)
	}
	select {
	case <-m.stop:
	default:
		t.Fatal("stop channel not closed")
	}
}
