package placement

import (
	"errors"
	"testing"

	"github.com/1broseidon/moves/internal/platform"
	"github.com/1broseidon/moves/internal/platform/platformtest"
)

func TestPlacer_TemplateUsesUsableArea(t *testing.T) {
	b := platformtest.NewBackend()
	b.AddWindow(7, platform.Rect{X: 100, Y: 100, Width: 400, Height: 300}, platform.AppInfo{})
	b.SetActive(7)

	res, err := NewPlacer(b).Template("left-half")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	want := platform.Rect{X: 0, Y: 30, Width: 960, Height: 1050}
	if res.Frame != want || res.Window != 7 || res.Display != "fake-0" {
		t.Fatalf("result = %+v", res)
	}
	if got, _ := b.FrameOf(7); got != want {
		t.Fatalf("window frame = %+v", got)
	}
}

func TestPlacer_PicksDisplayUnderWindow(t *testing.T) {
	b := platformtest.NewBackend()
	b.SetDisplays(
		platform.Display{Name: "left", Bounds: platform.Rect{Width: 1000, Height: 1000}, Usable: platform.Rect{Width: 1000, Height: 1000}},
		platform.Display{ID: 1, Name: "right", Bounds: platform.Rect{X: 1000, Width: 800, Height: 600}, Usable: platform.Rect{X: 1000, Width: 800, Height: 600}},
	)
	b.AddWindow(3, platform.Rect{X: 1200, Y: 100, Width: 200, Height: 200}, platform.AppInfo{})
	b.SetActive(3)

	res, err := NewPlacer(b).Template("maximize")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if res.Display != "right" || res.Frame != (platform.Rect{X: 1000, Width: 800, Height: 600}) {
		t.Fatalf("result = %+v", res)
	}
}

func TestPlacer_Custom(t *testing.T) {
	b := platformtest.NewBackend()
	b.AddWindow(1, platform.Rect{Width: 300, Height: 300}, platform.AppInfo{})
	b.SetActive(1)

	res, err := NewPlacer(b).Custom(Custom{Position: PositionCenter, RelativeWidth: 0.5, AbsoluteHeight: 450})
	if err != nil {
		t.Fatalf("Custom: %v", err)
	}
	want := platform.Rect{X: 480, Y: 330, Width: 960, Height: 450}
	if res.Frame != want {
		t.Fatalf("frame = %+v, want %+v", res.Frame, want)
	}
}

func TestPlacer_Errors(t *testing.T) {
	b := platformtest.NewBackend()
	p := NewPlacer(b)

	if _, err := p.Template("left-half"); !errors.Is(err, ErrNoActiveWindow) {
		t.Fatalf("expected ErrNoActiveWindow, got %v", err)
	}

	b.AddWindow(1, platform.Rect{Width: 10, Height: 10}, platform.AppInfo{})
	b.SetActive(1)
	if _, err := p.Template("nope"); err == nil {
		t.Fatalf("expected unknown template error")
	}
	if len(b.Moves()) != 0 {
		t.Fatalf("no window should have moved")
	}
}
