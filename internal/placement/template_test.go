package placement

import (
	"testing"

	"github.com/1broseidon/moves/internal/platform"
)

func TestTemplateFrame(t *testing.T) {
	area := platform.Rect{X: 0, Y: 30, Width: 1921, Height: 1051}
	current := platform.Rect{X: 10, Y: 40, Width: 800, Height: 600}

	tests := []struct {
		tpl  Template
		want platform.Rect
	}{
		{TemplateLeftHalf, platform.Rect{X: 0, Y: 30, Width: 960, Height: 1051}},
		{TemplateRightHalf, platform.Rect{X: 960, Y: 30, Width: 961, Height: 1051}},
		{TemplateTopHalf, platform.Rect{X: 0, Y: 30, Width: 1921, Height: 525}},
		{TemplateBottomHalf, platform.Rect{X: 0, Y: 555, Width: 1921, Height: 526}},
		{TemplateTopLeft, platform.Rect{X: 0, Y: 30, Width: 960, Height: 525}},
		{TemplateTopRight, platform.Rect{X: 960, Y: 30, Width: 961, Height: 525}},
		{TemplateBottomLeft, platform.Rect{X: 0, Y: 555, Width: 960, Height: 526}},
		{TemplateBottomRight, platform.Rect{X: 960, Y: 555, Width: 961, Height: 526}},
		{TemplateMaximize, area},
		{TemplateCenter, platform.Rect{X: 560, Y: 255, Width: 800, Height: 600}},
		{TemplateLeftThird, platform.Rect{X: 0, Y: 30, Width: 640, Height: 1051}},
		{TemplateCenterThird, platform.Rect{X: 640, Y: 30, Width: 640, Height: 1051}},
		{TemplateRightThird, platform.Rect{X: 1280, Y: 30, Width: 641, Height: 1051}},
	}
	for _, tt := range tests {
		t.Run(string(tt.tpl), func(t *testing.T) {
			got, err := TemplateFrame(tt.tpl, area, current)
			if err != nil {
				t.Fatalf("TemplateFrame: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTemplateFrame_CenterShrinksOversizedWindow(t *testing.T) {
	area := platform.Rect{Width: 1000, Height: 800}
	got, err := TemplateFrame(TemplateCenter, area, platform.Rect{Width: 3000, Height: 100})
	if err != nil {
		t.Fatalf("TemplateFrame: %v", err)
	}
	want := platform.Rect{X: 0, Y: 350, Width: 1000, Height: 100}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTemplateFrame_Unknown(t *testing.T) {
	if _, err := TemplateFrame("diagonal", platform.Rect{Width: 10, Height: 10}, platform.Rect{}); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestTemplateFrame_TinyAreaClamped(t *testing.T) {
	got, err := TemplateFrame(TemplateLeftThird, platform.Rect{Width: 2, Height: 1}, platform.Rect{})
	if err != nil {
		t.Fatalf("TemplateFrame: %v", err)
	}
	if got.Width != 1 || got.Height != 1 {
		t.Fatalf("expected 1x1 floor, got %+v", got)
	}
}

func TestTemplateNames(t *testing.T) {
	names := TemplateNames()
	if len(names) != 13 {
		t.Fatalf("expected 13 templates, got %d: %v", len(names), names)
	}
	for _, n := range names {
		if !IsTemplate(n) {
			t.Fatalf("%q listed but not a template", n)
		}
	}
	if IsTemplate("left") {
		t.Fatalf("position names are not templates")
	}
}
