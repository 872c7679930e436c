// Package placement computes and applies window frames from named templates
// and custom anchor/size/offset descriptions.
package placement

import (
	"fmt"
	"sort"

	"github.com/1broseidon/moves/internal/platform"
)

// Template names a fixed region of a display's usable area.
type Template string

const (
	TemplateLeftHalf    Template = "left-half"
	TemplateRightHalf   Template = "right-half"
	TemplateTopHalf     Template = "top-half"
	TemplateBottomHalf  Template = "bottom-half"
	TemplateTopLeft     Template = "top-left"
	TemplateTopRight    Template = "top-right"
	TemplateBottomLeft  Template = "bottom-left"
	TemplateBottomRight Template = "bottom-right"
	TemplateMaximize    Template = "maximize"
	TemplateCenter      Template = "center"
	TemplateLeftThird   Template = "left-third"
	TemplateCenterThird Template = "center-third"
	TemplateRightThird  Template = "right-third"
)

type regionFunc func(area, current platform.Rect) platform.Rect

var templates = map[Template]regionFunc{
	TemplateLeftHalf: func(a, _ platform.Rect) platform.Rect {
		return platform.Rect{X: a.X, Y: a.Y, Width: a.Width / 2, Height: a.Height}
	},
	TemplateRightHalf: func(a, _ platform.Rect) platform.Rect {
		w := a.Width / 2
		return platform.Rect{X: a.X + w, Y: a.Y, Width: a.Width - w, Height: a.Height}
	},
	TemplateTopHalf: func(a, _ platform.Rect) platform.Rect {
		return platform.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height / 2}
	},
	TemplateBottomHalf: func(a, _ platform.Rect) platform.Rect {
		h := a.Height / 2
		return platform.Rect{X: a.X, Y: a.Y + h, Width: a.Width, Height: a.Height - h}
	},
	TemplateTopLeft: func(a, _ platform.Rect) platform.Rect {
		return platform.Rect{X: a.X, Y: a.Y, Width: a.Width / 2, Height: a.Height / 2}
	},
	TemplateTopRight: func(a, _ platform.Rect) platform.Rect {
		w := a.Width / 2
		return platform.Rect{X: a.X + w, Y: a.Y, Width: a.Width - w, Height: a.Height / 2}
	},
	TemplateBottomLeft: func(a, _ platform.Rect) platform.Rect {
		h := a.Height / 2
		return platform.Rect{X: a.X, Y: a.Y + h, Width: a.Width / 2, Height: a.Height - h}
	},
	TemplateBottomRight: func(a, _ platform.Rect) platform.Rect {
		w, h := a.Width/2, a.Height/2
		return platform.Rect{X: a.X + w, Y: a.Y + h, Width: a.Width - w, Height: a.Height - h}
	},
	TemplateMaximize: func(a, _ platform.Rect) platform.Rect {
		return a
	},
	TemplateCenter: func(a, cur platform.Rect) platform.Rect {
		w, h := min(cur.Width, a.Width), min(cur.Height, a.Height)
		return platform.Rect{X: a.X + (a.Width-w)/2, Y: a.Y + (a.Height-h)/2, Width: w, Height: h}
	},
	TemplateLeftThird: func(a, _ platform.Rect) platform.Rect {
		return platform.Rect{X: a.X, Y: a.Y, Width: a.Width / 3, Height: a.Height}
	},
	TemplateCenterThird: func(a, _ platform.Rect) platform.Rect {
		w := a.Width / 3
		return platform.Rect{X: a.X + w, Y: a.Y, Width: w, Height: a.Height}
	},
	TemplateRightThird: func(a, _ platform.Rect) platform.Rect {
		w := a.Width / 3
		return platform.Rect{X: a.X + 2*w, Y: a.Y, Width: a.Width - 2*w, Height: a.Height}
	},
}

// IsTemplate reports whether name is a known template.
func IsTemplate(name string) bool {
	_, ok := templates[Template(name)]
	return ok
}

// TemplateNames returns the known template names, sorted.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for t := range templates {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// TemplateFrame returns the frame template t occupies in area. current is
// the window's present frame; only "center" uses it.
func TemplateFrame(t Template, area, current platform.Rect) (platform.Rect, error) {
	fn, ok := templates[t]
	if !ok {
		return platform.Rect{}, fmt.Errorf("unknown template %q", t)
	}
	return clampSize(fn(area, current)), nil
}

func clampSize(r platform.Rect) platform.Rect {
	r.Width = max(1, r.Width)
	r.Height = max(1, r.Height)
	return r
}
