package placement

import (
	"math"

	"github.com/1broseidon/moves/internal/platform"
)

// Position is the anchor a custom frame is aligned to.
type Position string

const (
	PositionTopLeft     Position = "topLeft"
	PositionTopRight    Position = "topRight"
	PositionBottomLeft  Position = "bottomLeft"
	PositionBottomRight Position = "bottomRight"
	PositionCenter      Position = "center"
	PositionLeft        Position = "left"
	PositionRight       Position = "right"
	PositionTop         Position = "top"
	PositionBottom      Position = "bottom"
)

var positions = map[Position]struct{}{
	PositionTopLeft: {}, PositionTopRight: {}, PositionBottomLeft: {}, PositionBottomRight: {},
	PositionCenter: {}, PositionLeft: {}, PositionRight: {}, PositionTop: {}, PositionBottom: {},
}

// ParsePosition returns the named position, or topLeft for anything unknown.
func ParsePosition(s string) Position {
	if _, ok := positions[Position(s)]; ok {
		return Position(s)
	}
	return PositionTopLeft
}

// Custom describes a frame relative to a display's usable area.
//
// Sizes: an absolute value > 0 wins over a relative one (a fraction of the
// area); when neither is set the window keeps its current size. Offsets: an
// absolute value wins whenever it is set, even to zero.
type Custom struct {
	Position        Position `json:"position,omitempty"`
	AbsoluteWidth   float64  `json:"absolute_width,omitempty"`
	RelativeWidth   float64  `json:"relative_width,omitempty"`
	AbsoluteHeight  float64  `json:"absolute_height,omitempty"`
	RelativeHeight  float64  `json:"relative_height,omitempty"`
	AbsoluteXOffset *float64 `json:"absolute_x_offset,omitempty"`
	RelativeXOffset *float64 `json:"relative_x_offset,omitempty"`
	AbsoluteYOffset *float64 `json:"absolute_y_offset,omitempty"`
	RelativeYOffset *float64 `json:"relative_y_offset,omitempty"`
}

// Frame returns the frame c describes inside area for a window currently at
// current.
func (c Custom) Frame(area, current platform.Rect) platform.Rect {
	w := dimension(c.AbsoluteWidth, c.RelativeWidth, area.Width, current.Width)
	h := dimension(c.AbsoluteHeight, c.RelativeHeight, area.Height, current.Height)
	dx := offset(c.AbsoluteXOffset, c.RelativeXOffset, area.Width)
	dy := offset(c.AbsoluteYOffset, c.RelativeYOffset, area.Height)

	x, y := area.X, area.Y
	right := area.X + area.Width - w
	bottom := area.Y + area.Height - h
	midX := area.X + (area.Width-w)/2
	midY := area.Y + (area.Height-h)/2

	switch ParsePosition(string(c.Position)) {
	case PositionTopRight:
		x = right
	case PositionBottomLeft:
		y = bottom
	case PositionBottomRight:
		x, y = right, bottom
	case PositionCenter:
		x, y = midX, midY
	case PositionLeft:
		y = midY
	case PositionRight:
		x, y = right, midY
	case PositionTop:
		x = midX
	case PositionBottom:
		x, y = midX, bottom
	}

	return clampSize(platform.Rect{X: x + dx, Y: y + dy, Width: w, Height: h})
}

func dimension(absolute, relative float64, area, current int) int {
	switch {
	case absolute > 0:
		return int(math.Round(absolute))
	case relative > 0:
		return int(math.Round(relative * float64(area)))
	default:
		return current
	}
}

func offset(absolute, relative *float64, area int) int {
	switch {
	case absolute != nil:
		return int(math.Round(*absolute))
	case relative != nil:
		return int(math.Round(*relative * float64(area)))
	default:
		return 0
	}
}
