package movemode

import "github.com/1broseidon/moves/internal/platform"

// AxisEdge selects the low or high edge of an axis.
type AxisEdge int

const (
	EdgeMin AxisEdge = iota
	EdgeMax
)

// Corner is one of the four window corners.
type Corner struct {
	Horizontal AxisEdge
	Vertical   AxisEdge
}

var (
	CornerTopLeft     = Corner{Horizontal: EdgeMin, Vertical: EdgeMin}
	CornerTopRight    = Corner{Horizontal: EdgeMax, Vertical: EdgeMin}
	CornerBottomLeft  = Corner{Horizontal: EdgeMin, Vertical: EdgeMax}
	CornerBottomRight = Corner{Horizontal: EdgeMax, Vertical: EdgeMax}
)

// String returns the corner name used in logs.
func (c Corner) String() string {
	switch c {
	case CornerTopLeft:
		return "top-left"
	case CornerTopRight:
		return "top-right"
	case CornerBottomLeft:
		return "bottom-left"
	case CornerBottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// point returns the coordinates of corner c on frame.
func (c Corner) point(frame platform.Rect) platform.Point {
	p := platform.Point{X: frame.X, Y: frame.Y}
	if c.Horizontal == EdgeMax {
		p.X += frame.Width
	}
	if c.Vertical == EdgeMax {
		p.Y += frame.Height
	}
	return p
}

// ResolveCorner returns the corner of frame nearest to p by squared
// Euclidean distance. Ties go to the earlier of top-left, top-right,
// bottom-left, bottom-right.
func ResolveCorner(frame platform.Rect, p platform.Point) Corner {
	candidates := [...]Corner{CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight}

	best := candidates[0]
	bestDist := distanceSquared(best.point(frame), p)
	for _, c := range candidates[1:] {
		if d := distanceSquared(c.point(frame), p); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func distanceSquared(a, b platform.Point) int64 {
	dx := int64(a.X - b.X)
	dy := int64(a.Y - b.Y)
	return dx*dx + dy*dy
}
