package surgery

import (
	"github.com/dolkensp/pdfix/pkg/geom"
	"github.com/dolkensp/pdfix/pkg/path"
)

// Line is replacement overlay geometry drawn on top of an edited page.
// Coordinates are given in the page's visual (rotated) frame.
type Line struct {
	From  geom.Point
	To    geom.Point
	Color geom.Color
	Width float64
}

// RotatePoint maps a point from a page's visual frame back to its unrotated
// coordinate system, for a page displayed with the given rotation (0, 90, 180
// or 270 degrees clockwise). Width and height are the page's unrotated
// dimensions; 90 and 270 swap axes against them, 180 flips both. Any other
// rotation value passes the point through unchanged.
func RotatePoint(p geom.Point, rotation int, width, height float64) geom.Point {
	switch normalizeRotation(rotation) {
	case 90:
		return geom.Point{X: width - p.Y, Y: p.X}
	case 180:
		return geom.Point{X: width - p.X, Y: height - p.Y}
	case 270:
		return geom.Point{X: p.Y, Y: height - p.X}
	}
	return p
}

// RotateLine applies RotatePoint to both endpoints of an overlay line.
func RotateLine(l Line, rotation int, width, height float64) Line {
	l.From = RotatePoint(l.From, rotation, width, height)
	l.To = RotatePoint(l.To, rotation, width, height)
	return l
}

func normalizeRotation(rotation int) int {
	r := rotation % 360
	if r < 0 {
		r += 360
	}
	return r
}

// AdjustEndpoints rewrites a subpath command list so that its leading
// (MoveTo, LineTo) pair runs from newStart to newEnd, leaving all subsequent
// commands untouched. If the list does not begin with that pattern the input
// is returned unchanged; a non-matching shape is a no-op, not an error.
func AdjustEndpoints(cmds []path.Command, newStart, newEnd geom.Point) []path.Command {
	if len(cmds) < 2 || cmds[0].Kind != path.KindMoveTo || cmds[1].Kind != path.KindLineTo {
		return cmds
	}
	out := make([]path.Command, len(cmds))
	copy(out, cmds)
	out[0] = path.MoveTo(newStart)
	out[1] = path.LineTo(newStart, newEnd)
	return out
}
