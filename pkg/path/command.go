// Package path builds a structured model of the vector paths on a page from
// its ordered operator records.
package path

import (
	"fmt"
	"math"

	"github.com/dolkensp/pdfix/pkg/geom"
)

// CommandKind identifies one of the four path command shapes. The set is
// closed: the content stream grammar only ever produces these four.
type CommandKind int

const (
	// KindMoveTo starts a new subpath at a point.
	KindMoveTo CommandKind = iota
	// KindLineTo draws a straight segment between two points.
	KindLineTo
	// KindCurveTo draws a cubic Bézier segment.
	KindCurveTo
	// KindClosePath closes the current subpath.
	KindClosePath
)

// String returns the kind's report tag.
func (k CommandKind) String() string {
	switch k {
	case KindMoveTo:
		return "moveto"
	case KindLineTo:
		return "lineto"
	case KindCurveTo:
		return "curveto"
	case KindClosePath:
		return "closepath"
	}
	return "unknown"
}

// Command is one path construction step. Which fields are meaningful depends
// on Kind: MoveTo uses To; LineTo uses From and To; CurveTo uses From, To,
// Control1 and Control2. Commands are immutable once built.
type Command struct {
	Kind     CommandKind
	From     geom.Point
	To       geom.Point
	Control1 geom.Point
	Control2 geom.Point
}

// MoveTo creates a moveto command.
func MoveTo(p geom.Point) Command {
	return Command{Kind: KindMoveTo, To: p}
}

// LineTo creates a lineto command from one point to another.
func LineTo(from, to geom.Point) Command {
	return Command{Kind: KindLineTo, From: from, To: to}
}

// CurveTo creates a cubic Bézier command.
func CurveTo(from, to, c1, c2 geom.Point) Command {
	return Command{Kind: KindCurveTo, From: from, To: to, Control1: c1, Control2: c2}
}

// ClosePath creates a closepath command.
func ClosePath() Command {
	return Command{Kind: KindClosePath}
}

// Summary returns a human-readable one-line description for reports.
func (c Command) Summary() string {
	switch c.Kind {
	case KindMoveTo:
		return fmt.Sprintf("move to (%.2f, %.2f)", c.To.X, c.To.Y)
	case KindLineTo:
		return fmt.Sprintf("line from (%.2f, %.2f) to (%.2f, %.2f)",
			c.From.X, c.From.Y, c.To.X, c.To.Y)
	case KindCurveTo:
		return fmt.Sprintf("curve from (%.2f, %.2f) to (%.2f, %.2f)",
			c.From.X, c.From.Y, c.To.X, c.To.Y)
	case KindClosePath:
		return "close subpath"
	}
	return "unknown"
}

// points returns every point the command contributes to bounding geometry.
// Curve control points are included: control-polygon bounds are an accepted
// over-approximation of the exact Bézier extent.
func (c Command) points() []geom.Point {
	switch c.Kind {
	case KindMoveTo:
		return []geom.Point{c.To}
	case KindLineTo:
		return []geom.Point{c.From, c.To}
	case KindCurveTo:
		return []geom.Point{c.From, c.Control1, c.Control2, c.To}
	}
	return nil
}

// Subpath is one contiguous moveto-to-close run of commands within a path.
type Subpath struct {
	Commands []Command
}

// IsClosed reports whether the subpath ends with a closepath command.
func (s Subpath) IsClosed() bool {
	n := len(s.Commands)
	return n > 0 && s.Commands[n-1].Kind == KindClosePath
}

// Bounds returns the bounding rectangle of the subpath's command points, or
// nil if the subpath is empty.
func (s Subpath) Bounds() *geom.Rect {
	var pts []geom.Point
	for _, cmd := range s.Commands {
		pts = append(pts, cmd.points()...)
	}
	return geom.BoundsOf(pts)
}

// rectangleTolerance bounds how far a corner may deviate from exact
// axis alignment before the subpath stops counting as a rectangle.
const rectangleTolerance = 1e-6

// IsRectangle reports whether the subpath is exactly an axis-aligned closed
// rectangle: a moveto, three linetos at right angles closed by a closepath,
// or four linetos where the last returns to the starting point. Sides must
// form two axis-aligned pairs, so a parallelogram or a rotated rectangle does
// not qualify.
func (s Subpath) IsRectangle() bool {
	cmds := s.Commands
	if len(cmds) < 4 || len(cmds) > 5 || cmds[0].Kind != KindMoveTo {
		return false
	}

	corners := []geom.Point{cmds[0].To}
	closed := false
	for _, cmd := range cmds[1:] {
		switch cmd.Kind {
		case KindLineTo:
			if closed {
				return false
			}
			corners = append(corners, cmd.To)
		case KindClosePath:
			closed = true
		default:
			return false
		}
	}

	switch len(corners) {
	case 4:
		// The closepath supplies the fourth side.
		if !closed {
			return false
		}
	case 5:
		// Fourth lineto must return to the start.
		if !pointsClose(corners[4], corners[0]) {
			return false
		}
		corners = corners[:4]
	default:
		return false
	}

	// Each side must be horizontal or vertical, alternating around the loop.
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[(i+1)%4]
		horizontal := math.Abs(a.Y-b.Y) <= rectangleTolerance
		vertical := math.Abs(a.X-b.X) <= rectangleTolerance
		if horizontal == vertical {
			// Diagonal side, or a degenerate zero-length one.
			return false
		}
		next, after := corners[(i+1)%4], corners[(i+2)%4]
		nextHorizontal := math.Abs(next.Y-after.Y) <= rectangleTolerance
		if horizontal == nextHorizontal {
			return false
		}
	}
	return true
}

func pointsClose(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) <= rectangleTolerance && math.Abs(a.Y-b.Y) <= rectangleTolerance
}

// Path is one painted, filled or clipping path on a page. Index is the path's
// 0-based position within the page's path sequence, assigned in document
// order at build time.
type Path struct {
	Index    int
	Subpaths []Subpath

	IsClipping bool
	IsFilled   bool
	IsStroked  bool

	// Nil when the path resolves no such attribute: a clip-only path has no
	// stroke color, a pattern fill has no flat RGB value.
	FillColor   *geom.Color
	StrokeColor *geom.Color
	LineWidth   *float64

	DashPattern string
	LineCap     int
	LineJoin    int
}

// Bounds returns the union of the subpath bounds, or nil if no subpath has
// bounding geometry.
func (p Path) Bounds() *geom.Rect {
	var total *geom.Rect
	for _, sp := range p.Subpaths {
		b := sp.Bounds()
		if b == nil {
			continue
		}
		if total == nil {
			r := *b
			total = &r
		} else {
			r := total.Union(*b)
			total = &r
		}
	}
	return total
}
