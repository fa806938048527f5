// Package filter selects paths from the path model by bounding geometry and
// stroke color.
package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dolkensp/pdfix/pkg/geom"
	"github.com/dolkensp/pdfix/pkg/path"
)

// ErrInvalidFilterSpec indicates a malformed bounding-box or color filter
// specification. It is returned before any document state is touched.
var ErrInvalidFilterSpec = errors.New("invalid filter spec")

// Filter holds up to two independent predicates over paths. A nil predicate
// passes everything, so the zero Filter is the identity.
type Filter struct {
	Bounds      *geom.Rect
	StrokeColor *geom.Color

	// Tolerance is the per-channel tolerance for the stroke color predicate.
	// Zero means geom.DefaultColorTolerance.
	Tolerance float64
}

// MatchesBounds reports whether the path's bounding rectangle exists and
// overlaps the filter rectangle. Paths with no bounding geometry never match.
func (f Filter) MatchesBounds(p path.Path) bool {
	if f.Bounds == nil {
		return true
	}
	b := p.Bounds()
	if b == nil {
		return false
	}
	return b.Intersects(*f.Bounds)
}

// MatchesStrokeColor reports whether the path is stroked and its resolved
// stroke color is within tolerance of the target on every channel. Paths with
// no resolvable stroke color never match.
func (f Filter) MatchesStrokeColor(p path.Path) bool {
	if f.StrokeColor == nil {
		return true
	}
	if !p.IsStroked || p.StrokeColor == nil {
		return false
	}
	tol := f.Tolerance
	if tol == 0 {
		tol = geom.DefaultColorTolerance
	}
	return p.StrokeColor.Matches(*f.StrokeColor, tol)
}

// Matches applies the bounding predicate first (geometry only, cheap), then
// the color predicate.
func (f Filter) Matches(p path.Path) bool {
	return f.MatchesBounds(p) && f.MatchesStrokeColor(p)
}

// Apply returns the paths matching the filter, preserving their build-time
// indices and order.
func (f Filter) Apply(paths []path.Path) []path.Path {
	var out []path.Path
	for _, p := range paths {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// ParseBBox parses a bounding filter of the form "minX,minY,maxX,maxY". The
// four values must be ordered: maxX > minX and maxY > minY.
func ParseBBox(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("%w: bounding box %q must have four comma-separated values", ErrInvalidFilterSpec, s)
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("%w: bounding box value %q is not a number", ErrInvalidFilterSpec, part)
		}
		vals[i] = v
	}
	minX, minY, maxX, maxY := vals[0], vals[1], vals[2], vals[3]
	if maxX <= minX || maxY <= minY {
		return geom.Rect{}, fmt.Errorf("%w: bounding box %q must satisfy maxX > minX and maxY > minY", ErrInvalidFilterSpec, s)
	}
	return geom.Rect{Left: minX, Bottom: minY, Width: maxX - minX, Height: maxY - minY}, nil
}

// ParseColor parses a "#RGB" or "#RRGGBB" stroke color filter.
func ParseColor(s string) (geom.Color, error) {
	c, err := geom.ParseHexColor(s)
	if err != nil {
		return geom.Color{}, fmt.Errorf("%w: %v", ErrInvalidFilterSpec, err)
	}
	return c, nil
}
