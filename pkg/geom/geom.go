// Package geom provides the geometric and color primitives shared by the
// path model, the filters and the surgery engine.
package geom

// Point represents a 2D point in PDF user space.
type Point struct {
	X, Y float64
}

// Rect represents an axis-aligned rectangle in PDF coordinates, where Bottom
// is the lower Y coordinate (PDF's Y axis grows upward).
type Rect struct {
	Left   float64
	Bottom float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from two opposite corners.
func NewRect(x0, y0, x1, y1 float64) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{Left: x0, Bottom: y0, Width: x1 - x0, Height: y1 - y0}
}

// Right returns the right edge of the rectangle.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Top returns the top edge of the rectangle.
func (r Rect) Top() float64 {
	return r.Bottom + r.Height
}

// Intersects reports whether r and other overlap. Rectangles that touch only
// at an edge or corner count as intersecting (closed-interval semantics).
func (r Rect) Intersects(other Rect) bool {
	return !(r.Left > other.Right() || r.Right() < other.Left ||
		r.Bottom > other.Top() || r.Top() < other.Bottom)
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	left := min(r.Left, other.Left)
	bottom := min(r.Bottom, other.Bottom)
	right := max(r.Right(), other.Right())
	top := max(r.Top(), other.Top())
	return Rect{Left: left, Bottom: bottom, Width: right - left, Height: top - bottom}
}

// BoundsOf returns the bounding rectangle of a set of points, or nil if the
// set is empty.
func BoundsOf(points []Point) *Rect {
	if len(points) == 0 {
		return nil
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	r := Rect{Left: minX, Bottom: minY, Width: maxX - minX, Height: maxY - minY}
	return &r
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
