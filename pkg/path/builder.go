package path

import (
	"strconv"
	"strings"

	"github.com/dolkensp/pdfix/pkg/geom"
	"github.com/dolkensp/pdfix/pkg/operator"
)

// graphicsState carries the paint attributes a path captures when it is
// terminated. Colors are nil while unresolved (pattern or separation paint).
type graphicsState struct {
	strokeColor *geom.Color
	fillColor   *geom.Color
	lineWidth   float64
	lineCap     int
	lineJoin    int
	dashPattern string
}

func defaultGraphicsState() graphicsState {
	black := geom.Color{}
	return graphicsState{
		strokeColor: &black,
		fillColor:   &black,
		lineWidth:   1,
	}
}

// builder is the single-pass state machine behind Build. All of its state is
// scoped to one page and discarded when the scan completes.
type builder struct {
	paths []Path

	state graphicsState
	stack []graphicsState

	subpaths []Subpath
	commands []Command

	current      geom.Point
	subpathStart geom.Point
	hasCurrent   bool
	constructed  bool
}

// Build scans a page's operator records left to right and returns its ordered
// path sequence. The result is a fresh read-only projection: it is rebuilt on
// every call and never cached. Malformed streams degrade to empty or partial
// subpaths; they never abort the page.
func Build(records []operator.Record) []Path {
	b := &builder{state: defaultGraphicsState()}
	for _, rec := range records {
		switch rec.Kind() {
		case operator.KindState:
			b.applyState(rec)
		case operator.KindPathConstruction:
			b.applyConstruction(rec)
		case operator.KindPathTerminating:
			b.terminate(rec.Operator)
		}
	}
	return b.paths
}

func (b *builder) applyState(rec operator.Record) {
	ops := rec.Operands
	switch rec.Operator {
	case "q":
		b.stack = append(b.stack, b.state)
	case "Q":
		if n := len(b.stack); n > 0 {
			b.state = b.stack[n-1]
			b.stack = b.stack[:n-1]
		}
	case "w":
		if len(ops) >= 1 {
			b.state.lineWidth = parseFloat(ops[0])
		}
	case "J":
		if len(ops) >= 1 {
			b.state.lineCap = int(parseFloat(ops[0]))
		}
	case "j":
		if len(ops) >= 1 {
			b.state.lineJoin = int(parseFloat(ops[0]))
		}
	case "d":
		b.state.dashPattern = strings.Join(ops, " ")
	case "G":
		b.state.strokeColor = grayColor(ops)
	case "g":
		b.state.fillColor = grayColor(ops)
	case "RG":
		b.state.strokeColor = rgbColor(ops)
	case "rg":
		b.state.fillColor = rgbColor(ops)
	case "K":
		b.state.strokeColor = cmykColor(ops)
	case "k":
		b.state.fillColor = cmykColor(ops)
	case "SC", "SCN":
		b.state.strokeColor = componentColor(ops)
	case "sc", "scn":
		b.state.fillColor = componentColor(ops)
	case "CS":
		b.state.strokeColor = colorSpaceDefault(ops)
	case "cs":
		b.state.fillColor = colorSpaceDefault(ops)
	}
}

func (b *builder) applyConstruction(rec operator.Record) {
	ops := rec.Operands
	switch rec.Operator {
	case "m":
		if len(ops) < 2 {
			return
		}
		b.moveTo(geom.Point{X: parseFloat(ops[0]), Y: parseFloat(ops[1])})
	case "l":
		if len(ops) < 2 {
			return
		}
		b.lineTo(geom.Point{X: parseFloat(ops[0]), Y: parseFloat(ops[1])})
	case "c":
		if len(ops) < 6 {
			return
		}
		c1 := geom.Point{X: parseFloat(ops[0]), Y: parseFloat(ops[1])}
		c2 := geom.Point{X: parseFloat(ops[2]), Y: parseFloat(ops[3])}
		to := geom.Point{X: parseFloat(ops[4]), Y: parseFloat(ops[5])}
		b.curveTo(c1, c2, to)
	case "v":
		if len(ops) < 4 {
			return
		}
		// First control point coincides with the current point.
		c2 := geom.Point{X: parseFloat(ops[0]), Y: parseFloat(ops[1])}
		to := geom.Point{X: parseFloat(ops[2]), Y: parseFloat(ops[3])}
		b.curveTo(b.current, c2, to)
	case "y":
		if len(ops) < 4 {
			return
		}
		// Second control point coincides with the endpoint.
		c1 := geom.Point{X: parseFloat(ops[0]), Y: parseFloat(ops[1])}
		to := geom.Point{X: parseFloat(ops[2]), Y: parseFloat(ops[3])}
		b.curveTo(c1, to, to)
	case "h":
		b.closeSubpath()
	case "re":
		if len(ops) < 4 {
			return
		}
		x, y := parseFloat(ops[0]), parseFloat(ops[1])
		w, h := parseFloat(ops[2]), parseFloat(ops[3])
		b.moveTo(geom.Point{X: x, Y: y})
		b.lineTo(geom.Point{X: x + w, Y: y})
		b.lineTo(geom.Point{X: x + w, Y: y + h})
		b.lineTo(geom.Point{X: x, Y: y + h})
		b.closeSubpath()
		b.current = geom.Point{X: x, Y: y}
	}
}

func (b *builder) moveTo(p geom.Point) {
	b.flushSubpath()
	b.commands = append(b.commands, MoveTo(p))
	b.current = p
	b.subpathStart = p
	b.hasCurrent = true
	b.constructed = true
}

func (b *builder) lineTo(p geom.Point) {
	if !b.hasCurrent {
		b.moveTo(p)
		return
	}
	b.commands = append(b.commands, LineTo(b.current, p))
	b.current = p
	b.constructed = true
}

func (b *builder) curveTo(c1, c2, to geom.Point) {
	if !b.hasCurrent {
		b.moveTo(c1)
	}
	b.commands = append(b.commands, CurveTo(b.current, to, c1, c2))
	b.current = to
	b.constructed = true
}

func (b *builder) closeSubpath() {
	if !b.hasCurrent {
		return
	}
	b.commands = append(b.commands, ClosePath())
	b.current = b.subpathStart
	b.constructed = true
}

// flushSubpath moves the in-progress command list into the subpath list.
func (b *builder) flushSubpath() {
	if len(b.commands) > 0 {
		b.subpaths = append(b.subpaths, Subpath{Commands: b.commands})
		b.commands = nil
	}
}

// terminate closes the current path under the given paint operator. A
// terminator with no construction since the last boundary produces no path,
// which keeps the builder's enumeration parallel to the surgery engine's.
func (b *builder) terminate(op string) {
	if !b.constructed {
		b.resetPath()
		return
	}
	switch op {
	case "s", "b", "b*":
		// Close-first paint variants.
		b.closeSubpath()
	}
	b.flushSubpath()

	p := Path{
		Index:       len(b.paths),
		Subpaths:    b.subpaths,
		DashPattern: b.state.dashPattern,
		LineCap:     b.state.lineCap,
		LineJoin:    b.state.lineJoin,
	}
	switch op {
	case "S", "s":
		p.IsStroked = true
	case "f", "F", "f*":
		p.IsFilled = true
	case "B", "B*", "b", "b*":
		p.IsFilled = true
		p.IsStroked = true
	case "W", "W*":
		p.IsClipping = true
	}
	if p.IsStroked {
		p.StrokeColor = copyColor(b.state.strokeColor)
		width := b.state.lineWidth
		p.LineWidth = &width
	}
	if p.IsFilled {
		p.FillColor = copyColor(b.state.fillColor)
	}

	b.paths = append(b.paths, p)
	b.resetPath()
}

func (b *builder) resetPath() {
	b.subpaths = nil
	b.commands = nil
	b.hasCurrent = false
	b.constructed = false
}

func copyColor(c *geom.Color) *geom.Color {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func grayColor(ops []string) *geom.Color {
	if len(ops) < 1 {
		return nil
	}
	v := parseFloat(ops[0])
	return &geom.Color{R: v, G: v, B: v}
}

func rgbColor(ops []string) *geom.Color {
	if len(ops) < 3 {
		return nil
	}
	return &geom.Color{
		R: parseFloat(ops[0]),
		G: parseFloat(ops[1]),
		B: parseFloat(ops[2]),
	}
}

func cmykColor(ops []string) *geom.Color {
	if len(ops) < 4 {
		return nil
	}
	c, m := parseFloat(ops[0]), parseFloat(ops[1])
	y, k := parseFloat(ops[2]), parseFloat(ops[3])
	return &geom.Color{
		R: (1 - c) * (1 - k),
		G: (1 - m) * (1 - k),
		B: (1 - y) * (1 - k),
	}
}

// componentColor resolves SC/SCN operands by arity. A trailing pattern or
// separation name makes the color unresolvable, reported as nil.
func componentColor(ops []string) *geom.Color {
	for _, op := range ops {
		if strings.HasPrefix(op, "/") {
			return nil
		}
	}
	switch len(ops) {
	case 1:
		return grayColor(ops)
	case 3:
		return rgbColor(ops)
	case 4:
		return cmykColor(ops)
	}
	return nil
}

// colorSpaceDefault yields the initial color for a freshly selected color
// space: black for the device spaces, unresolved for patterns.
func colorSpaceDefault(ops []string) *geom.Color {
	if len(ops) >= 1 && ops[0] == "/Pattern" {
		return nil
	}
	return &geom.Color{}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
