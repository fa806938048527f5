// Package operator models a page content stream as an ordered sequence of
// operator records and classifies operator mnemonics into the categories the
// path builder and the surgery engine both depend on.
package operator

// Kind is the category of a content stream operator.
type Kind int

const (
	// KindOther covers every operator outside the three path-relevant
	// categories (text, XObjects, marked content, ...). Other operators are
	// never buffered specially.
	KindOther Kind = iota
	// KindState sets graphics state (color, line style, transform, alpha)
	// without drawing or ending a path.
	KindState
	// KindPathConstruction adds geometry to the path being built.
	KindPathConstruction
	// KindPathTerminating ends the current path by painting it or
	// finalizing it as a clip region.
	KindPathTerminating
)

// kinds is the single source of truth for operator classification, used
// identically by path extraction and by stream surgery. An unrecognized but
// path-relevant operator would silently corrupt both, so the table must stay
// exhaustive over PDF 1.7 table 4.1/4.9/4.10 operators.
var kinds = map[string]Kind{
	// Path construction
	"m":  KindPathConstruction, // moveto
	"l":  KindPathConstruction, // lineto
	"c":  KindPathConstruction, // curveto, both control points explicit
	"v":  KindPathConstruction, // curveto, first control point implicit
	"y":  KindPathConstruction, // curveto, second control point = endpoint
	"h":  KindPathConstruction, // closepath
	"re": KindPathConstruction, // rectangle shorthand

	// Path painting / clipping
	"S":  KindPathTerminating, // stroke
	"s":  KindPathTerminating, // close and stroke
	"f":  KindPathTerminating, // fill, nonzero winding
	"F":  KindPathTerminating, // fill, legacy alias
	"f*": KindPathTerminating, // fill, even-odd
	"B":  KindPathTerminating, // fill and stroke, nonzero
	"B*": KindPathTerminating, // fill and stroke, even-odd
	"b":  KindPathTerminating, // close, fill and stroke, nonzero
	"b*": KindPathTerminating, // close, fill and stroke, even-odd
	"n":  KindPathTerminating, // end path, no paint
	"W":  KindPathTerminating, // clip, nonzero
	"W*": KindPathTerminating, // clip, even-odd

	// Graphics state
	"q":   KindState, // save state
	"Q":   KindState, // restore state
	"cm":  KindState, // concat transform matrix
	"w":   KindState, // line width
	"J":   KindState, // line cap
	"j":   KindState, // line join
	"M":   KindState, // miter limit
	"d":   KindState, // dash pattern
	"ri":  KindState, // rendering intent
	"i":   KindState, // flatness
	"gs":  KindState, // extended graphics state
	"CS":  KindState, // stroke color space
	"cs":  KindState, // fill color space
	"SC":  KindState, // stroke color
	"SCN": KindState, // stroke color, pattern/separation form
	"sc":  KindState, // fill color
	"scn": KindState, // fill color, pattern/separation form
	"G":   KindState, // stroke gray
	"g":   KindState, // fill gray
	"RG":  KindState, // stroke RGB
	"rg":  KindState, // fill RGB
	"K":   KindState, // stroke CMYK
	"k":   KindState, // fill CMYK
	"CA":  KindState, // stroke alpha
	"ca":  KindState, // fill alpha
}

// Classify returns the category of an operator mnemonic. Unknown mnemonics
// classify as KindOther.
func Classify(mnemonic string) Kind {
	return kinds[mnemonic]
}
