// Package pdfix inspects and selectively edits the vector-graphics content of
// PDF pages: it builds a structured model of each page's drawing paths,
// filters them by geometry and stroke color, and can remove or replace a
// single path's operators inside the original content stream while leaving
// every other operator untouched and in original order.
package pdfix

import (
	"github.com/dolkensp/pdfix/pkg/filter"
	"github.com/dolkensp/pdfix/pkg/geom"
	"github.com/dolkensp/pdfix/pkg/operator"
	"github.com/dolkensp/pdfix/pkg/path"
	"github.com/dolkensp/pdfix/pkg/pdf"
	"github.com/dolkensp/pdfix/pkg/surgery"
)

// Re-export the core types for the public API.
type (
	Document = pdf.Document
	Page     = pdf.Page
	Metadata = pdf.Metadata

	Rect  = geom.Rect
	Point = geom.Point
	Color = geom.Color

	Path    = path.Path
	Subpath = path.Subpath
	Command = path.Command

	Record = operator.Record
	Filter = filter.Filter
	Line   = surgery.Line
)

// Re-export the sentinel errors callers branch on.
var (
	ErrInvalidFilterSpec = filter.ErrInvalidFilterSpec
	ErrPageOutOfRange    = pdf.ErrPageOutOfRange
)

// Open opens a PDF file.
func Open(filepath string) (*Document, error) {
	return pdf.Open(filepath)
}

// OpenWithPassword opens a password-protected PDF file.
func OpenWithPassword(filepath, password string) (*Document, error) {
	return pdf.OpenWithPassword(filepath, password)
}

// ParseBBox parses a "minX,minY,maxX,maxY" bounding filter specification.
func ParseBBox(s string) (Rect, error) {
	return filter.ParseBBox(s)
}

// ParseColor parses a "#RGB" or "#RRGGBB" color filter specification.
func ParseColor(s string) (Color, error) {
	return filter.ParseColor(s)
}

// RemovePath returns a copy of an operator stream with the target path (and
// the state operators queued immediately before it) excised.
func RemovePath(records []Record, target int) []Record {
	return surgery.RemovePath(records, target)
}
