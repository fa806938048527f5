package pdf

import (
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/dolkensp/pdfix/pkg/geom"
	"github.com/dolkensp/pdfix/pkg/operator"
	"github.com/dolkensp/pdfix/pkg/path"
	"github.com/dolkensp/pdfix/pkg/surgery"
)

// ErrPageOutOfRange indicates a requested page number outside the document's
// actual page range.
var ErrPageOutOfRange = errors.New("page out of range")

// Page is one page of an open document: its geometry, its decoded content
// stream, and the handles needed to write edited content back.
type Page struct {
	ctx        *model.Context
	number     int
	pageDict   types.Dict
	width      float64
	height     float64
	rotation   int
	content    []byte
	streamRefs []*types.StreamDict
}

func newPage(ctx *model.Context, number int) (*Page, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}
	if number < 1 || number > ctx.PageCount {
		return nil, fmt.Errorf("%w: page number %d not in [1, %d]", ErrPageOutOfRange, number, ctx.PageCount)
	}

	pageDict, _, attrs, err := ctx.PageDict(number, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get page dict: %w", err)
	}

	p := &Page{
		ctx:      ctx,
		number:   number,
		pageDict: pageDict,
		// Default US Letter when the media box is missing.
		width:  612,
		height: 792,
	}
	if attrs != nil && attrs.MediaBox != nil {
		p.width = attrs.MediaBox.Width()
		p.height = attrs.MediaBox.Height()
	}
	if attrs != nil {
		p.rotation = attrs.Rotate
	} else if rot := pageDict["Rotate"]; rot != nil {
		if rotInt, ok := rot.(types.Integer); ok {
			p.rotation = int(rotInt)
		}
	}

	if err := p.extractContent(); err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}
	return p, nil
}

// extractContent decodes the page's content stream(s) and records the stream
// dictionaries so edited content can be written back to them.
func (p *Page) extractContent() error {
	contents := p.pageDict["Contents"]
	if contents == nil {
		return nil
	}

	collect := func(ref types.IndirectRef) error {
		sd, _, err := p.ctx.DereferenceStreamDict(ref)
		if err != nil {
			return fmt.Errorf("failed to dereference content stream: %w", err)
		}
		if sd == nil {
			return nil
		}
		if err := sd.Decode(); err != nil {
			return fmt.Errorf("failed to decode content stream: %w", err)
		}
		p.streamRefs = append(p.streamRefs, sd)
		p.content = append(p.content, sd.Content...)
		p.content = append(p.content, '\n')
		return nil
	}

	switch v := contents.(type) {
	case types.IndirectRef:
		return collect(v)
	case *types.IndirectRef:
		return collect(*v)
	case types.Array:
		for _, item := range v {
			switch ref := item.(type) {
			case types.IndirectRef:
				if err := collect(ref); err != nil {
					return err
				}
			case *types.IndirectRef:
				if err := collect(*ref); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Number returns the page number (1-based).
func (p *Page) Number() int {
	return p.number
}

// Width returns the page width in points.
func (p *Page) Width() float64 {
	return p.width
}

// Height returns the page height in points.
func (p *Page) Height() float64 {
	return p.height
}

// Rotation returns the page rotation in degrees (0, 90, 180 or 270).
func (p *Page) Rotation() int {
	return p.rotation
}

// Bounds returns the page's media box as a rectangle at the origin.
func (p *Page) Bounds() geom.Rect {
	return geom.Rect{Width: p.width, Height: p.height}
}

// Operators returns the page's content as ordered operator records.
func (p *Page) Operators() []operator.Record {
	return operator.Lex(p.content)
}

// Paths builds the page's structured path model. The model is a fresh
// read-only projection on every call.
func (p *Page) Paths() []path.Path {
	return path.Build(p.Operators())
}

// ReplaceContent swaps the page's content stream for the given operator
// sequence. With multiple content streams, the first receives the full edited
// content and the rest are blanked, preserving the page's object structure.
func (p *Page) ReplaceContent(records []operator.Record) error {
	if len(p.streamRefs) == 0 {
		return fmt.Errorf("page %d has no content stream to replace", p.number)
	}
	encoded := operator.Encode(records)
	if err := writeStream(p.streamRefs[0], encoded); err != nil {
		return fmt.Errorf("failed to replace content of page %d: %w", p.number, err)
	}
	for _, sd := range p.streamRefs[1:] {
		if err := writeStream(sd, nil); err != nil {
			return fmt.Errorf("failed to blank content stream of page %d: %w", p.number, err)
		}
	}
	p.content = append(encoded, '\n')
	return nil
}

// RemovePath excises the path with the given 0-based index from the page's
// content. An index outside the page's path range leaves the page unchanged;
// per-path failures never abort the document.
func (p *Page) RemovePath(index int) error {
	records := p.Operators()
	return p.ReplaceContent(surgery.RemovePath(records, index))
}

// DrawLine appends a stroked line to the page content. The line's endpoints
// are given in the page's visual frame and transformed by the page rotation
// before being emitted.
func (p *Page) DrawLine(line surgery.Line) error {
	rotated := surgery.RotateLine(line, p.rotation, p.width, p.height)
	records := append(p.Operators(), lineRecords(rotated)...)
	return p.ReplaceContent(records)
}

// lineRecords renders an overlay line as operator records, bracketed by a
// save/restore pair so the overlay state never leaks into the page.
func lineRecords(l surgery.Line) []operator.Record {
	return []operator.Record{
		{Operator: "q"},
		{Operands: []string{formatCoord(l.Width)}, Operator: "w"},
		{Operands: []string{
			formatCoord(l.Color.R), formatCoord(l.Color.G), formatCoord(l.Color.B),
		}, Operator: "RG"},
		{Operands: []string{formatCoord(l.From.X), formatCoord(l.From.Y)}, Operator: "m"},
		{Operands: []string{formatCoord(l.To.X), formatCoord(l.To.Y)}, Operator: "l"},
		{Operator: "S"},
		{Operator: "Q"},
	}
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// writeStream re-encodes a stream dictionary with new decoded content.
func writeStream(sd *types.StreamDict, content []byte) error {
	sd.Content = content
	sd.Raw = nil
	if err := sd.Encode(); err != nil {
		return err
	}
	sd.Dict["Length"] = types.Integer(len(sd.Raw))
	return nil
}
