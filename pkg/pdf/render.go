package pdf

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/dolkensp/pdfix/pkg/geom"
	"github.com/dolkensp/pdfix/pkg/path"
)

// RenderPreview rasterizes a page's extracted paths into an RGBA image at the
// given scale, for visual inspection of what the model found. Filled paths
// are painted with their fill color, stroked segments as thin quads in their
// stroke color; clipping paths are skipped. The output is a debugging aid,
// not a faithful renderer.
func (p *Page) RenderPreview(paths []path.Path, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(p.width * scale))
	h := int(math.Ceil(p.height * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	// White page background.
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	// PDF coordinates grow upward; image rows grow downward.
	flip := func(pt geom.Point) (float32, float32) {
		return float32(pt.X * scale), float32((p.height - pt.Y) * scale)
	}

	for _, pth := range paths {
		if pth.IsClipping {
			continue
		}
		if pth.IsFilled && pth.FillColor != nil {
			r := vector.NewRasterizer(w, h)
			for _, sp := range pth.Subpaths {
				rasterizeSubpath(r, sp, flip)
			}
			r.Draw(img, img.Bounds(), image.NewUniform(toRGBA(*pth.FillColor)), image.Point{})
		}
		if pth.IsStroked && pth.StrokeColor != nil {
			width := 1.0
			if pth.LineWidth != nil && *pth.LineWidth > 0 {
				width = *pth.LineWidth
			}
			strokePath(img, pth, width, toRGBA(*pth.StrokeColor), flip)
		}
	}
	return img
}

func rasterizeSubpath(r *vector.Rasterizer, sp path.Subpath, flip func(geom.Point) (float32, float32)) {
	for _, cmd := range sp.Commands {
		switch cmd.Kind {
		case path.KindMoveTo:
			x, y := flip(cmd.To)
			r.MoveTo(x, y)
		case path.KindLineTo:
			x, y := flip(cmd.To)
			r.LineTo(x, y)
		case path.KindCurveTo:
			bx, by := flip(cmd.Control1)
			cx, cy := flip(cmd.Control2)
			dx, dy := flip(cmd.To)
			r.CubeTo(bx, by, cx, cy, dx, dy)
		case path.KindClosePath:
			r.ClosePath()
		}
	}
	r.ClosePath()
}

// strokePath approximates stroking by filling one thin quad per segment.
// Curves are flattened to their chords, consistent with the model's
// control-polygon bounds.
func strokePath(img *image.RGBA, pth path.Path, width float64, col color.RGBA, flip func(geom.Point) (float32, float32)) {
	half := width / 2
	if half < 0.5 {
		half = 0.5
	}
	for _, sp := range pth.Subpaths {
		var start, current geom.Point
		for _, cmd := range sp.Commands {
			switch cmd.Kind {
			case path.KindMoveTo:
				start = cmd.To
				current = cmd.To
			case path.KindLineTo, path.KindCurveTo:
				fillSegment(img, current, cmd.To, half, col, flip)
				current = cmd.To
			case path.KindClosePath:
				fillSegment(img, current, start, half, col, flip)
				current = start
			}
		}
	}
}

func fillSegment(img *image.RGBA, from, to geom.Point, half float64, col color.RGBA, flip func(geom.Point) (float32, float32)) {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Unit normal, scaled to half the stroke width.
	nx, ny := -dy/length*half, dx/length*half

	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	x0, y0 := flip(geom.Point{X: from.X + nx, Y: from.Y + ny})
	x1, y1 := flip(geom.Point{X: to.X + nx, Y: to.Y + ny})
	x2, y2 := flip(geom.Point{X: to.X - nx, Y: to.Y - ny})
	x3, y3 := flip(geom.Point{X: from.X - nx, Y: from.Y - ny})
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.LineTo(x2, y2)
	r.LineTo(x3, y3)
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
}

func toRGBA(c geom.Color) color.RGBA {
	r, g, b := c.Bytes()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
