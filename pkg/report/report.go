// Package report projects the path model into the JSON and console shapes
// the CLI prints.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dolkensp/pdfix/pkg/geom"
	"github.com/dolkensp/pdfix/pkg/path"
)

// RectReport is a rectangle in report form.
type RectReport struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ColorReport is a color in report form, with both channel values and the
// hex string users feed back into the color filter.
type ColorReport struct {
	R   float64 `json:"r"`
	G   float64 `json:"g"`
	B   float64 `json:"b"`
	Hex string  `json:"hex"`
}

// CommandReport is one path command with a kind tag and a human-readable
// summary.
type CommandReport struct {
	Kind    string `json:"kind"`
	Summary string `json:"summary"`
}

// SubpathReport describes one subpath.
type SubpathReport struct {
	Closed    bool            `json:"closed"`
	Rectangle bool            `json:"rectangle"`
	Bounds    *RectReport     `json:"bounds,omitempty"`
	Commands  []CommandReport `json:"commands"`
}

// PathReport describes one path. Optional attributes are omitted when the
// path does not resolve them.
type PathReport struct {
	Index       int             `json:"index"`
	Bounds      *RectReport     `json:"bounds,omitempty"`
	Clipping    bool            `json:"clipping"`
	Filled      bool            `json:"filled"`
	Stroked     bool            `json:"stroked"`
	FillColor   *ColorReport    `json:"fillColor,omitempty"`
	StrokeColor *ColorReport    `json:"strokeColor,omitempty"`
	LineWidth   *float64        `json:"lineWidth,omitempty"`
	DashPattern string          `json:"dashPattern,omitempty"`
	LineCap     int             `json:"lineCap"`
	LineJoin    int             `json:"lineJoin"`
	Subpaths    []SubpathReport `json:"subpaths"`
}

// FromPaths converts the path model into report form.
func FromPaths(paths []path.Path) []PathReport {
	reports := make([]PathReport, 0, len(paths))
	for _, p := range paths {
		reports = append(reports, fromPath(p))
	}
	return reports
}

func fromPath(p path.Path) PathReport {
	r := PathReport{
		Index:       p.Index,
		Bounds:      rectReport(p.Bounds()),
		Clipping:    p.IsClipping,
		Filled:      p.IsFilled,
		Stroked:     p.IsStroked,
		FillColor:   colorReport(p.FillColor),
		StrokeColor: colorReport(p.StrokeColor),
		LineWidth:   p.LineWidth,
		DashPattern: p.DashPattern,
		LineCap:     p.LineCap,
		LineJoin:    p.LineJoin,
	}
	for _, sp := range p.Subpaths {
		spr := SubpathReport{
			Closed:    sp.IsClosed(),
			Rectangle: sp.IsRectangle(),
			Bounds:    rectReport(sp.Bounds()),
		}
		for _, cmd := range sp.Commands {
			spr.Commands = append(spr.Commands, CommandReport{
				Kind:    cmd.Kind.String(),
				Summary: cmd.Summary(),
			})
		}
		r.Subpaths = append(r.Subpaths, spr)
	}
	return r
}

func rectReport(r *geom.Rect) *RectReport {
	if r == nil {
		return nil
	}
	return &RectReport{Left: r.Left, Bottom: r.Bottom, Width: r.Width, Height: r.Height}
}

func colorReport(c *geom.Color) *ColorReport {
	if c == nil {
		return nil
	}
	return &ColorReport{R: c.R, G: c.G, B: c.B, Hex: c.Hex()}
}

// WriteJSON writes the paths as indented JSON.
func WriteJSON(w io.Writer, paths []path.Path) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromPaths(paths))
}

// WriteText writes a console listing of the paths.
func WriteText(w io.Writer, paths []path.Path) error {
	for _, r := range FromPaths(paths) {
		if _, err := fmt.Fprintf(w, "path %d:", r.Index); err != nil {
			return err
		}
		if r.Bounds != nil {
			fmt.Fprintf(w, " bounds=(%.2f, %.2f, %.2f, %.2f)",
				r.Bounds.Left, r.Bounds.Bottom,
				r.Bounds.Left+r.Bounds.Width, r.Bounds.Bottom+r.Bounds.Height)
		} else {
			fmt.Fprint(w, " bounds=none")
		}
		fmt.Fprintf(w, " clipping=%v filled=%v stroked=%v", r.Clipping, r.Filled, r.Stroked)
		if r.StrokeColor != nil {
			fmt.Fprintf(w, " stroke=%s", r.StrokeColor.Hex)
		}
		if r.FillColor != nil {
			fmt.Fprintf(w, " fill=%s", r.FillColor.Hex)
		}
		if r.LineWidth != nil {
			fmt.Fprintf(w, " width=%.2f", *r.LineWidth)
		}
		if r.DashPattern != "" {
			fmt.Fprintf(w, " dash=%q", r.DashPattern)
		}
		fmt.Fprintln(w)
		for i, sp := range r.Subpaths {
			fmt.Fprintf(w, "  subpath %d: closed=%v rectangle=%v commands=%d\n",
				i, sp.Closed, sp.Rectangle, len(sp.Commands))
			for _, cmd := range sp.Commands {
				fmt.Fprintf(w, "    %s\n", cmd.Summary)
			}
		}
	}
	return nil
}
