package filter

import (
	"errors"
	"testing"

	"github.com/dolkensp/pdfix/pkg/geom"
	"github.com/dolkensp/pdfix/pkg/operator"
	"github.com/dolkensp/pdfix/pkg/path"
)

func buildPaths(t *testing.T, stream string) []path.Path {
	t.Helper()
	return path.Build(operator.Lex([]byte(stream)))
}

func TestIdentityFilter(t *testing.T) {
	paths := buildPaths(t, "0 0 m 5 5 l S 10 10 m 20 20 l S")
	got := Filter{}.Apply(paths)
	if len(got) != len(paths) {
		t.Errorf("identity filter kept %d of %d paths", len(got), len(paths))
	}
}

func TestBoundingFilter(t *testing.T) {
	paths := buildPaths(t, "10 10 m 10 50 l 50 50 l 50 10 l h S 200 200 m 250 250 l S")
	target := geom.Rect{Left: 0, Bottom: 0, Width: 60, Height: 60}
	got := Filter{Bounds: &target}.Apply(paths)
	if len(got) != 1 {
		t.Fatalf("bounding filter kept %d paths, want 1", len(got))
	}
	if got[0].Index != 0 {
		t.Errorf("kept path index = %d, want 0", got[0].Index)
	}
}

func TestBoundingFilterEdgeTouch(t *testing.T) {
	paths := buildPaths(t, "60 10 m 100 10 l S")
	// Filter rectangle's right edge is exactly at the path's left edge:
	// closed-interval semantics count that as intersecting.
	target := geom.Rect{Left: 0, Bottom: 0, Width: 60, Height: 60}
	if got := (Filter{Bounds: &target}).Apply(paths); len(got) != 1 {
		t.Errorf("edge-touching path filtered out, want kept")
	}
}

func TestBoundingFilterNoBoundsNeverMatches(t *testing.T) {
	target := geom.Rect{Left: 0, Bottom: 0, Width: 1000, Height: 1000}
	f := Filter{Bounds: &target}
	if f.Matches(path.Path{IsStroked: true}) {
		t.Error("path with no bounding geometry matched the bounding filter")
	}
}

func TestStrokeColorFilter(t *testing.T) {
	paths := buildPaths(t, "1 0 0 RG 0 0 m 5 5 l S 0 0 1 RG 0 0 m 5 5 l S 0 0 m 5 5 l f")
	red := geom.Color{R: 1}
	got := Filter{StrokeColor: &red}.Apply(paths)
	if len(got) != 1 {
		t.Fatalf("color filter kept %d paths, want 1", len(got))
	}
	if got[0].Index != 0 {
		t.Errorf("kept path index = %d, want 0", got[0].Index)
	}
}

func TestStrokeColorFilterTolerance(t *testing.T) {
	paths := buildPaths(t, "0.995 0.005 0 RG 0 0 m 5 5 l S")
	red := geom.Color{R: 1}
	if got := (Filter{StrokeColor: &red}).Apply(paths); len(got) != 1 {
		t.Error("stroke within default tolerance filtered out")
	}
	if got := (Filter{StrokeColor: &red, Tolerance: 0.001}).Apply(paths); len(got) != 0 {
		t.Error("stroke outside tight tolerance kept")
	}
}

func TestStrokeColorFilterUnstrokedNeverMatches(t *testing.T) {
	black := geom.Color{}
	f := Filter{StrokeColor: &black}
	// A filled path has the default black fill but is not stroked.
	paths := buildPaths(t, "0 0 m 5 5 l 5 0 l f")
	if got := f.Apply(paths); len(got) != 0 {
		t.Error("unstroked path matched the stroke color filter")
	}
	// A stroked path whose color could not be resolved never matches.
	if f.Matches(path.Path{IsStroked: true}) {
		t.Error("path with unresolved stroke color matched")
	}
}

func TestFiltersCompose(t *testing.T) {
	paths := buildPaths(t, "1 0 0 RG 0 0 m 5 5 l S 1 0 0 RG 200 200 m 250 250 l S")
	target := geom.Rect{Left: 0, Bottom: 0, Width: 50, Height: 50}
	red := geom.Color{R: 1}
	got := Filter{Bounds: &target, StrokeColor: &red}.Apply(paths)
	if len(got) != 1 || got[0].Index != 0 {
		t.Errorf("composed filter kept %v, want only path 0", got)
	}
}

func TestParseBBox(t *testing.T) {
	r, err := ParseBBox("10,20,30,60")
	if err != nil {
		t.Fatalf("ParseBBox: %v", err)
	}
	want := geom.Rect{Left: 10, Bottom: 20, Width: 20, Height: 40}
	if r != want {
		t.Errorf("ParseBBox = %+v, want %+v", r, want)
	}
}

func TestParseBBoxErrors(t *testing.T) {
	for _, s := range []string{"", "1,2,3", "1,2,3,4,5", "a,b,c,d", "30,20,10,60", "10,60,30,20"} {
		_, err := ParseBBox(s)
		if err == nil {
			t.Errorf("ParseBBox(%q) succeeded, want error", s)
			continue
		}
		if !errors.Is(err, ErrInvalidFilterSpec) {
			t.Errorf("ParseBBox(%q) error %v does not wrap ErrInvalidFilterSpec", s, err)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	if _, err := ParseColor("#ff0000"); err != nil {
		t.Errorf("ParseColor(#ff0000): %v", err)
	}
	_, err := ParseColor("red")
	if err == nil {
		t.Fatal("ParseColor(red) succeeded, want error")
	}
	if !errors.Is(err, ErrInvalidFilterSpec) {
		t.Errorf("error %v does not wrap ErrInvalidFilterSpec", err)
	}
}
