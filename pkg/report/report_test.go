package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dolkensp/pdfix/pkg/operator"
	"github.com/dolkensp/pdfix/pkg/path"
)

func samplePaths(t *testing.T) []path.Path {
	t.Helper()
	return path.Build(operator.Lex([]byte(
		"1 0 0 RG 2 w 10 10 m 10 50 l 50 50 l 50 10 l h S 0 0 m 5 5 l f")))
}

func TestFromPaths(t *testing.T) {
	reports := FromPaths(samplePaths(t))
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	r := reports[0]
	if r.Index != 0 || !r.Stroked || r.Filled {
		t.Errorf("first report flags wrong: %+v", r)
	}
	if r.StrokeColor == nil || r.StrokeColor.Hex != "#ff0000" {
		t.Errorf("stroke color = %+v, want #ff0000", r.StrokeColor)
	}
	if r.LineWidth == nil || *r.LineWidth != 2 {
		t.Errorf("line width = %v, want 2", r.LineWidth)
	}
	if len(r.Subpaths) != 1 || !r.Subpaths[0].Rectangle || !r.Subpaths[0].Closed {
		t.Errorf("subpath report = %+v, want closed rectangle", r.Subpaths)
	}
	if got := len(r.Subpaths[0].Commands); got != 5 {
		t.Errorf("got %d commands, want 5", got)
	}
	if kind := r.Subpaths[0].Commands[0].Kind; kind != "moveto" {
		t.Errorf("first command kind = %q, want moveto", kind)
	}

	second := reports[1]
	if second.StrokeColor != nil || second.LineWidth != nil {
		t.Errorf("filled path carries stroke attributes: %+v", second)
	}
	if second.FillColor == nil || second.FillColor.Hex != "#000000" {
		t.Errorf("fill color = %+v, want #000000", second.FillColor)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, samplePaths(t)); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d entries, want 2", len(decoded))
	}
	// Optional attributes are omitted, not null-filled.
	if _, present := decoded[1]["strokeColor"]; present {
		t.Error("unstroked path serialized a strokeColor field")
	}
	if _, present := decoded[0]["bounds"]; !present {
		t.Error("bounded path did not serialize bounds")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, samplePaths(t)); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"path 0:", "stroke=#ff0000", "width=2.00", "rectangle=true", "path 1:"} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestReportAbsentBounds(t *testing.T) {
	reports := FromPaths([]path.Path{{Index: 0}})
	if reports[0].Bounds != nil {
		t.Errorf("path with no geometry reported bounds %+v, want nil", reports[0].Bounds)
	}
}
