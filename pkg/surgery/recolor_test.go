package surgery

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dolkensp/pdfix/pkg/operator"
)

const recolorStream = "0.5 G 0 0 m 5 5 l S 1 0 0 RG 10 10 m 20 20 l S 0 0 1 rg 0 0 10 10 re f"

func TestRecolorIsDeterministic(t *testing.T) {
	records := operator.Lex([]byte(recolorStream))

	a := NewRecolorer(42).Recolor(records)
	b := NewRecolorer(42).Recolor(records)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different streams:\n%s", diff)
	}

	c := NewRecolorer(7).Recolor(records)
	if cmp.Equal(a, c) {
		t.Error("different seeds produced identical color sequences")
	}
}

func TestRecolorRewritesStrokeColorsOnly(t *testing.T) {
	records := operator.Lex([]byte(recolorStream))
	out := NewRecolorer(1).Recolor(records)

	if len(out) != len(records) {
		t.Fatalf("record count changed: %d -> %d", len(records), len(out))
	}

	var rewritten int
	for i, rec := range out {
		switch records[i].Operator {
		case "G", "RG":
			if rec.Operator != "RG" {
				t.Errorf("record %d: operator = %q, want RG", i, rec.Operator)
			}
			if len(rec.Operands) != 3 {
				t.Fatalf("record %d: %d operands, want 3", i, len(rec.Operands))
			}
			for _, op := range rec.Operands {
				v, err := strconv.ParseFloat(op, 64)
				if err != nil || v < 0 || v > 1 {
					t.Errorf("record %d: channel %q out of [0, 1]", i, op)
				}
			}
			rewritten++
		default:
			// Fill colors and geometry pass through untouched.
			if diff := cmp.Diff(records[i], rec); diff != "" {
				t.Errorf("record %d altered (-orig +got):\n%s", i, diff)
			}
		}
	}
	if rewritten != 2 {
		t.Errorf("rewrote %d stroke color operators, want 2", rewritten)
	}
}

func TestRecolorColorSequenceAdvances(t *testing.T) {
	rc := NewRecolorer(3)
	first := rc.Next()
	second := rc.Next()
	if first == second {
		t.Error("consecutive colors from the sequence are identical")
	}
}
