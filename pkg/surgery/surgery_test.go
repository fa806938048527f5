package surgery

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dolkensp/pdfix/pkg/operator"
	"github.com/dolkensp/pdfix/pkg/path"
)

// threePathStream has three stroked paths, each preceded by its own queued
// state, plus a text block between the second and third path.
const threePathStream = "q " +
	"1 0 0 RG 0 0 m 5 5 l S " +
	"0 1 0 RG 10 10 m 15 15 l S " +
	"BT /F1 12 Tf (hi) Tj ET " +
	"0 0 1 RG 2 w 20 20 m 25 25 l S " +
	"Q"

func TestRemovePathComplement(t *testing.T) {
	records := operator.Lex([]byte(threePathStream))
	original := operator.Encode(records)

	for target := 0; target < 3; target++ {
		edited := RemovePath(records, target)

		// The edited stream must be a subsequence of the original: every
		// surviving record identical and in original order.
		j := 0
		for _, rec := range edited {
			found := false
			for ; j < len(records); j++ {
				if cmp.Equal(records[j], rec) {
					found = true
					j++
					break
				}
			}
			if !found {
				t.Fatalf("target %d: record %q out of order or altered", target, rec.String())
			}
		}

		// Exactly one path's worth of operators is gone.
		kept := path.Build(edited)
		if len(kept) != 2 {
			t.Errorf("target %d: %d paths remain, want 2", target, len(kept))
		}

		// The input is untouched.
		if got := operator.Encode(records); string(got) != string(original) {
			t.Fatalf("target %d: input records mutated", target)
		}
	}
}

func TestRemovePathDropsQueuedState(t *testing.T) {
	// The state operators queued immediately before the removed path go with
	// it; state after the path survives.
	records := operator.Lex([]byte("q 1 0 0 RG 2 w 10 10 m 10 50 l 50 50 l 50 10 l h S Q"))
	edited := RemovePath(records, 0)
	want := []operator.Record{{Operator: "Q"}}
	if diff := cmp.Diff(want, edited); diff != "" {
		t.Errorf("edited stream mismatch (-want +got):\n%s", diff)
	}
}

func TestRemovePathKeepsOtherPathsState(t *testing.T) {
	records := operator.Lex([]byte(threePathStream))
	edited := RemovePath(records, 1)
	paths := path.Build(edited)
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}
	// Surviving paths keep their own queued colors.
	if c := paths[0].StrokeColor; c == nil || c.R != 1 {
		t.Errorf("first surviving stroke = %+v, want red", c)
	}
	if c := paths[1].StrokeColor; c == nil || c.B != 1 {
		t.Errorf("second surviving stroke = %+v, want blue", c)
	}
}

func TestRemovePathOutOfRangeIsNoOp(t *testing.T) {
	records := operator.Lex([]byte(threePathStream))
	for _, target := range []int{3, 99, -1} {
		edited := RemovePath(records, target)
		if diff := cmp.Diff(records, edited); diff != "" {
			t.Errorf("target %d: stream changed (-orig +edited):\n%s", target, diff)
		}
	}
}

func TestRemovePathStateBeforeOtherIsKept(t *testing.T) {
	// State operators not followed by path construction are flushed, in
	// order, ahead of the Other operator.
	records := operator.Lex([]byte("1 0 0 RG BT (x) Tj ET 0 0 m 5 5 l S"))
	edited := RemovePath(records, 5)
	if diff := cmp.Diff(records, edited); diff != "" {
		t.Fatalf("no-op removal changed the stream:\n%s", diff)
	}
	if edited[0].Operator != "RG" || edited[1].Operator != "BT" {
		t.Errorf("state operator not flushed ahead of BT: %v", edited[:2])
	}
}

func TestRemovePathFlushesResidueAtEOF(t *testing.T) {
	// A stream ending mid-path (missing terminator) is flushed as-is.
	records := operator.Lex([]byte("0 0 m 5 5 l S 1 0 0 RG 10 10 m 20 20 l"))
	edited := RemovePath(records, 5)
	if diff := cmp.Diff(records, edited); diff != "" {
		t.Errorf("mid-path residue dropped (-orig +edited):\n%s", diff)
	}
}

func TestRemovePathTargetEndingMidStream(t *testing.T) {
	// Removing the only terminated path keeps the trailing unterminated one.
	records := operator.Lex([]byte("0 0 m 5 5 l S 10 10 m 20 20 l"))
	edited := RemovePath(records, 0)
	want := operator.Lex([]byte("10 10 m 20 20 l"))
	if diff := cmp.Diff(want, edited); diff != "" {
		t.Errorf("edited stream mismatch (-want +got):\n%s", diff)
	}
}

func TestRemovePathInlineImagePassthrough(t *testing.T) {
	records := operator.Lex([]byte("BI /W 1 /H 1 ID \x01\x02 EI 0 0 m 5 5 l S"))
	edited := RemovePath(records, 0)
	// Only the inline image records survive.
	if len(edited) != 3 {
		t.Fatalf("got %d records, want 3: %v", len(edited), edited)
	}
	if edited[0].Operator != "BI" || edited[1].Operator != "ID" || edited[2].Operator != "EI" {
		t.Errorf("inline image records altered: %v", edited)
	}
}
