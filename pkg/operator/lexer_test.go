package operator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLexGroupsOperands(t *testing.T) {
	records := Lex([]byte("q\n1 0 0 RG\n2 w\n10 10 m\n50 50 l\nS\nQ"))
	want := []Record{
		{Operator: "q"},
		{Operands: []string{"1", "0", "0"}, Operator: "RG"},
		{Operands: []string{"2"}, Operator: "w"},
		{Operands: []string{"10", "10"}, Operator: "m"},
		{Operands: []string{"50", "50"}, Operator: "l"},
		{Operator: "S"},
		{Operator: "Q"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Lex mismatch (-want +got):\n%s", diff)
	}
}

func TestLexCompositeOperands(t *testing.T) {
	records := Lex([]byte("[2 4] 0 d /GS1 gs (a (nested) str) Tj <48656c6c6f> Tj <</K -1>> BDC"))
	want := []Record{
		{Operands: []string{"[2 4]", "0"}, Operator: "d"},
		{Operands: []string{"/GS1"}, Operator: "gs"},
		{Operands: []string{"(a (nested) str)"}, Operator: "Tj"},
		{Operands: []string{"<48656c6c6f>"}, Operator: "Tj"},
		{Operands: []string{"<</K -1>>"}, Operator: "BDC"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Lex mismatch (-want +got):\n%s", diff)
	}
}

func TestLexTrailingOperands(t *testing.T) {
	records := Lex([]byte("10 10 m 1 0"))
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	last := records[1]
	if last.Operator != "" {
		t.Errorf("trailing record operator = %q, want empty", last.Operator)
	}
	if diff := cmp.Diff([]string{"1", "0"}, last.Operands); diff != "" {
		t.Errorf("trailing operands mismatch (-want +got):\n%s", diff)
	}
}

func TestLexBooleansAndNullAreOperands(t *testing.T) {
	records := Lex([]byte("true false null Do"))
	want := []Record{
		{Operands: []string{"true", "false", "null"}, Operator: "Do"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Lex mismatch (-want +got):\n%s", diff)
	}
}

func TestLexSkipsComments(t *testing.T) {
	records := Lex([]byte("% a comment\n10 10 m"))
	want := []Record{{Operands: []string{"10", "10"}, Operator: "m"}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Lex mismatch (-want +got):\n%s", diff)
	}
}

func TestLexInlineImage(t *testing.T) {
	records := Lex([]byte("BI /W 2 /H 2 ID \x00\x01\x02\x03 EI\nQ"))
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4: %v", len(records), records)
	}
	if records[0].Operator != "BI" {
		t.Errorf("first operator = %q, want BI", records[0].Operator)
	}
	if records[1].Operator != "ID" {
		t.Errorf("second operator = %q, want ID", records[1].Operator)
	}
	if records[2].Operator != "EI" {
		t.Errorf("third operator = %q, want EI", records[2].Operator)
	}
	if got := records[2].Operands[0]; got != "\x00\x01\x02\x03" {
		t.Errorf("inline data = %q, want raw bytes preserved", got)
	}
	if records[3].Operator != "Q" {
		t.Errorf("fourth operator = %q, want Q", records[3].Operator)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	src := "q\n1 0 0 RG\n[2 4] 0 d\n10 10 m\n50 50 l\nS\nQ"
	records := Lex([]byte(src))
	encoded := Encode(records)
	if diff := cmp.Diff(records, Lex(encoded)); diff != "" {
		t.Errorf("re-lex of encoded stream differs (-orig +relexed):\n%s", diff)
	}
	if got := string(encoded); got != src {
		t.Errorf("Encode = %q, want %q", got, src)
	}
}
