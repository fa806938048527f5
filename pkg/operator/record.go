package operator

import (
	"bytes"
	"strings"
)

// Record is one content stream operation: an operator mnemonic plus the raw
// operand tokens that preceded it, in original stream order. A Record with an
// empty Operator carries trailing operand tokens that were never consumed by
// an operator; it is passed through unchanged by every consumer.
type Record struct {
	Operands []string
	Operator string
}

// Kind returns the classification of the record's operator.
func (r Record) Kind() Kind {
	return Classify(r.Operator)
}

// String returns the record as it appears in a content stream.
func (r Record) String() string {
	if len(r.Operands) == 0 {
		return r.Operator
	}
	joined := strings.Join(r.Operands, " ")
	if r.Operator == "" {
		return joined
	}
	return joined + " " + r.Operator
}

// Encode serializes records back into content stream bytes, one operation per
// line. Token spelling is preserved; only inter-token whitespace is
// normalized.
func Encode(records []Record) []byte {
	var buf bytes.Buffer
	for i, rec := range records {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(rec.String())
	}
	return buf.Bytes()
}
