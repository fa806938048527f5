// Package surgery edits a page's raw operator stream: it removes exactly one
// path's operators while preserving every other operator's payload and
// relative order, and provides the overlay helpers used when a removed path
// is replaced by new geometry.
package surgery

import (
	"github.com/dolkensp/pdfix/pkg/operator"
)

// editorState is the explicit state of the surgery scan.
type editorState int

const (
	// stateIdle: no path under construction; state operators queue until it
	// is known whether a path follows them.
	stateIdle editorState = iota
	// stateBuffering: a path is under construction; every operator buffers
	// until the path's terminator decides its fate.
	stateBuffering
)

// editor removes the operators of the path with index target from a stream.
// All buffers are scoped to one page scan and discarded afterwards.
type editor struct {
	target int
	count  int
	state  editorState

	stateBuffer []operator.Record
	pathBuffer  []operator.Record
	output      []operator.Record
}

// RemovePath returns a copy of records with the operators of the path at the
// given 0-based target index excised, together with the state operators
// queued immediately before it. Every other record keeps its payload and
// relative order. A target outside the stream's path range returns the input
// sequence unchanged, record for record.
func RemovePath(records []operator.Record, target int) []operator.Record {
	e := &editor{target: target, output: make([]operator.Record, 0, len(records))}
	for _, rec := range records {
		e.reduce(rec)
	}
	e.finish()
	return e.output
}

// reduce processes one record. The transitions implement the buffering rules:
// state operators are deferred while idle, a construction operator starts
// buffering and claims the deferred state, and a terminator either discards
// the whole path buffer (target hit) or flushes it verbatim.
func (e *editor) reduce(rec operator.Record) {
	if e.state == stateBuffering {
		e.pathBuffer = append(e.pathBuffer, rec)
		if rec.Kind() == operator.KindPathTerminating {
			if e.count == e.target {
				// The queued state operators were only ever held in
				// anticipation of this path; they go with it.
				e.pathBuffer = nil
			} else {
				e.output = append(e.output, e.pathBuffer...)
				e.pathBuffer = nil
			}
			e.count++
			e.state = stateIdle
		}
		return
	}

	switch rec.Kind() {
	case operator.KindState:
		e.stateBuffer = append(e.stateBuffer, rec)
	case operator.KindPathConstruction:
		e.pathBuffer = append(e.pathBuffer, e.stateBuffer...)
		e.stateBuffer = nil
		e.pathBuffer = append(e.pathBuffer, rec)
		e.state = stateBuffering
	default:
		// Terminators without a tracked path behave like any other
		// pass-through operator: queued state is kept, in order, ahead of it.
		e.output = append(e.output, e.stateBuffer...)
		e.stateBuffer = nil
		e.output = append(e.output, rec)
	}
}

// finish flushes residue at end of stream. A stream ending mid-path (missing
// terminator) is flushed as-is rather than silently dropped.
func (e *editor) finish() {
	e.output = append(e.output, e.pathBuffer...)
	e.pathBuffer = nil
	e.output = append(e.output, e.stateBuffer...)
	e.stateBuffer = nil
}
