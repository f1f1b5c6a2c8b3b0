package source

import (
	"fmt"
	"sort"
	"strings"
)

// Rewriter accumulates replacement edits against a single Buffer and
// applies them all at once, refusing to produce any output when two
// edits overlap. Edits may be recorded in any order. A Rewriter is
// single-use: Rewrite sorts the internal edit list in place, so discard
// the rewriter afterwards.
//
// A Rewriter must not be mutated by more than one goroutine at a time.
type Rewriter struct {
	buf   *Buffer
	edits []edit
}

type edit struct {
	rng  Range
	text string
}

// NewRewriter creates a rewriter for buf.
func NewRewriter(buf *Buffer) *Rewriter {
	return &Rewriter{buf: buf}
}

// Buffer returns the buffer being rewritten.
func (rw *Rewriter) Buffer() *Buffer { return rw.buf }

// Replace records an edit removing rng and substituting text in its
// place.
func (rw *Rewriter) Replace(rng Range, text string) {
	rw.edits = append(rw.edits, edit{rng: rng, text: text})
}

// Remove records an edit removing rng.
func (rw *Rewriter) Remove(rng Range) {
	rw.Replace(rng, "")
}

// InsertBefore records an edit inserting text just before rng.
func (rw *Rewriter) InsertBefore(rng Range, text string) {
	rw.Replace(rng.Begin(), text)
}

// InsertAfter records an edit inserting text just after rng.
func (rw *Rewriter) InsertAfter(rng Range, text string) {
	rw.Replace(rng.End(), text)
}

// Rewrite applies the accumulated edits and returns the rewritten source
// as a new Buffer carrying the same name and first line as the original.
// It fails with a *ConflictError when two edits overlap, with
// ErrCrossBuffer when an edit's range belongs to another buffer, and
// with ErrOutOfRange when an edit's range lies outside the source; on
// any failure no output is produced and the original buffer is left
// untouched. Edits that merely touch, where one ends exactly where the
// next begins, do not conflict.
func (rw *Rewriter) Rewrite() (*Buffer, error) {
	// Ties on begin keep insertion order so the pair reported for a
	// conflict is deterministic.
	sort.SliceStable(rw.edits, func(i, j int) bool {
		return rw.edits[i].rng.begin < rw.edits[j].rng.begin
	})

	src := rw.buf.source
	for _, e := range rw.edits {
		r := e.rng
		if r.buf != rw.buf {
			return nil, fmt.Errorf("edit %s: %w", r, ErrCrossBuffer)
		}
		if r.begin < 0 || r.end < r.begin || r.end > len(src) {
			return nil, fmt.Errorf("%s: edit [%d, %d) outside [0, %d]: %w",
				rw.buf.name, r.begin, r.end, len(src), ErrOutOfRange)
		}
	}
	for i := 1; i < len(rw.edits); i++ {
		first, second := rw.edits[i-1].rng, rw.edits[i].rng
		if second.begin < first.end {
			return nil, &ConflictError{First: first, Second: second}
		}
	}

	var b strings.Builder
	b.Grow(len(src))
	cursor := 0
	for _, e := range rw.edits {
		b.WriteString(src[cursor:e.rng.begin])
		b.WriteString(e.text)
		cursor = e.rng.end
	}
	b.WriteString(src[cursor:])

	return NewBuffer(b.String(), WithName(rw.buf.name), WithFirstLine(rw.buf.firstLine)), nil
}
