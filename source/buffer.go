// Package source manipulates buffers of program text: creating ranges of
// characters corresponding to a token, combining ranges, extracting
// human-readable location information and original source from a range,
// and rewriting buffers in bulk with conflict detection.
package source

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Buffer holds an immutable piece of source text together with a display
// name and the line number assigned to its first line. A buffer whose
// first line is greater than 1 represents an excerpt embedded in a larger
// document.
//
// Offsets into a Buffer are byte offsets into the text; columns are byte
// columns. The line-start index is built lazily on first use and cached
// for the lifetime of the buffer, so position queries after the first are
// O(log lines).
type Buffer struct {
	source    string
	name      string
	firstLine int

	once       sync.Once
	lineBegins []int
}

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithName sets the display name of the input, typically a file path or a
// placeholder such as "<stdin>". The default is "<input>".
func WithName(name string) Option {
	return func(b *Buffer) { b.name = name }
}

// WithFirstLine sets the line number reported for the first line of the
// buffer. The default is 1.
func WithFirstLine(n int) Option {
	return func(b *Buffer) { b.firstLine = n }
}

// NewBuffer creates a buffer over src.
func NewBuffer(src string, opts ...Option) *Buffer {
	b := &Buffer{source: src, name: "<input>", firstLine: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Source returns the full source text.
func (b *Buffer) Source() string { return b.source }

// Name returns the display name of the input.
func (b *Buffer) Name() string { return b.name }

// FirstLine returns the line number assigned to the first line.
func (b *Buffer) FirstLine() int { return b.firstLine }

// Len returns the length of the source text in bytes.
func (b *Buffer) Len() int { return len(b.source) }

// NumLines returns the number of lines in the buffer. An empty buffer
// counts as a single empty line.
func (b *Buffer) NumLines() int { return len(b.lineIndex()) }

// SourceLine returns the text of line lineno, taking the buffer's first
// line into account. Every line except the last includes its trailing
// newline; the last line carries one only when the source itself ends
// with a newline, in which case the final line is the empty string. It
// fails with ErrOutOfRange when lineno does not address a line of the
// buffer.
func (b *Buffer) SourceLine(lineno int) (string, error) {
	begins := b.lineIndex()
	idx := lineno - b.firstLine
	switch {
	case idx >= 0 && idx+1 < len(begins):
		return b.source[begins[idx]:begins[idx+1]], nil
	case idx >= 0 && idx < len(begins):
		return b.source[begins[idx]:], nil
	default:
		return "", fmt.Errorf("%s: line %d outside [%d, %d]: %w",
			b.name, lineno, b.firstLine, b.firstLine+len(begins)-1, ErrOutOfRange)
	}
}

// DecomposePosition converts a byte offset into a (line, column) pair.
// Lines count from the buffer's first line; columns are zero-based. The
// one-past-the-end offset is valid: zero-length ranges at the very end of
// the buffer decompose to a position just past the final character. Any
// other offset outside the source fails with ErrOutOfRange.
func (b *Buffer) DecomposePosition(offset int) (line, column int, err error) {
	if offset < 0 || offset > len(b.source) {
		return 0, 0, fmt.Errorf("%s: offset %d outside [0, %d]: %w",
			b.name, offset, len(b.source), ErrOutOfRange)
	}
	begins := b.lineIndex()
	// Rightmost line whose start is <= offset.
	idx := sort.SearchInts(begins, offset+1) - 1
	return idx + b.firstLine, offset - begins[idx], nil
}

// ComposePosition is the inverse of DecomposePosition: it converts a
// (line, column) pair back into a byte offset. It fails with ErrOutOfRange
// when the line does not address a line of the buffer or the column lies
// past the end of that line.
func (b *Buffer) ComposePosition(line, column int) (int, error) {
	begins := b.lineIndex()
	idx := line - b.firstLine
	if idx < 0 || idx >= len(begins) {
		return 0, fmt.Errorf("%s: line %d outside [%d, %d]: %w",
			b.name, line, b.firstLine, b.firstLine+len(begins)-1, ErrOutOfRange)
	}
	limit := len(b.source)
	if idx+1 < len(begins) {
		limit = begins[idx+1]
	}
	offset := begins[idx] + column
	if column < 0 || offset > limit {
		return 0, fmt.Errorf("%s: column %d outside line %d: %w",
			b.name, column, line, ErrOutOfRange)
	}
	return offset, nil
}

// lineIndex returns the cached line-start index, computing it on first
// use. Element 0 is always 0; element k+1 is the offset just past the
// k-th newline, so the index length equals the line count.
func (b *Buffer) lineIndex() []int {
	b.once.Do(func() {
		begins := []int{0}
		for i := 0; ; {
			j := strings.IndexByte(b.source[i:], '\n')
			if j < 0 {
				break
			}
			i += j + 1
			begins = append(begins, i)
		}
		b.lineBegins = begins
	})
	return b.lineBegins
}
