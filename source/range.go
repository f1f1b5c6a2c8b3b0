package source

import "fmt"

// Range is the location of a half-open span [BeginPos, EndPos) of
// characters in a Buffer. Ranges are cheap values: they reference the
// buffer rather than copying its content, and two ranges compare equal
// with == exactly when they reference the same buffer and span the same
// offsets.
type Range struct {
	buf   *Buffer
	begin int
	end   int
}

// NewRange creates a range over [begin, end) in buf. Offsets are not
// validated at construction; callers are expected to keep begin <= end
// and within the buffer, and the rewriter validates every edit range
// before splicing.
func NewRange(buf *Buffer, begin, end int) Range {
	return Range{buf: buf, begin: begin, end: end}
}

// Buffer returns the buffer this range refers to.
func (r Range) Buffer() *Buffer { return r.buf }

// BeginPos returns the offset of the first character of the range.
func (r Range) BeginPos() int { return r.begin }

// EndPos returns the offset just past the last character of the range.
func (r Range) EndPos() int { return r.end }

// Begin returns a zero-length range located at the beginning of this
// range.
func (r Range) Begin() Range { return Range{buf: r.buf, begin: r.begin, end: r.begin} }

// End returns a zero-length range located just after the end of this
// range.
func (r Range) End() Range { return Range{buf: r.buf, begin: r.end, end: r.end} }

// Size returns the number of bytes spanned by the range.
func (r Range) Size() int { return r.end - r.begin }

// Line returns the line number of the beginning of this range.
func (r Range) Line() (int, error) {
	line, _, err := r.buf.DecomposePosition(r.begin)
	return line, err
}

// Column returns the zero-based column of the beginning of this range.
func (r Range) Column() (int, error) {
	_, column, err := r.buf.DecomposePosition(r.begin)
	return column, err
}

// ColumnRange returns the [begin, end) columns spanned by this range.
func (r Range) ColumnRange() (begin, end int, err error) {
	begin, err = r.Begin().Column()
	if err != nil {
		return 0, 0, err
	}
	end, err = r.End().Column()
	if err != nil {
		return 0, 0, err
	}
	return begin, end, nil
}

// Join returns the smallest range covering both r and other, whether or
// not they overlap or touch. It fails with ErrCrossBuffer when the
// ranges belong to different buffers.
func (r Range) Join(other Range) (Range, error) {
	if r.buf != other.buf {
		return Range{}, fmt.Errorf("join %s with %s: %w", r, other, ErrCrossBuffer)
	}
	return Range{
		buf:   r.buf,
		begin: min(r.begin, other.begin),
		end:   max(r.end, other.end),
	}, nil
}

// Source returns the source text covered by this range. Offsets outside
// the buffer are clamped rather than failing.
func (r Range) Source() string {
	src := r.buf.source
	begin := min(max(r.begin, 0), len(src))
	end := min(max(r.end, begin), len(src))
	return src[begin:end]
}

// SourceLine returns the full line of source containing the beginning of
// this range.
func (r Range) SourceLine() (string, error) {
	line, err := r.Line()
	if err != nil {
		return "", err
	}
	return r.buf.SourceLine(line)
}

// String renders the beginning of the range Clang-style as
// "name:line:col1-col2", with the line as reported by the buffer and
// 1-based columns, the end column being the column just past the last
// character. Downstream tooling parses this layout; keep it byte-exact.
func (r Range) String() string {
	if r.buf == nil {
		return fmt.Sprintf("<nil>:[%d, %d)", r.begin, r.end)
	}
	line, column, err := r.buf.DecomposePosition(r.begin)
	if err != nil {
		return fmt.Sprintf("%s:[%d, %d)", r.buf.name, r.begin, r.end)
	}
	_, endColumn, err := r.buf.DecomposePosition(r.end)
	if err != nil {
		return fmt.Sprintf("%s:[%d, %d)", r.buf.name, r.begin, r.end)
	}
	return fmt.Sprintf("%s:%d:%d-%d", r.buf.name, line, column+1, endColumn+1)
}
