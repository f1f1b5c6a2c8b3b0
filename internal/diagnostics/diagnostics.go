// Package diagnostics renders positional diagnostics for srcspan tools.
// A diagnostic couples a severity and message with the source range it
// concerns; rendering reuses the range's "name:line:col1-col2" form so
// downstream tooling can parse locations uniformly.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/electwix/srcspan/source"
)

// Severity indicates the seriousness of a diagnostic.
type Severity int

const (
	// SeverityInfo indicates an informational message.
	SeverityInfo Severity = iota
	// SeverityWarning indicates a potential issue.
	SeverityWarning
	// SeverityError indicates a fatal issue.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a message tied to a range of source text.
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    source.Range
}

// String renders "name:line:col1-col2: severity: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Range, d.Severity, d.Message)
}

// Error implements the error interface for error-level diagnostics.
func (d Diagnostic) Error() string { return d.String() }

// IsError returns true if the diagnostic is an error.
func (d Diagnostic) IsError() bool { return d.Severity == SeverityError }

// Context renders the line of source containing the beginning of r with
// a marker underneath the spanned columns:
//
//	> 12 | SELECT * FROM users
//	     |        ^~~~
//
// Tabs in the source line are preserved in the marker line so the caret
// stays aligned in tab-indented code.
func Context(r source.Range) (string, error) {
	lineText, err := r.SourceLine()
	if err != nil {
		return "", err
	}
	lineText = strings.TrimRight(lineText, "\n")
	line, err := r.Line()
	if err != nil {
		return "", err
	}
	colBegin, colEnd, err := r.ColumnRange()
	if err != nil {
		return "", err
	}

	num := fmt.Sprintf("%d", line)
	var b strings.Builder
	fmt.Fprintf(&b, "> %s | %s\n", num, lineText)
	fmt.Fprintf(&b, "  %s | ", strings.Repeat(" ", len(num)))
	for i := 0; i < colBegin && i < len(lineText); i++ {
		if lineText[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	// A multi-line range ends on another line; underline to end of line
	// rather than guessing.
	width := colEnd - colBegin
	if r.Size() > 0 && colEnd <= colBegin {
		width = len(lineText) - colBegin
	}
	for i := 1; i < width; i++ {
		b.WriteByte('~')
	}
	return b.String(), nil
}

// Collection holds an ordered set of diagnostics.
type Collection struct {
	diagnostics []Diagnostic
}

// NewCollection creates a new empty diagnostic collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add adds a diagnostic to the collection.
func (c *Collection) Add(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// Addf builds a diagnostic from a format string and adds it.
func (c *Collection) Addf(severity Severity, r source.Range, format string, args ...any) {
	c.Add(Diagnostic{Severity: severity, Message: fmt.Sprintf(format, args...), Range: r})
}

// HasErrors returns true if the collection contains any errors.
func (c *Collection) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Errors returns all error-level diagnostics.
func (c *Collection) Errors() []Diagnostic {
	var errs []Diagnostic
	for _, d := range c.diagnostics {
		if d.IsError() {
			errs = append(errs, d)
		}
	}
	return errs
}

// All returns all diagnostics.
func (c *Collection) All() []Diagnostic {
	return append([]Diagnostic(nil), c.diagnostics...)
}

// Len returns the number of diagnostics.
func (c *Collection) Len() int {
	return len(c.diagnostics)
}

// SortByRange sorts diagnostics by buffer name, then begin and end
// offsets. The sort is stable so diagnostics at the same position keep
// their reporting order.
func (c *Collection) SortByRange() {
	sort.SliceStable(c.diagnostics, func(i, j int) bool {
		a, b := c.diagnostics[i].Range, c.diagnostics[j].Range
		an, bn := bufferName(a), bufferName(b)
		if an != bn {
			return an < bn
		}
		if a.BeginPos() != b.BeginPos() {
			return a.BeginPos() < b.BeginPos()
		}
		return a.EndPos() < b.EndPos()
	})
}

func bufferName(r source.Range) string {
	if r.Buffer() == nil {
		return ""
	}
	return r.Buffer().Name()
}
