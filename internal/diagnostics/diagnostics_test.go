package diagnostics

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/electwix/srcspan/source"
)

func TestDiagnosticString(t *testing.T) {
	buf := source.NewBuffer("SELECT * FROM users\n", source.WithName("query.sql"))
	d := Diagnostic{
		Severity: SeverityError,
		Message:  "star projection is not allowed",
		Range:    source.NewRange(buf, 7, 8),
	}

	want := "query.sql:1:8-9: error: star projection is not allowed"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSeverityString(t *testing.T) {
	cases := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.severity.String(); got != tc.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tc.severity, got, tc.want)
		}
	}
}

func TestContext(t *testing.T) {
	buf := source.NewBuffer("one\ntwo three\nfour\n", source.WithName("words.txt"))
	got, err := Context(source.NewRange(buf, 8, 13)) // "three"
	if err != nil {
		t.Fatalf("Context: unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"> 2 | two three",
		"    |     ^~~~~",
	}, "\n")
	if got != want {
		t.Errorf("Context() = %q, want %q", got, want)
	}
}

func TestContextZeroLengthRange(t *testing.T) {
	buf := source.NewBuffer("abc\n")
	got, err := Context(source.NewRange(buf, 1, 1))
	if err != nil {
		t.Fatalf("Context: unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, " ^") {
		t.Errorf("Context() = %q, want a single caret marker", got)
	}
}

func TestContextOutOfRange(t *testing.T) {
	buf := source.NewBuffer("abc")
	if _, err := Context(source.NewRange(buf, 50, 60)); err == nil {
		t.Errorf("Context on invalid range: want error, got nil")
	}
}

func TestCollection(t *testing.T) {
	buf := source.NewBuffer("ab\ncd\n", source.WithName("t.txt"))
	c := NewCollection()
	c.Addf(SeverityWarning, source.NewRange(buf, 3, 5), "second")
	c.Addf(SeverityError, source.NewRange(buf, 0, 2), "first")

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if !c.HasErrors() {
		t.Errorf("HasErrors() = false, want true")
	}
	if got := len(c.Errors()); got != 1 {
		t.Errorf("len(Errors()) = %d, want 1", got)
	}

	c.SortByRange()
	want := []Diagnostic{
		{Severity: SeverityError, Message: "first", Range: source.NewRange(buf, 0, 2)},
		{Severity: SeverityWarning, Message: "second", Range: source.NewRange(buf, 3, 5)},
	}
	if diff := cmp.Diff(want, c.All(), cmp.Comparer(func(a, b source.Range) bool {
		return a == b
	})); diff != "" {
		t.Errorf("sorted diagnostics mismatch (-want +got):\n%s", diff)
	}
}
