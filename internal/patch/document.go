// Package patch loads bulk-edit documents and applies them to source
// buffers through the rewriter. A document is a list of edits in TOML or
// YAML, each addressing a span of the target file either by byte offsets
// or by line and column.
package patch

import (
	"fmt"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/electwix/srcspan/source"
)

// Edit is a single replacement in a patch document. An edit addresses
// its target either by byte offsets (begin/end) or by line, column and
// optional length; the two schemes are mutually exclusive. An empty text
// removes the addressed span. The insert mode turns the edit into an
// insertion just before or just after the addressed span.
type Edit struct {
	Begin  *int   `toml:"begin" yaml:"begin"`
	End    *int   `toml:"end" yaml:"end"`
	Line   *int   `toml:"line" yaml:"line"`
	Column *int   `toml:"column" yaml:"column"`
	Length *int   `toml:"length" yaml:"length"`
	Text   string `toml:"text" yaml:"text"`
	Insert string `toml:"insert" yaml:"insert"`
}

// Document is a parsed patch file.
type Document struct {
	Edits []Edit `toml:"edit" yaml:"edits"`
}

// Load parses a patch document. The format is chosen by the path's
// extension: .toml for TOML, .yaml or .yml for YAML.
func Load(path string, data []byte) (*Document, error) {
	var doc Document
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("patch: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("patch: parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("patch: %s: unsupported document format %q", path, ext)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("patch: %s: %w", path, err)
	}
	return &doc, nil
}

func (d *Document) validate() error {
	for i, e := range d.Edits {
		byOffset := e.Begin != nil || e.End != nil
		byLine := e.Line != nil || e.Column != nil || e.Length != nil
		switch {
		case byOffset && byLine:
			return fmt.Errorf("edit %d mixes offset and line addressing", i)
		case byOffset && (e.Begin == nil || e.End == nil):
			return fmt.Errorf("edit %d needs both begin and end", i)
		case byLine && (e.Line == nil || e.Column == nil):
			return fmt.Errorf("edit %d needs both line and column", i)
		case !byOffset && !byLine:
			return fmt.Errorf("edit %d has no address", i)
		}
		switch e.Insert {
		case "", "before", "after":
		default:
			return fmt.Errorf("edit %d: invalid insert mode %q", i, e.Insert)
		}
	}
	return nil
}

// resolveRange turns an edit's address into a range over buf.
func (e Edit) resolveRange(buf *source.Buffer) (source.Range, error) {
	if e.Begin != nil {
		return source.NewRange(buf, *e.Begin, *e.End), nil
	}
	begin, err := buf.ComposePosition(*e.Line, *e.Column)
	if err != nil {
		return source.Range{}, err
	}
	length := 0
	if e.Length != nil {
		length = *e.Length
	}
	return source.NewRange(buf, begin, begin+length), nil
}

// Apply applies the document's edits to buf and returns the rewritten
// buffer. Overlapping edits surface as *source.ConflictError; edits that
// address positions outside buf surface as source.ErrOutOfRange. The
// input buffer is never modified.
func (d *Document) Apply(buf *source.Buffer) (*source.Buffer, error) {
	rw := source.NewRewriter(buf)
	for i, e := range d.Edits {
		rng, err := e.resolveRange(buf)
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}
		switch e.Insert {
		case "before":
			rw.InsertBefore(rng, e.Text)
		case "after":
			rw.InsertAfter(rng, e.Text)
		default:
			rw.Replace(rng, e.Text)
		}
	}
	return rw.Rewrite()
}
