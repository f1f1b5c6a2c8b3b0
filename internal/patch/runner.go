package patch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"log/slog"

	"github.com/electwix/srcspan/internal/logging"
	"github.com/electwix/srcspan/source"
)

// Runner applies a patch document across a set of files.
type Runner struct {
	Logger *slog.Logger
	DryRun bool

	readFile  func(string) ([]byte, error)
	writeFile func(string, []byte) error
}

// Report describes the outcome for a single file.
type Report struct {
	Path    string
	Edits   int
	Changed bool
}

// NewRunner creates a new patch Runner.
func NewRunner() *Runner {
	return &Runner{
		readFile:  os.ReadFile,
		writeFile: defaultWriteFile,
	}
}

func defaultWriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// Apply runs doc against every path in order, rewriting files in place
// unless DryRun is set. It stops at the first failing file, returning
// the reports accumulated so far alongside the error.
func (r *Runner) Apply(ctx context.Context, doc *Document, paths []string) ([]Report, error) {
	if r == nil {
		return nil, errors.New("patch: runner is nil")
	}
	if doc == nil {
		return nil, errors.New("patch: document is nil")
	}
	if r.readFile == nil {
		r.readFile = os.ReadFile
	}
	if r.writeFile == nil {
		r.writeFile = defaultWriteFile
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	reports := make([]Report, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		data, err := r.readFile(path)
		if err != nil {
			return reports, fmt.Errorf("patch: read %s: %w", path, err)
		}
		buf := source.NewBuffer(string(data), source.WithName(path))
		out, err := doc.Apply(buf)
		if err != nil {
			return reports, fmt.Errorf("patch: apply to %s: %w", path, err)
		}
		changed := out.Source() != buf.Source()
		logger.Debug("applied patch", "path", path, "edits", len(doc.Edits), "changed", changed)
		if changed && !r.DryRun {
			if err := r.writeFile(path, []byte(out.Source())); err != nil {
				return reports, fmt.Errorf("patch: write %s: %w", path, err)
			}
		}
		reports = append(reports, Report{Path: path, Edits: len(doc.Edits), Changed: changed})
	}
	return reports, nil
}
