// Package main implements the srcpatch tool for bulk source rewrites.
// It loads a patch document (TOML or YAML), resolves the target files,
// and applies the edits through the conflict-checked rewriter.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/electwix/srcspan/internal/diagnostics"
	"github.com/electwix/srcspan/internal/fileset"
	"github.com/electwix/srcspan/internal/logging"
	"github.com/electwix/srcspan/internal/patch"
	"github.com/electwix/srcspan/source"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("srcpatch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		patchPath string
		dryRun    bool
		verbose   bool
	)
	fs.StringVar(&patchPath, "patch", "", "Path to patch document (.toml, .yaml)")
	fs.StringVar(&patchPath, "p", "", "Path to patch document (.toml, .yaml)")
	fs.BoolVar(&dryRun, "dry-run", false, "Display planned changes without writing files")
	fs.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&verbose, "v", false, "Enable verbose logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if patchPath == "" {
		fmt.Fprintln(stderr, "srcpatch: no patch document given")
		return 2
	}
	patterns := fs.Args()
	if len(patterns) == 0 {
		fmt.Fprintln(stderr, "srcpatch: no files to rewrite")
		return 2
	}

	data, err := os.ReadFile(patchPath)
	if err != nil {
		fmt.Fprintf(stderr, "read patch: %v\n", err)
		return 1
	}
	doc, err := patch.Load(patchPath, data)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	paths, err := fileset.OS{}.Resolve(patterns)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	runner := patch.NewRunner()
	runner.DryRun = dryRun
	runner.Logger = logging.New(logging.Options{Verbose: verbose, Writer: stderr})

	reports, err := runner.Apply(ctx, doc, paths)
	if err != nil {
		var conflict *source.ConflictError
		if errors.As(err, &conflict) {
			printConflict(stderr, conflict)
		}
		fmt.Fprintf(stderr, "srcpatch: %v\n", err)
		return 1
	}

	prefix := "srcpatch"
	if dryRun {
		prefix = "srcpatch (dry-run)"
	}
	for _, rep := range reports {
		if rep.Changed {
			fmt.Fprintf(stdout, "%s: %s: applied %d edit(s)\n", prefix, rep.Path, rep.Edits)
		} else {
			fmt.Fprintf(stdout, "%s: %s: unchanged\n", prefix, rep.Path)
		}
	}
	return 0
}

func printConflict(w io.Writer, c *source.ConflictError) {
	pair := []diagnostics.Diagnostic{
		{Severity: diagnostics.SeverityError, Message: "conflicting edit", Range: c.First},
		{Severity: diagnostics.SeverityError, Message: "overlaps the edit above", Range: c.Second},
	}
	for _, d := range pair {
		fmt.Fprintln(w, d)
		if ctx, err := diagnostics.Context(d.Range); err == nil {
			fmt.Fprintln(w, ctx)
		}
	}
}
