// Package fileset resolves file patterns and loads source buffers for
// srcspan tools.
package fileset

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/electwix/srcspan/source"
)

// ErrNoPatterns indicates that Resolve was invoked without any patterns.
var ErrNoPatterns = errors.New("fileset: no patterns provided")

// NoMatchError reports a pattern that matched no files.
type NoMatchError struct {
	Patterns []string
}

func (e NoMatchError) Error() string {
	return fmt.Sprintf("fileset: no files match %s", strings.Join(e.Patterns, ", "))
}

// Loader resolves patterns to file paths and reads file contents.
type Loader interface {
	Resolve(patterns []string) ([]string, error)
	ReadFile(path string) ([]byte, error)
}

// OS is a Loader over the real filesystem; patterns are filepath.Glob
// patterns.
type OS struct{}

// Resolve matches patterns against the filesystem, deduplicating and
// sorting the results.
func (OS) Resolve(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	var results []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("fileset: bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, NoMatchError{Patterns: []string{pattern}}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				results = append(results, m)
			}
		}
	}
	sort.Strings(results)
	return results, nil
}

// ReadFile reads a file from the filesystem.
func (OS) ReadFile(p string) ([]byte, error) {
	return os.ReadFile(p)
}

// Memory is a Loader over an in-memory file map, for testing without a
// filesystem.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory creates a Memory loader holding the given files, a map of
// slash-separated paths to content.
func NewMemory(files map[string][]byte) *Memory {
	return &Memory{files: files}
}

// Resolve matches patterns against the in-memory paths. An exact path
// always matches; otherwise patterns use path.Match, with the special
// prefix "**/" matching any number of leading directories.
func (m *Memory) Resolve(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matched := false
		for p := range m.files {
			if matchPattern(pattern, p) {
				matched = true
				if !seen[p] {
					seen[p] = true
					results = append(results, p)
				}
			}
		}
		if !matched {
			return nil, NoMatchError{Patterns: []string{pattern}}
		}
	}
	sort.Strings(results)
	return results, nil
}

func matchPattern(pattern, p string) bool {
	if pattern == p {
		return true
	}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		if ok, _ := path.Match(rest, path.Base(p)); ok {
			return true
		}
	}
	ok, err := path.Match(pattern, p)
	return err == nil && ok
}

// ReadFile returns the content of an in-memory file.
func (m *Memory) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if content, ok := m.files[p]; ok {
		return content, nil
	}
	return nil, fmt.Errorf("fileset: file not found: %s", p)
}

// AddFile adds a file to the loader.
func (m *Memory) AddFile(p string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[p] = content
}

// LoadBuffer reads path through l and wraps its content in a buffer
// named by the path.
func LoadBuffer(l Loader, path string) (*source.Buffer, error) {
	data, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return source.NewBuffer(string(data), source.WithName(path)), nil
}
