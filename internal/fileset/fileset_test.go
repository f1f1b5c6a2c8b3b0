package fileset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryResolveExact(t *testing.T) {
	m := NewMemory(map[string][]byte{
		"a.txt":     []byte("a"),
		"sub/b.txt": []byte("b"),
	})

	got, err := m.Resolve([]string{"sub/b.txt"})
	if err != nil {
		t.Fatalf("Resolve: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"sub/b.txt"}, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryResolveGlob(t *testing.T) {
	m := NewMemory(map[string][]byte{
		"a.txt":     []byte("a"),
		"b.txt":     []byte("b"),
		"sub/c.txt": []byte("c"),
		"d.md":      []byte("d"),
	})

	got, err := m.Resolve([]string{"*.txt"})
	if err != nil {
		t.Fatalf("Resolve: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a.txt", "b.txt"}, got); diff != "" {
		t.Errorf("*.txt mismatch (-want +got):\n%s", diff)
	}

	got, err = m.Resolve([]string{"**/*.txt"})
	if err != nil {
		t.Fatalf("Resolve: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a.txt", "b.txt", "sub/c.txt"}, got); diff != "" {
		t.Errorf("**/*.txt mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryResolveNoMatch(t *testing.T) {
	m := NewMemory(map[string][]byte{"a.txt": []byte("a")})

	_, err := m.Resolve([]string{"*.sql"})
	var noMatch NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("Resolve: got %v, want NoMatchError", err)
	}

	if _, err := m.Resolve(nil); !errors.Is(err, ErrNoPatterns) {
		t.Errorf("Resolve(nil): got %v, want ErrNoPatterns", err)
	}
}

func TestMemoryReadAndAdd(t *testing.T) {
	m := NewMemory(nil)
	if _, err := m.ReadFile("missing.txt"); err == nil {
		t.Errorf("ReadFile on missing file: want error, got nil")
	}

	m.AddFile("x.txt", []byte("content"))
	got, err := m.ReadFile("x.txt")
	if err != nil {
		t.Fatalf("ReadFile: unexpected error: %v", err)
	}
	if string(got) != "content" {
		t.Errorf("ReadFile = %q, want %q", got, "content")
	}
}

func TestLoadBuffer(t *testing.T) {
	m := NewMemory(map[string][]byte{"main.txt": []byte("ab\ncd")})

	buf, err := LoadBuffer(m, "main.txt")
	if err != nil {
		t.Fatalf("LoadBuffer: unexpected error: %v", err)
	}
	if buf.Name() != "main.txt" {
		t.Errorf("Name() = %q, want %q", buf.Name(), "main.txt")
	}
	if buf.Source() != "ab\ncd" {
		t.Errorf("Source() = %q, want %q", buf.Source(), "ab\ncd")
	}
}

func TestOSResolve(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := OS{}.Resolve([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("Resolve: unexpected error: %v", err)
	}
	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}

	var noMatch NoMatchError
	if _, err := (OS{}).Resolve([]string{filepath.Join(dir, "*.sql")}); !errors.As(err, &noMatch) {
		t.Errorf("Resolve: got %v, want NoMatchError", err)
	}
}
