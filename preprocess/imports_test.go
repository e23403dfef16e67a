package preprocess

import (
	"strconv"
	"testing"
)

type fakeFS struct {
	files map[string][]string
}

func (f fakeFS) ReadAllLines(path string, encodingName string) ([]string, error) {
	return f.files[path], nil
}

func (f fakeFS) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func TestExpandNoImports(t *testing.T) {
	e := NewExpander(fakeFS{})
	lines, err := e.Expand([]string{"nop", "nop"}, "main.asm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0].Index != 0 || lines[1].Index != 1 {
		t.Fatalf("got %+v", lines)
	}
	if !lines[0].FromMainInput {
		t.Error("top-level lines should be marked FromMainInput")
	}
}

func TestExpandMissingImportEmitsPlaceholder(t *testing.T) {
	e := NewExpander(fakeFS{files: map[string][]string{}})
	lines, err := e.Expand([]string{`import "missing.asm"`}, "main.asm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	want := `// Import failed (not found): missing.asm`
	if lines[0].Text != want {
		t.Errorf("got %q, want %q", lines[0].Text, want)
	}
	if !lines[0].FromMainInput {
		t.Error("placeholder line belongs to the importing (main) file")
	}
}

func TestExpandResolvesRelativeToImportingFile(t *testing.T) {
	e := NewExpander(fakeFS{files: map[string][]string{
		"dir/included.asm": {"addiu t0, t0, 1"},
	}})
	lines, err := e.Expand([]string{`import "included.asm"`}, "dir/main.asm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].Text != "addiu t0, t0, 1" {
		t.Fatalf("got %+v", lines)
	}
	if lines[0].FromMainInput {
		t.Error("imported lines should not be marked FromMainInput")
	}
}

func TestExpandIsOrderPreservingDepthFirst(t *testing.T) {
	e := NewExpander(fakeFS{files: map[string][]string{
		"a.asm": {"line_a1", `import "b.asm"`, "line_a2"},
		"b.asm": {"line_b1", "line_b2"},
	}})
	lines, err := e.Expand([]string{`import "a.asm"`}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, l := range lines {
		got = append(got, l.Text)
	}
	want := []string{"line_a1", "line_b1", "line_b2", "line_a2"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
	for i, l := range lines {
		if l.Index != i {
			t.Errorf("line %d has Index %d, want %d", i, l.Index, i)
		}
	}
}

func TestExpandDepthCapIsFatal(t *testing.T) {
	files := map[string][]string{}
	// build a chain of nested imports that goes deeper than MaxImportDepth
	for i := 0; i < 12; i++ {
		name := depthFile(i)
		next := depthFile(i + 1)
		files[name] = []string{`import "` + next + `"`}
	}
	files[depthFile(12)] = []string{"nop"}

	e := NewExpander(fakeFS{files: files})
	_, err := e.Expand([]string{`import "` + depthFile(0) + `"`}, "")
	if err == nil {
		t.Fatal("expected an error once the import depth cap is exceeded")
	}
}

func depthFile(i int) string {
	return "level" + strconv.Itoa(i) + ".asm"
}
