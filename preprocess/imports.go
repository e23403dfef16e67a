package preprocess

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"eeasm/textio"
)

// MaxImportDepth is the recursion cap on nested import "..." directives.
// Exceeding it is a fatal preprocessing error: pass 1 never starts.
const MaxImportDepth = 10

// SourceLine is one logical input line after import expansion: its text,
// where it came from, and its position in the flattened sequence.
type SourceLine struct {
	Text          string // raw expanded line text; comments are stripped later, during compilation
	File          string
	Line          int // 1-based within File
	Index         int // 0-based, monotonically increasing across the whole expansion
	FromMainInput bool
}

var importPattern = regexp.MustCompile(`(?i)^\s*import\s+"([^"]+)"`)

// Expander expands import "path" directives recursively.
type Expander struct {
	IO       textio.Reader
	MaxDepth int
}

// NewExpander builds an Expander with the default depth cap.
func NewExpander(io textio.Reader) *Expander {
	return &Expander{IO: io, MaxDepth: MaxImportDepth}
}

// Expand flattens lines (the top-level input) into the ordered sequence of
// SourceLines produced by a depth-first traversal of the import tree.
// file may be empty, in which case relative imports resolve against the
// process working directory.
func (e *Expander) Expand(lines []string, file string) ([]SourceLine, error) {
	counter := 0
	return e.expand(lines, file, dirOf(file), &counter, 0, true)
}

func (e *Expander) expand(lines []string, file, dir string, counter *int, depth int, fromMain bool) ([]SourceLine, error) {
	out := make([]SourceLine, 0, len(lines))
	for i, raw := range lines {
		localLine := i + 1

		m := importPattern.FindStringSubmatch(raw)
		if m == nil {
			out = append(out, SourceLine{
				Text:          raw,
				File:          file,
				Line:          localLine,
				Index:         *counter,
				FromMainInput: fromMain,
			})
			*counter++
			continue
		}

		if depth+1 > e.MaxDepth {
			return nil, fmt.Errorf("import depth exceeded (max %d) importing %q from %s:%d", e.MaxDepth, m[1], file, localLine)
		}

		importPath := normalizeImportPath(m[1])
		resolved := resolveImportPath(dir, importPath)

		if !e.IO.Exists(resolved) {
			out = append(out, SourceLine{
				Text:          fmt.Sprintf("// Import failed (not found): %s", m[1]),
				File:          file,
				Line:          localLine,
				Index:         *counter,
				FromMainInput: fromMain,
			})
			*counter++
			continue
		}

		importedLines, err := e.IO.ReadAllLines(resolved, textio.ISO88591)
		if err != nil {
			return nil, fmt.Errorf("reading import %q: %w", resolved, err)
		}

		expanded, err := e.expand(importedLines, resolved, filepath.Dir(resolved), counter, depth+1, false)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func dirOf(file string) string {
	if file == "" {
		return ""
	}
	return filepath.Dir(file)
}

func normalizeImportPath(p string) string {
	return strings.ReplaceAll(p, "\\", string(filepath.Separator))
}

func resolveImportPath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
