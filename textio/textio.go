// Package textio is the thin text-I/O collaborator the import preprocessor
// consumes: "read file as string using a named character encoding; write
// string using a named character encoding; report existence." It is the
// only place in the module that touches the filesystem.
package textio

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Reader is the read-side of the collaborator contract consumed by the
// import preprocessor.
type Reader interface {
	ReadAllLines(path string, encodingName string) ([]string, error)
	Exists(path string) bool
}

// Writer is the write-side of the contract, used by the surrounding
// application (not the compiler core) to persist a CompilationResult.
type Writer interface {
	WriteAll(path string, text string, encodingName string) error
}

// FileIO is the default Reader/Writer backed by the real filesystem.
type FileIO struct{}

var _ Reader = FileIO{}
var _ Writer = FileIO{}

// Named encodings. The compiler's own byte semantics only ever call for
// ISO-8859-1 (imports, print); Windows-1252 is exposed for the surrounding
// application per §6.
const (
	ISO88591    = "ISO-8859-1"
	Windows1252 = "Windows-1252"
	UTF8        = "UTF-8"
)

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "UTF-8", "UTF8":
		return nil, nil // nil means "bytes are already UTF-8, pass through"
	case "ISO-8859-1", "ISO8859-1", "LATIN1", "LATIN-1":
		return charmap.ISO8859_1, nil
	case "WINDOWS-1252", "WINDOWS1252", "CP1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// ReadAllLines reads path's contents decoded from encodingName and splits
// them into lines on "\n", tolerating a trailing "\r" per line.
func (FileIO) ReadAllLines(path string, encodingName string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	decoded, err := decode(raw, encodingName)
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %s: %w", path, encodingName, err)
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(decoded))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Exists reports whether path can be stat'ed and is not a directory.
func (FileIO) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteAll writes text to path, encoded as encodingName.
func (FileIO) WriteAll(path string, text string, encodingName string) error {
	encoded, err := encode(text, encodingName)
	if err != nil {
		return fmt.Errorf("encoding for %s as %s: %w", path, encodingName, err)
	}
	return os.WriteFile(path, encoded, 0o644)
}

func decode(raw []byte, encodingName string) (string, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(raw), nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func encode(text string, encodingName string) ([]byte, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}
	var buf bytes.Buffer
	w := enc.NewEncoder().Writer(&buf)
	if _, err := w.Write([]byte(text)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
