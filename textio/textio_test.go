package textio

import (
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTripISO88591(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.asm")

	io := FileIO{}
	text := "nop\nhexcode $DEADBEEF\n"
	if err := io.WriteAll(path, text, ISO88591); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	lines, err := io.ReadAllLines(path, ISO88591)
	if err != nil {
		t.Fatalf("ReadAllLines: %v", err)
	}
	want := []string{"nop", "hexcode $DEADBEEF"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.asm")
	io := FileIO{}
	if io.Exists(path) {
		t.Fatal("expected Exists to report false before the file is written")
	}
	if err := io.WriteAll(path, "nop\n", UTF8); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if !io.Exists(path) {
		t.Fatal("expected Exists to report true after the file is written")
	}
}

func TestReadAllLinesUnknownEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.asm")
	io := FileIO{}
	if err := io.WriteAll(path, "nop\n", UTF8); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if _, err := io.ReadAllLines(path, "shift-jis"); err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}

func TestExistsOnDirectoryIsFalse(t *testing.T) {
	io := FileIO{}
	if io.Exists(t.TempDir()) {
		t.Fatal("a directory should not satisfy Exists")
	}
}
