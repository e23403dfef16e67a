package output

import "testing"

func TestFormatLinePS2(t *testing.T) {
	got := FormatLine(0x00100000, 0x24500010, PS2, "-")
	want := "00100000 24500010"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatLinePNACHWithAddressFormatChar(t *testing.T) {
	got := FormatLine(0x00100000, 0x00000000, PNACH, "2")
	want := "patch=1,EE,20100000,extended,00000000"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatLineIgnoresMultiCharFormat(t *testing.T) {
	got := FormatLine(0x00100000, 0, PS2, "ab")
	want := "00100000 00000000"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJoin(t *testing.T) {
	got := Join([]string{"a", "b", "c"})
	if got != "a\nb\nc" {
		t.Errorf("got %q", got)
	}
}
