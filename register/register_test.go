package register

import "testing"

func TestLookupGPRSpellings(t *testing.T) {
	cases := []struct {
		spelling string
		want     int
	}{
		{"t0", 8},
		{"$t0", 8},
		{"8", 8},
		{"RA", 31},
		{"$ra", 31},
		{"ZERO", 0},
	}
	for _, c := range cases {
		idx, bank, ok := Lookup(c.spelling)
		if !ok {
			t.Errorf("Lookup(%q): not found", c.spelling)
			continue
		}
		if bank != GPR {
			t.Errorf("Lookup(%q): bank = %v, want GPR", c.spelling, bank)
		}
		if idx != c.want {
			t.Errorf("Lookup(%q) = %d, want %d", c.spelling, idx, c.want)
		}
	}
}

func TestLookupFPRSpellings(t *testing.T) {
	idx, bank, ok := Lookup("$f12")
	if !ok || bank != FPR || idx != 12 {
		t.Errorf("Lookup($f12) = (%d, %v, %v), want (12, FPR, true)", idx, bank, ok)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, _, ok := Lookup("not_a_register"); ok {
		t.Fatal("expected unknown spelling to miss")
	}
}

func TestIsFPR(t *testing.T) {
	cases := []struct {
		operand string
		want    bool
	}{
		{"f0", true},
		{"$f31", true},
		{"f32", false},
		{"t0", false},
		{"$t0", false},
		{"fx", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsFPR(c.operand); got != c.want {
			t.Errorf("IsFPR(%q) = %v, want %v", c.operand, got, c.want)
		}
	}
}
