package operand

import "testing"

func TestParseImmediateHex(t *testing.T) {
	v, err := Parse("$1234", nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x1234 {
		t.Errorf("got %#x, want 0x1234", v)
	}
}

func TestParseImmediateHexEmptyTail(t *testing.T) {
	if _, err := Parse("$", nil, true); err == nil {
		t.Fatal("expected error for empty hex tail")
	}
}

func TestParseRegister(t *testing.T) {
	v, err := Parse("t0", nil, false)
	if err != nil || v != 8 {
		t.Fatalf("Parse(t0) = (%d, %v), want (8, nil)", v, err)
	}
}

func TestParseRegisterWithStrayLabelSigils(t *testing.T) {
	cases := []string{":t0", "t0:", ";t0", "t0;", ":t0:"}
	for _, c := range cases {
		v, err := Parse(c, nil, false)
		if err != nil || v != 8 {
			t.Errorf("Parse(%q) = (%d, %v), want (8, nil)", c, v, err)
		}
	}
}

func TestParse0xHex(t *testing.T) {
	v, err := Parse("0x10", nil, false)
	if err != nil || v != 16 {
		t.Fatalf("Parse(0x10) = (%d, %v), want (16, nil)", v, err)
	}
}

func TestParseNonImmediateDollarHexFallsThroughToLiteral(t *testing.T) {
	v, err := Parse("$DEADBEEF", nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uint32(v) != 0xDEADBEEF {
		t.Errorf("got %#x, want 0xdeadbeef", uint32(v))
	}
}

func TestParseDecimal(t *testing.T) {
	v, err := Parse("-5", nil, false)
	if err != nil || v != -5 {
		t.Fatalf("Parse(-5) = (%d, %v), want (-5, nil)", v, err)
	}
}

func TestParseLabel(t *testing.T) {
	labels := MapLabels{"loop": 0x00100000}
	v, err := Parse("LOOP", labels, false)
	if err != nil || v != 0x00100000 {
		t.Fatalf("Parse(LOOP) = (%#x, %v), want (0x100000, nil)", v, err)
	}
	v, err = Parse(":loop", labels, false)
	if err != nil || v != 0x00100000 {
		t.Fatalf("Parse(:loop) = (%#x, %v), want (0x100000, nil)", v, err)
	}
}

func TestParseUnresolvedLabel(t *testing.T) {
	if _, err := Parse("nosuchlabel", MapLabels{}, false); err == nil {
		t.Fatal("expected error for unresolved label")
	}
}

func TestParseMemoryOffsetHex(t *testing.T) {
	imm, rs, err := ParseMemoryOffset("0x10(t0)", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imm != 16 || rs != 8 {
		t.Errorf("got (%d, %d), want (16, 8)", imm, rs)
	}
}

func TestParseMemoryOffsetDollarHex(t *testing.T) {
	imm, rs, err := ParseMemoryOffset("$FF(sp)", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imm != 0xFF || rs != 29 {
		t.Errorf("got (%d, %d), want (255, 29)", imm, rs)
	}
}

func TestParseMemoryOffsetLabel(t *testing.T) {
	labels := MapLabels{"buf": 4}
	imm, rs, err := ParseMemoryOffset("buf(a0)", labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imm != 4 || rs != 4 {
		t.Errorf("got (%d, %d), want (4, 4)", imm, rs)
	}
}

func TestParseMemoryOffsetMalformed(t *testing.T) {
	if _, _, err := ParseMemoryOffset("not valid at all", nil); err == nil {
		t.Fatal("expected error for malformed memory operand")
	}
}
