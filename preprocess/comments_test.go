package preprocess

import "testing"

func TestStripLineComment(t *testing.T) {
	got, block := StripComment(`addiu t0, t0, 1 // bump counter`, false)
	if got != "addiu t0, t0, 1" || block {
		t.Errorf("got %q, %v", got, block)
	}
}

func TestStripHashComment(t *testing.T) {
	got, block := StripComment(`addiu t0, t0, 1 # bump counter`, false)
	if got != "addiu t0, t0, 1" || block {
		t.Errorf("got %q, %v", got, block)
	}
}

func TestHashInsideStringIsLiteral(t *testing.T) {
	got, block := StripComment(`print "a#b"`, false)
	if got != `print "a#b"` || block {
		t.Errorf("got %q, %v", got, block)
	}
}

func TestHashAfterClosedStringIsComment(t *testing.T) {
	got, block := StripComment(`print "ok" # trailing`, false)
	if got != `print "ok"` || block {
		t.Errorf("got %q, %v", got, block)
	}
}

func TestBlockCommentOnSingleLine(t *testing.T) {
	got, block := StripComment(`nop /* skip this */ nop`, false)
	if got != "nop  nop" || block {
		t.Errorf("got %q, %v", got, block)
	}
}

func TestBlockCommentSpansLines(t *testing.T) {
	_, block := StripComment(`nop /* open forever`, false)
	if !block {
		t.Fatal("expected block comment to stay open")
	}
	got, block2 := StripComment(`still inside */ nop`, block)
	if got != "nop" || block2 {
		t.Errorf("got %q, %v", got, block2)
	}
}

func TestBlockCommentResetsEachPass(t *testing.T) {
	// simulate: line opens a block comment, pass resets, closing marker on
	// its own is then a plain line with no special meaning.
	_, block := StripComment(`nop /* open`, false)
	if !block {
		t.Fatal("expected open block comment")
	}
	got, block2 := StripComment(`close */ add t0, t0, t0`, false) // reset to false
	if block2 {
		t.Errorf("fresh pass should not see an already-open block comment")
	}
	if got != "close */ add t0, t0, t0" {
		t.Errorf("got %q", got)
	}
}

func TestBackslashEscapesQuoteForHashCounting(t *testing.T) {
	got, _ := StripComment(`print "a\"#b"`, false)
	if got != `print "a\"#b"` {
		t.Errorf("got %q, want escaped quote to not close the string before #", got)
	}
}

func TestTrimsSurroundingWhitespace(t *testing.T) {
	got, _ := StripComment(`   nop   `, false)
	if got != "nop" {
		t.Errorf("got %q", got)
	}
}
