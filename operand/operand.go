// Package operand implements the single-operand parser described by the
// assembler's grammar: a fixed priority order between immediate-context
// hex, register names, 0x-hex, $-hex, decimal, and label references.
package operand

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"eeasm/register"
)

// Labels is the read-only view the operand parser needs of the label table:
// a case-insensitive name to address lookup. The compiler driver's label
// table satisfies this directly.
type Labels interface {
	Lookup(name string) (int32, bool)
}

// MapLabels adapts a plain map (already lower-cased keys) to Labels, used by
// callers and tests that don't need the full driver-owned table.
type MapLabels map[string]int32

func (m MapLabels) Lookup(name string) (int32, bool) {
	v, ok := m[strings.ToLower(name)]
	return v, ok
}

// Parse resolves a single trimmed operand string to its signed 32-bit
// encoding value. immediateContext selects whether a bare "$hex" spelling is
// read as an immediate (true) or only considered after a register and 0x-hex
// miss (false, memory-offset and non-immediate positions).
func Parse(op string, labels Labels, immediateContext bool) (int32, error) {
	op = strings.TrimSpace(op)
	if op == "" {
		return 0, fmt.Errorf("empty operand")
	}

	if immediateContext && strings.HasPrefix(op, "$") {
		v, err := parseHex32(op[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid immediate hex %q: %w", op, err)
		}
		return v, nil
	}

	if idx, ok := lookupRegisterCleaned(op); ok {
		return int32(idx), nil
	}

	if hasHexPrefix(op) {
		v, err := parseHex32(op[2:])
		if err != nil {
			return 0, fmt.Errorf("invalid hex literal %q: %w", op, err)
		}
		return v, nil
	}

	if !immediateContext && strings.HasPrefix(op, "$") {
		// the register table already carries $-prefixed spellings, so a hit
		// here would have been caught by lookupRegisterCleaned above; reaching
		// this point means it's a $-hex literal instead.
		v, err := parseHex32(op[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid hex literal %q: %w", op, err)
		}
		return v, nil
	}

	if v, err, isDecimal := tryDecimal(op); isDecimal {
		if err != nil {
			return 0, fmt.Errorf("invalid decimal literal %q: %w", op, err)
		}
		return v, nil
	}

	if v, ok := lookupLabel(op, labels); ok {
		return v, nil
	}

	return 0, fmt.Errorf("unresolved operand %q: not a register, literal, or known label", op)
}

// lookupRegisterCleaned tries the literal spelling, then the begin/end
// label-sigil tolerant variants, in that order.
func lookupRegisterCleaned(op string) (int, bool) {
	for _, candidate := range registerCandidates(op) {
		if idx, _, ok := register.Lookup(candidate); ok {
			return idx, true
		}
	}
	return 0, false
}

func registerCandidates(op string) []string {
	candidates := []string{op}

	if strings.HasPrefix(op, ":") || strings.HasPrefix(op, ";") {
		tail := op[1:]
		tail = strings.TrimSuffix(tail, ":")
		tail = strings.TrimSuffix(tail, ";")
		candidates = append(candidates, tail)
	}

	if strings.HasSuffix(op, ":") || strings.HasSuffix(op, ";") {
		candidates = append(candidates, op[:len(op)-1])
	}

	return candidates
}

func lookupLabel(op string, labels Labels) (int32, bool) {
	if v, ok := labels.Lookup(op); ok {
		return v, true
	}
	stripped := strings.TrimPrefix(op, ":")
	stripped = strings.TrimSuffix(stripped, ":")
	if stripped != op {
		if v, ok := labels.Lookup(stripped); ok {
			return v, true
		}
	}
	return 0, false
}

func hasHexPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

func parseHex32(tail string) (int32, error) {
	if tail == "" {
		return 0, fmt.Errorf("empty hex digits")
	}
	v, err := strconv.ParseUint(tail, 16, 32)
	if err != nil {
		return 0, err
	}
	return int32(uint32(v)), nil
}

// tryDecimal reports whether op looks like a decimal integer at all (so
// callers can fall through to label lookup instead of surfacing a parse
// error for something that was never meant to be a number).
func tryDecimal(op string) (int32, error, bool) {
	if !decimalPattern.MatchString(op) {
		return 0, nil, false
	}
	v, err := strconv.ParseInt(op, 10, 64)
	if err != nil {
		return 0, err, true
	}
	if v < -(1<<31) || v > (1<<32)-1 {
		return 0, fmt.Errorf("decimal literal %q out of 32-bit range", op), true
	}
	return int32(uint32(v)), nil, true
}

var decimalPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// memoryOffset matches "offset(base)": offset may be hex (0x.. or $..),
// decimal, or a label; base is a register spelling, possibly $-prefixed.
var memoryOffset = regexp.MustCompile(`^\s*([$]?[0-9A-Za-z_:]+)\s*\(\s*([$]?\w+)\s*\)\s*$`)

// ParseMemoryOffset parses the "offset(base)" syntax used by load/store
// instructions, returning the immediate offset and the base register index.
func ParseMemoryOffset(op string, labels Labels) (imm int32, rs int32, err error) {
	m := memoryOffset.FindStringSubmatch(strings.TrimSpace(op))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid memory operand %q: expected offset(base)", op)
	}
	offsetPart, basePart := m[1], m[2]

	imm, err = parseMemoryOffsetImmediate(offsetPart, labels)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid memory operand %q: %w", op, err)
	}

	base, err := Parse(basePart, labels, false)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid memory operand %q: bad base register: %w", op, err)
	}

	return imm, base, nil
}

func parseMemoryOffsetImmediate(offsetPart string, labels Labels) (int32, error) {
	switch {
	case strings.HasPrefix(offsetPart, "$"):
		return parseHex32(offsetPart[1:])
	case hasHexPrefix(offsetPart):
		return parseHex32(offsetPart[2:])
	}
	if v, err, isDecimal := tryDecimal(offsetPart); isDecimal {
		return v, err
	}
	if v, ok := lookupLabel(offsetPart, labels); ok {
		return v, nil
	}
	return 0, fmt.Errorf("offset %q is neither hex, decimal, nor a known label", offsetPart)
}
