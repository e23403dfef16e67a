// Package output renders (address, word) pairs into one of the two textual
// machine-code formats the assembler supports.
package output

import (
	"fmt"
	"strings"
)

// Mode selects the textual machine-code format.
type Mode int

const (
	// PS2 emits "ADDRESS HEXWORD" pairs, used by PlayStation 2 cheat devices.
	PS2 Mode = iota
	// PNACH emits PCSX2's "patch=1,EE,..." textual patch format.
	PNACH
)

// FormatLine renders one (address, word) pair. addressFormatChar, when
// exactly one character and not "-", overwrites the first digit of the
// formatted address — conventionally used to mark a patch region (e.g. "2"
// for an E-type PNACH patch).
func FormatLine(address uint32, word uint32, mode Mode, addressFormatChar string) string {
	addrHex := fmt.Sprintf("%08X", address)
	if len(addressFormatChar) == 1 && addressFormatChar != "-" {
		addrHex = addressFormatChar + addrHex[1:]
	}
	wordHex := fmt.Sprintf("%08X", word)

	switch mode {
	case PNACH:
		return fmt.Sprintf("patch=1,EE,%s,extended,%s", addrHex, wordHex)
	default:
		return fmt.Sprintf("%s %s", addrHex, wordHex)
	}
}

// Join joins formatted lines the way the compiler driver emits its output
// text: newline separated, no trailing newline.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}
