// Package register holds the static GPR/FPR name tables for the Emotion
// Engine dialect: every spelling a register can appear under, mapped to its
// 0..31 index.
package register

import (
	"strconv"
	"strings"
)

// Bank distinguishes the two register files the encoder has to know about.
type Bank int

const (
	GPR Bank = iota
	FPR
)

// GPRNames is the conventional MIPS register file, index == position.
var GPRNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

var gprTable map[string]int
var fprTable map[string]int

func init() {
	gprTable = make(map[string]int, len(GPRNames)*3)
	for i, name := range GPRNames {
		register(gprTable, name, i)
		register(gprTable, "$"+name, i)
		register(gprTable, strconv.Itoa(i), i)
	}

	fprTable = make(map[string]int, 32*2)
	for i := 0; i < 32; i++ {
		name := "f" + strconv.Itoa(i)
		register(fprTable, name, i)
		register(fprTable, "$"+name, i)
	}
}

func register(table map[string]int, spelling string, index int) {
	table[strings.ToLower(spelling)] = index
}

// Lookup resolves a cleaned operand spelling against the GPR table, then the
// FPR table, case-insensitively. It returns the bank the match was found in.
func Lookup(spelling string) (index int, bank Bank, ok bool) {
	key := strings.ToLower(spelling)
	if idx, found := gprTable[key]; found {
		return idx, GPR, true
	}
	if idx, found := fprTable[key]; found {
		return idx, FPR, true
	}
	return 0, GPR, false
}

// LookupGPR resolves a cleaned operand spelling against the GPR table only.
func LookupGPR(spelling string) (int, bool) {
	idx, ok := gprTable[strings.ToLower(spelling)]
	return idx, ok
}

// LookupFPR resolves a cleaned operand spelling against the FPR table only.
func LookupFPR(spelling string) (int, bool) {
	idx, ok := fprTable[strings.ToLower(spelling)]
	return idx, ok
}

// IsFPR classifies an operand as an FPR spelling: after stripping at most one
// leading '$', it must match f<n> with 0 <= n < 32.
func IsFPR(operand string) bool {
	s := operand
	if strings.HasPrefix(s, "$") {
		s = s[1:]
	}
	s = strings.ToLower(s)
	if len(s) < 2 || s[0] != 'f' {
		return false
	}
	digits := s[1:]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
		if n > 31 {
			return false
		}
	}
	return n >= 0 && n < 32
}
