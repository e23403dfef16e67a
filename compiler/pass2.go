package compiler

import (
	"math"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"

	"eeasm/opcode"
	"eeasm/operand"
	"eeasm/output"
	"eeasm/preprocess"
)

// pass2 re-walks the same expanded source, this time emitting a formatted
// output line per 32-bit word. Label definitions were already bound during
// pass 1 and are only looked up here.
func (d *Driver) pass2(lines []preprocess.SourceLine, labels *LabelTable, mode output.Mode, addressFormatChar string) ([]string, []ErrorRecord) {
	var out []string
	var errs []ErrorRecord
	var currentAddress uint32
	inBlockComment := false

	emit := func(word uint32) {
		if d.Verbose {
			pp.Fprintf(os.Stderr, "adding %v @ %v\n", word, currentAddress)
		}
		out = append(out, output.FormatLine(currentAddress, word, mode, addressFormatChar))
		currentAddress += 4
	}

	for _, l := range lines {
		var text string
		text, inBlockComment = preprocess.StripComment(l.Text, inBlockComment)
		if text == "" {
			continue
		}

		if m := labelDefPattern.FindStringSubmatch(text); m != nil {
			text = strings.TrimSpace(m[2])
			if text == "" {
				continue
			}
		}

		word, rest := splitMnemonic(text)
		lname := strings.ToLower(word)

		switch lname {
		case "address":
			v, err := parseAddressValue(rest)
			if err != nil {
				errs = append(errs, errorf(l, currentAddress, "%s", err))
				continue
			}
			currentAddress = v
			continue

		case "print":
			decoded, err := parseQuotedString(rest)
			if err != nil {
				errs = append(errs, errorf(l, currentAddress, "%s", err))
				continue
			}
			for _, w := range printWords(decoded) {
				emit(w)
			}
			continue

		case "hexcode":
			arg := strings.TrimSpace(rest)
			// an over-long $/0x literal keeps only its low 8 hex digits
			for _, prefix := range []string{"$", "0x", "0X"} {
				if strings.HasPrefix(arg, prefix) && len(arg)-len(prefix) > 8 {
					arg = prefix + arg[len(arg)-8:]
					break
				}
			}
			v, err := operand.Parse(arg, labels, true)
			if err != nil {
				errs = append(errs, errorf(l, currentAddress, "invalid hexcode operand: %s", err))
				continue
			}
			emit(uint32(v))
			continue

		case "float":
			f, err := parseFloatValue(rest)
			if err != nil {
				errs = append(errs, errorf(l, currentAddress, "%s", err))
				continue
			}
			emit(floatBits(f))
			continue

		case "const":
			args := splitArgs(rest)
			if len(args) != 2 {
				errs = append(errs, errorf(l, currentAddress, "const requires a label and a value"))
				continue
			}
			v, err := operand.Parse(args[1], labels, true)
			if err != nil {
				errs = append(errs, errorf(l, currentAddress, "invalid const value: %s", err))
				continue
			}
			emit(uint32(v))
			continue

		case "space":
			emit(0)
			continue
		}

		info, ok := opcode.Lookup(word)
		if !ok {
			errs = append(errs, errorf(l, currentAddress, "unknown mnemonic %q", word))
			continue
		}

		args := splitArgs(rest)
		words, err := encodeInstruction(lname, info, args, labels, currentAddress)
		if err != nil {
			errs = append(errs, errorf(l, currentAddress, "%s: %s", word, err))
			continue
		}
		for _, w := range words {
			emit(w)
		}
	}

	return out, errs
}

func floatBits(f float32) uint32 {
	return math.Float32bits(f)
}
