package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"eeasm/preprocess"
)

var labelDefPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):(.*)$`)

// pass1 walks the expanded source once, assigning every instruction and
// directive its address and populating labels. It never encodes anything;
// a line's size is all pass 1 needs to know about it.
func (d *Driver) pass1(lines []preprocess.SourceLine, labels *LabelTable) []ErrorRecord {
	var errs []ErrorRecord
	var currentAddress uint32
	inBlockComment := false

	fail := func(l preprocess.SourceLine, msg string) {
		errs = append(errs, ErrorRecord{
			File:          l.File,
			Line:          l.Line,
			GlobalIndex:   l.Index,
			AttemptedHex:  "N/A",
			Message:       msg,
			OriginalText:  l.Text,
			FromMainInput: l.FromMainInput,
		})
	}

	for _, l := range lines {
		var text string
		text, inBlockComment = preprocess.StripComment(l.Text, inBlockComment)
		if text == "" {
			continue
		}

		if m := labelDefPattern.FindStringSubmatch(text); m != nil {
			if err := labels.Define(m[1], int32(currentAddress)); err != nil {
				fail(l, err.Error())
			}
			text = strings.TrimSpace(m[2])
			if text == "" {
				continue
			}
		}

		word, rest := splitMnemonic(text)
		switch strings.ToLower(word) {
		case "address":
			v, err := parseAddressValue(rest)
			if err != nil {
				fail(l, err.Error())
				continue
			}
			currentAddress = v
		case "print":
			decoded, err := parseQuotedString(rest)
			if err != nil {
				fail(l, err.Error())
				continue
			}
			currentAddress += uint32(printWordCount(decoded)) * 4
		case "setreg":
			currentAddress += 8
		case "const", "space":
			args := splitArgs(rest)
			if len(args) > 0 && args[0] != "" {
				if err := labels.Define(args[0], int32(currentAddress)); err != nil {
					fail(l, err.Error())
				}
			}
			currentAddress += 4
		default:
			currentAddress += 4
		}
	}

	return errs
}

// errorf is a small convenience used by pass 2 to build an ErrorRecord that
// does carry a resolved address.
func errorf(l preprocess.SourceLine, address uint32, format string, args ...any) ErrorRecord {
	return ErrorRecord{
		File:          l.File,
		Line:          l.Line,
		GlobalIndex:   l.Index,
		Address:       address,
		HasAddress:    true,
		AttemptedHex:  "N/A",
		Message:       fmt.Sprintf(format, args...),
		OriginalText:  l.Text,
		FromMainInput: l.FromMainInput,
	}
}
