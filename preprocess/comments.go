// Package preprocess implements the two line-level transforms that run
// ahead of the compiler proper: comment stripping and import expansion.
package preprocess

import "strings"

// StripComment removes //, #, and /* ... */ comments from one line,
// honouring double-quoted string literals and a block comment that may have
// opened on an earlier line. inBlockComment is threaded across consecutive
// calls for one compile pass and must be reset to false at the start of
// each pass.
func StripComment(line string, inBlockComment bool) (stripped string, outBlockComment bool) {
	var out strings.Builder
	inQuote := false
	i := 0
	n := len(line)

	for i < n {
		if inBlockComment {
			if end := strings.Index(line[i:], "*/"); end >= 0 {
				i += end + 2
				inBlockComment = false
				continue
			}
			break
		}

		c := line[i]

		if c == '\\' && i+1 < n {
			out.WriteByte(c)
			out.WriteByte(line[i+1])
			i += 2
			continue
		}

		if c == '"' {
			inQuote = !inQuote
			out.WriteByte(c)
			i++
			continue
		}

		if !inQuote {
			if strings.HasPrefix(line[i:], "/*") {
				inBlockComment = true
				i += 2
				continue
			}
			if strings.HasPrefix(line[i:], "//") {
				break
			}
			if c == '#' {
				break
			}
		}

		out.WriteByte(c)
		i++
	}

	return strings.TrimSpace(out.String()), inBlockComment
}
