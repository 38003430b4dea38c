package render

import "strings"

// wrapWidth is the fixed wrap column for event text inside a cell, counted
// in runes. Not user configurable.
const wrapWidth = 14

// bullet prefixes each event block inside a day cell.
const bullet = "• "

// wrap greedily word-wraps s to width runes per line. Words longer than the
// width (the common case for CJK text, which has no spaces) are hard-broken.
func wrap(s string, width int) string {
	var lines []string
	line := ""
	lineLen := 0

	flush := func() {
		if lineLen > 0 {
			lines = append(lines, line)
			line = ""
			lineLen = 0
		}
	}

	for _, word := range strings.Fields(s) {
		runes := []rune(word)

		// Hard-break words that cannot fit on any line.
		for len(runes) > width {
			room := width - lineLen
			if lineLen > 0 {
				room-- // account for the joining space
			}
			if room <= 0 {
				flush()
				continue
			}
			if lineLen > 0 {
				line += " "
			}
			line += string(runes[:room])
			runes = runes[room:]
			lineLen = width
			flush()
		}

		n := len(runes)
		switch {
		case lineLen == 0:
			line = string(runes)
			lineLen = n
		case lineLen+1+n <= width:
			line += " " + string(runes)
			lineLen += 1 + n
		default:
			flush()
			line = string(runes)
			lineLen = n
		}
	}
	flush()

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}
