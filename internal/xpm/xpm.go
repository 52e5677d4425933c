// Package xpm parses and rewrites the palette section of XPM image text.
//
// Only palette definition lines are touched. A palette line carries a
// symbol, the literal colour key "c", and either a hex colour or "None":
//
//	".	c #e2da9d",
//	"+	c None",
//
// Dimension headers, pixel rows and any other content pass through
// byte-identical.
package xpm

import "strings"

// Entry is one recolourable palette line: its zero-based line index and the
// lowercase hex colour it declares.
type Entry struct {
	Line int
	Hex  string
}

// token describes the colour value found on a palette line: the byte span
// of the value within the line, and whether it is a hex colour.
type token struct {
	start, end int
	hex        string
	none       bool
}

const hexLen = 7 // "#RRGGBB"

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// findColourToken scans a line for "<ws> c <ws> <value>" where value is a
// 6-hex-digit colour or the word None. It walks the line left to right and
// reports the first match, so no backtracking is involved.
func findColourToken(line string) (token, bool) {
	for i := 1; i < len(line); i++ {
		if line[i] != 'c' || !isSpace(line[i-1]) {
			continue
		}
		j := i + 1
		if j >= len(line) || !isSpace(line[j]) {
			continue
		}
		for j < len(line) && isSpace(line[j]) {
			j++
		}
		if tok, ok := parseValue(line, j); ok {
			return tok, true
		}
	}
	return token{}, false
}

// parseValue reads a colour value at position j. Palette lines in quoted
// XPM source end with `",`, so the value may be followed directly by
// non-space bytes; only the value itself is consumed.
func parseValue(line string, j int) (token, bool) {
	if j < len(line) && line[j] == '#' {
		if len(line)-j < hexLen {
			return token{}, false
		}
		for k := j + 1; k < j+hexLen; k++ {
			if !isHexDigit(line[k]) {
				return token{}, false
			}
		}
		return token{start: j, end: j + hexLen, hex: strings.ToLower(line[j : j+hexLen])}, true
	}
	if len(line)-j >= 4 && strings.EqualFold(line[j:j+4], "none") {
		return token{start: j, end: j + 4, none: true}, true
	}
	return token{}, false
}

// Parse returns the palette colour entries of the given XPM text in line
// order. None entries and non-palette lines are skipped.
func Parse(text string) []Entry {
	var entries []Entry
	for i, line := range strings.Split(text, "\n") {
		tok, ok := findColourToken(line)
		if !ok || tok.none {
			continue
		}
		entries = append(entries, Entry{Line: i, Hex: tok.hex})
	}
	return entries
}

// Rewrite replaces the colour token of every palette line whose colour is a
// key of mapping, leaving all other bytes untouched. The trailing-newline
// convention of the input is preserved. Returns the rewritten text and the
// number of lines changed; zero changes returns the input unchanged.
func Rewrite(text string, mapping map[string]string) (string, int) {
	lines := strings.Split(text, "\n")
	changed := 0

	for i, line := range lines {
		tok, ok := findColourToken(line)
		if !ok || tok.none {
			continue
		}
		newHex, ok := mapping[tok.hex]
		if !ok || newHex == tok.hex {
			continue
		}

		newLine := line[:tok.start] + newHex + line[tok.end:]
		if newLine == line {
			// Fallback: first-occurrence literal substitution. The token
			// span replacement above should always differ, but a mapping
			// value that only changes case would not.
			newLine = strings.Replace(line, tok.hex, newHex, 1)
		}
		if newLine != line {
			lines[i] = newLine
			changed++
		}
	}

	if changed == 0 {
		return text, 0
	}
	return strings.Join(lines, "\n"), changed
}
