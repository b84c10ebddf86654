package source

import "strings"

// Lines splits text on '\n', dropping a trailing '\r' from each line. A final
// newline does not produce an extra empty line.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// RuneLines is Lines with every line decoded to code points.
func RuneLines(text string) [][]rune {
	lines := Lines(text)
	out := make([][]rune, len(lines))
	for i, l := range lines {
		out[i] = []rune(l)
	}
	return out
}

// LineAt returns line n (zero-based) of text.
func LineAt(text string, n int) ([]rune, bool) {
	lines := Lines(text)
	if n < 0 || n >= len(lines) {
		return nil, false
	}
	return []rune(lines[n]), true
}

// WordAtPosition resolves the word under pos in text.
func WordAtPosition(text string, pos Position) (Word, bool) {
	line, ok := LineAt(text, pos.Line)
	if !ok {
		return Word{}, false
	}
	return WordAt(line, pos.Char)
}

// CodePart returns the portion of line before a ';' comment.
func CodePart(line []rune) []rune {
	for i, r := range line {
		if r == ';' {
			return line[:i]
		}
	}
	return line
}

// LeadingSpace returns the number of leading space and tab characters.
func LeadingSpace(line []rune) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}
