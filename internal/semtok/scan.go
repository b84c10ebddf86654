package semtok

import (
	"strings"
	"unicode"

	"asmodeus/internal/source"
)

// Opcodes answers whether a word is a registered instruction.
type Opcodes interface {
	IsValid(name string) bool
}

// Raw is a token at an absolute position. Char and Length count code points.
type Raw struct {
	Line      int
	Char      int
	Length    int
	Type      Type
	Modifiers uint32
}

// Scan tokenizes every line of text in document order.
func Scan(text string, ops Opcodes) []Raw {
	var out []Raw
	for n, line := range source.RuneLines(text) {
		out = scanLine(out, n, line, ops)
	}
	return out
}

func scanLine(out []Raw, n int, line []rune, ops Opcodes) []Raw {
	i := 0
	for i < len(line) {
		ch := line[i]
		switch {
		case unicode.IsSpace(ch):
			i++
			continue
		case ch == ';':
			return append(out, Raw{Line: n, Char: i, Length: len(line) - i, Type: TypeComment})
		case ch == '#' || ch == '[' || ch == ']':
			out = append(out, Raw{Line: n, Char: i, Length: 1, Type: TypeOperator})
			i++
			continue
		}

		start := i
		for i < len(line) && source.IsWordChar(line[i]) {
			i++
		}
		if start == i {
			// unknown symbol
			i++
			continue
		}
		word := string(line[start:i])
		followedByColon := i < len(line) && line[i] == ':'
		out = append(out, Raw{Line: n, Char: start, Length: i - start, Type: classify(word, followedByColon, ops)})
	}
	return out
}

func classify(word string, followedByColon bool, ops Opcodes) Type {
	switch {
	case isNumber(word):
		return TypeNumber
	case ops.IsValid(word):
		return TypeKeyword
	case followedByColon:
		return TypeFunction
	case !source.HasUpperOnly(word):
		return TypeFunction
	default:
		return TypeNumber
	}
}

func isNumber(word string) bool {
	if strings.HasPrefix(word, "0x") || strings.HasPrefix(word, "0b") {
		return true
	}
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
