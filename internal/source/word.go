package source

import "unicode"

// IsWordChar reports whether r may appear inside an identifier or opcode.
// Every component that splits text into words goes through this predicate.
func IsWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Word is an identifier found on a line.
type Word struct {
	Text  string
	Start int
	End   int
}

// Span places the word on the given line.
func (w Word) Span(line int) Span { return Span{Line: line, Start: w.Start, End: w.End} }

// WordAt returns the word surrounding cursor. A cursor at the end of the line
// selects the word before it; a cursor on a non-word character selects nothing.
func WordAt(line []rune, cursor int) (Word, bool) {
	if cursor < 0 || cursor > len(line) {
		return Word{}, false
	}
	if cursor < len(line) && !IsWordChar(line[cursor]) {
		return Word{}, false
	}
	start := cursor
	for start > 0 && IsWordChar(line[start-1]) {
		start--
	}
	end := cursor
	for end < len(line) && IsWordChar(line[end]) {
		end++
	}
	if start == end {
		return Word{}, false
	}
	return Word{Text: string(line[start:end]), Start: start, End: end}, true
}

// IsWholeWordMatch reports whether the match of word at pos is not glued to
// other word characters on either side.
func IsWholeWordMatch(line []rune, pos int, word []rune) bool {
	if pos > 0 && pos-1 < len(line) && IsWordChar(line[pos-1]) {
		return false
	}
	end := pos + len(word)
	if end < len(line) && IsWordChar(line[end]) {
		return false
	}
	return true
}

// IsLabelDeclaration reports whether the match of word at pos is directly
// followed by ':'.
func IsLabelDeclaration(line []rune, pos int, word []rune) bool {
	end := pos + len(word)
	return end < len(line) && line[end] == ':'
}

// IsValidSymbolName reports whether s is a well-formed identifier: a letter or
// underscore followed by letters, digits or underscores.
func IsValidSymbolName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// HasUpperOnly reports whether s consists solely of upper-case letters,
// digits and underscores.
func HasUpperOnly(s string) bool {
	for _, r := range s {
		if r != '_' && !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// FindAll returns the start offsets of every occurrence of word in line,
// including overlapping ones.
func FindAll(line, word []rune) []int {
	if len(word) == 0 || len(word) > len(line) {
		return nil
	}
	var out []int
	for i := 0; i+len(word) <= len(line); i++ {
		if equalRunes(line[i:i+len(word)], word) {
			out = append(out, i)
		}
	}
	return out
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
