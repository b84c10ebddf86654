// Package nav resolves label definitions and references by text search.
package nav

import "asmodeus/internal/source"

// DefinitionOf finds the first line whose trimmed content starts with
// "word:". The span covers the label name.
func DefinitionOf(word, text string) (source.Span, bool) {
	if word == "" {
		return source.Span{}, false
	}
	w := []rune(word)
	for n, line := range source.RuneLines(text) {
		lead := source.LeadingSpace(line)
		rest := line[lead:]
		if len(rest) > len(w) && rest[len(w)] == ':' && string(rest[:len(w)]) == word {
			return source.NewSpan(n, lead, lead+len(w)), true
		}
	}
	return source.Span{}, false
}

// ReferencesOf returns every whole-word occurrence of word in document order.
// Label declarations ("word:") are dropped unless includeDeclaration is set.
func ReferencesOf(word, text string, includeDeclaration bool) []source.Span {
	if word == "" {
		return nil
	}
	w := []rune(word)
	var out []source.Span
	for n, line := range source.RuneLines(text) {
		for _, pos := range source.FindAll(line, w) {
			if !source.IsWholeWordMatch(line, pos, w) {
				continue
			}
			if !includeDeclaration && source.IsLabelDeclaration(line, pos, w) {
				continue
			}
			out = append(out, source.NewSpan(n, pos, pos+len(w)))
		}
	}
	return out
}

// DefinitionAt resolves the word under pos and finds its definition.
func DefinitionAt(text string, pos source.Position) (source.Span, bool) {
	w, ok := source.WordAtPosition(text, pos)
	if !ok {
		return source.Span{}, false
	}
	return DefinitionOf(w.Text, text)
}

// ReferencesAt resolves the word under pos and lists its references.
func ReferencesAt(text string, pos source.Position, includeDeclaration bool) []source.Span {
	w, ok := source.WordAtPosition(text, pos)
	if !ok {
		return nil
	}
	return ReferencesOf(w.Text, text, includeDeclaration)
}

// Label describes a label definition.
type Label struct {
	Name string
	Span source.Span
	// Definition is the trimmed text of the defining line.
	Definition string
}

// LabelInfo returns the definition of the label named word.
func LabelInfo(word, text string) (Label, bool) {
	span, ok := DefinitionOf(word, text)
	if !ok {
		return Label{}, false
	}
	line, _ := source.LineAt(text, span.Line)
	return Label{Name: word, Span: span, Definition: trimRunes(line)}, true
}

func trimRunes(line []rune) string {
	start := source.LeadingSpace(line)
	end := len(line)
	for end > start {
		r := line[end-1]
		if r != ' ' && r != '\t' && r != '\r' {
			break
		}
		end--
	}
	return string(line[start:end])
}
