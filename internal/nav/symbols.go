package nav

import (
	"sort"
	"strings"

	"asmodeus/internal/source"
)

// Symbol is a label defined in a document.
type Symbol struct {
	Name string
	Span source.Span
}

// DocumentSymbols lists labels in document order. A label is the valid
// identifier before the first ':' of a line's code part.
func DocumentSymbols(text string) []Symbol {
	var out []Symbol
	for n, line := range source.RuneLines(text) {
		code := source.CodePart(line)
		lead := source.LeadingSpace(code)
		for i := lead; i < len(code); i++ {
			if code[i] != ':' {
				continue
			}
			name := string(code[lead:i])
			if source.IsValidSymbolName(name) {
				out = append(out, Symbol{Name: name, Span: source.NewSpan(n, lead, i)})
			}
			break
		}
	}
	return out
}

// WorkspaceSymbol is a Symbol qualified by its document.
type WorkspaceSymbol struct {
	Symbol
	URI string
}

// WorkspaceSymbols searches labels of all docs (uri to text) whose name
// contains query, ignoring case. Results are ordered by uri, then position.
func WorkspaceSymbols(docs map[string]string, query string) []WorkspaceSymbol {
	q := strings.ToLower(query)
	var out []WorkspaceSymbol
	for uri, text := range docs {
		for _, sym := range DocumentSymbols(text) {
			if strings.Contains(strings.ToLower(sym.Name), q) {
				out = append(out, WorkspaceSymbol{Symbol: sym, URI: uri})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].URI != out[j].URI {
			return out[i].URI < out[j].URI
		}
		return out[i].Span.Less(out[j].Span)
	})
	return out
}
