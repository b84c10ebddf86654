package suggest

import "strings"

type hint struct {
	context string
	words   []string
}

// commentHints are checked in order against the lower-cased comment text.
var commentHints = []hint{
	{"add", []string{"add", "plus", "dodaj"}},
	{"subtract", []string{"sub", "minus", "odejmij"}},
	{"load", []string{"load", "pobierz", "get"}},
	{"store", []string{"store", "save", "zapisz"}},
	{"jump", []string{"jump", "goto", "skok"}},
	{"stop", []string{"stop", "halt", "koniec"}},
	{"input", []string{"input", "read", "wejście", "wejscie"}},
	{"output", []string{"output", "print", "wyjście", "wyjscie"}},
	{"multiply", []string{"multiply", "mul", "mnożenie"}},
	{"divide", []string{"divide", "div", "dzielenie"}},
	{"modulo", []string{"modulo", "remainder", "reszta"}},
}

// neighbourHints are checked in order against the raw neighbouring line.
var neighbourHints = []hint{
	{"load", []string{"POB", "WEJSCIE"}},
	{"store", []string{"ŁAD", "WYJSCIE"}},
	{"add", []string{"DOD"}},
	{"subtract", []string{"ODE"}},
	{"jump", []string{"SOB", "SOM", "SOZ"}},
}

// ContextFromLine derives a context word for line n: first from keywords in
// its trailing comment, then from opcodes on the previous or next line.
func ContextFromLine(lines []string, n int) (string, bool) {
	if n < 0 || n >= len(lines) {
		return "", false
	}
	if i := strings.IndexByte(lines[n], ';'); i >= 0 {
		comment := strings.ToLower(strings.TrimSpace(lines[n][i+1:]))
		if ctx, ok := match(commentHints, comment); ok {
			return ctx, true
		}
	}
	var neighbours []string
	if n > 0 {
		neighbours = append(neighbours, lines[n-1])
	}
	if n+1 < len(lines) {
		neighbours = append(neighbours, lines[n+1])
	}
	for _, line := range neighbours {
		if ctx, ok := match(neighbourHints, line); ok {
			return ctx, true
		}
	}
	return "", false
}

func match(hints []hint, text string) (string, bool) {
	for _, h := range hints {
		for _, w := range h.words {
			if strings.Contains(text, w) {
				return h.context, true
			}
		}
	}
	return "", false
}
