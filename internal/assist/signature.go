package assist

import (
	"strings"
	"unicode"

	"asmodeus/internal/isa"
	"asmodeus/internal/source"
)

// Parameter is one placeholder of a signature.
type Parameter struct {
	Label         string
	Documentation string
}

// Signature describes how an instruction is written.
type Signature struct {
	Label         string
	Documentation string
	Parameters    []Parameter
	// ActiveParameter is -1 while the instruction itself is being typed.
	ActiveParameter int
}

// SignatureHelp returns the signature of the instruction that starts the
// line under pos.
func (a *Assistant) SignatureHelp(text string, pos source.Position) (Signature, bool) {
	line, ok := source.LineAt(text, pos.Line)
	if !ok {
		return Signature{}, false
	}
	before := string(line[:min(max(pos.Char, 0), len(line))])
	words := strings.Fields(stripLabel(before))
	if len(words) == 0 {
		return Signature{}, false
	}
	spec, ok := a.reg.Lookup(words[0])
	if !ok {
		return Signature{}, false
	}
	sig := SignatureOf(spec)
	sig.ActiveParameter = -1
	if len(sig.Parameters) > 0 && (len(words) >= 2 || endsWithSpace(before)) {
		sig.ActiveParameter = 0
	}
	return sig, true
}

// SignatureOf builds the signature of spec.
func SignatureOf(spec isa.Spec) Signature {
	doc := spec.Description
	if spec.Extended {
		doc += " [Extended]. Requires --extended flag"
	}
	sig := Signature{Label: spec.Name, Documentation: doc, ActiveParameter: -1}
	if name := parameterName(spec.Operand); name != "" {
		sig.Label += " " + name
		paramDoc := operandDoc(spec.Operand)
		if spec.Extended {
			paramDoc += ". Requires --extended flag"
		}
		sig.Parameters = []Parameter{{Label: name, Documentation: paramDoc}}
	}
	return sig
}

// stripLabel drops a leading "label:" so the statement after it is analysed.
func stripLabel(s string) string {
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func endsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	return unicode.IsSpace(r[len(r)-1])
}
