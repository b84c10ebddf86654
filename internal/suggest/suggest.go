// Package suggest proposes replacement instructions for unknown words.
package suggest

import (
	"strings"

	"asmodeus/internal/isa"
)

// commonTypos maps lower-cased misspellings to canonical names.
var commonTypos = map[string]string{
	"pob":     "POB",
	"dod":     "DOD",
	"ode":     "ODE",
	"sob":     "SOB",
	"som":     "SOM",
	"soz":     "SOZ",
	"stp":     "STP",
	"lad":     "ŁAD",
	"ład":     "ŁAD",
	"wejscie": "WEJSCIE",
	"wejście": "WEJSCIE",
	"wyjscie": "WYJSCIE",
	"wyjście": "WYJSCIE",
	"mno":     "MNO",
	"dzi":     "DZI",
	"mod":     "MOD",
	"sdp":     "SDP",
	"pzs":     "PZS",
	"dns":     "DNS",
	"czm":     "CZM",
	"msk":     "MSK",
	"pwr":     "PWR",
}

// contextWords maps domain vocabulary to the instructions it hints at.
var contextWords = map[string][]string{
	"add": {"DOD"}, "plus": {"DOD"}, "sum": {"DOD"},
	"subtract": {"ODE"}, "minus": {"ODE"}, "sub": {"ODE"},
	"load": {"POB"}, "get": {"POB"}, "fetch": {"POB"},
	"store": {"ŁAD"}, "save": {"ŁAD"}, "put": {"ŁAD"},
	"jump": {"SOB", "SOM", "SOZ"}, "goto": {"SOB", "SOM", "SOZ"}, "branch": {"SOB", "SOM", "SOZ"},
	"stop": {"STP"}, "halt": {"STP"}, "end": {"STP"},
	"input": {"WEJSCIE"}, "read": {"WEJSCIE"},
	"output": {"WYJSCIE"}, "print": {"WYJSCIE"}, "write": {"WYJSCIE"},
	"multiply": {"MNO"}, "mul": {"MNO"},
	"divide": {"DZI"}, "div": {"DZI"},
	"modulo": {"MOD"}, "remainder": {"MOD"},
}

type Engine struct {
	reg *isa.Registry
}

func New(reg *isa.Registry) *Engine {
	return &Engine{reg: reg}
}

// Similar returns registered names close to unknown, closest first.
func (e *Engine) Similar(unknown string) []string {
	return e.reg.SimilarTo(unknown)
}

// CommonFixes returns Similar followed by typo-map and Ł-substitution
// candidates, without duplicates. Every result is a registered name.
func (e *Engine) CommonFixes(unknown string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] && e.reg.IsValid(name) {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range e.Similar(unknown) {
		add(name)
	}
	if fixed, ok := commonTypos[strings.ToLower(unknown)]; ok {
		add(fixed)
	}
	if strings.ContainsRune(unknown, 'L') && !strings.ContainsRune(unknown, 'Ł') {
		add(strings.ReplaceAll(unknown, "L", "Ł"))
	}
	return out
}

// ContextualAlternatives maps a context word such as "add" or "jump" to the
// registered instructions it suggests.
func (e *Engine) ContextualAlternatives(context string) []string {
	var out []string
	for _, name := range contextWords[strings.ToLower(strings.TrimSpace(context))] {
		if e.reg.IsValid(name) {
			out = append(out, name)
		}
	}
	return out
}
