// Package isa holds the instruction set of the Asmodeus machine.
//
// A Registry is built once with NewRegistry and then shared read-only by every
// analysis component; it carries no mutable state, so it is safe to use from
// any number of goroutines.
package isa

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Spec describes one instruction.
type Spec struct {
	Name        string
	Category    Category
	Operand     OperandShape
	Extended    bool
	Description string
	Operation   string
}

// Registry is an immutable name-keyed set of instruction specs.
type Registry struct {
	byName map[string]Spec
	names  []string // sorted
}

// NewRegistry returns the registry of the full Asmodeus instruction set.
func NewRegistry() *Registry {
	return build(builtin)
}

func build(specs []Spec) *Registry {
	r := &Registry{
		byName: make(map[string]Spec, len(specs)),
		names:  make([]string, 0, len(specs)),
	}
	for _, s := range specs {
		if _, dup := r.byName[s.Name]; dup {
			panic(fmt.Sprintf("isa: duplicate instruction %q", s.Name))
		}
		r.byName[s.Name] = s
		r.names = append(r.names, s.Name)
	}
	sort.Strings(r.names)
	return r
}

// WithoutExtended returns a registry restricted to the base instruction set.
func (r *Registry) WithoutExtended() *Registry {
	specs := make([]Spec, 0, len(r.names))
	for _, name := range r.names {
		if s := r.byName[name]; !s.Extended {
			specs = append(specs, s)
		}
	}
	return build(specs)
}

// Lookup returns the spec for an exact (case-sensitive) instruction name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// IsValid reports whether name is a registered instruction.
func (r *Registry) IsValid(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns all instruction names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// All returns every spec, ordered by name.
func (r *Registry) All() []Spec {
	out := make([]Spec, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

// ByCategory returns the specs of one category, ordered by name.
func (r *Registry) ByCategory(cat Category) []Spec {
	var out []Spec
	for _, name := range r.names {
		if s := r.byName[name]; s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of registered instructions.
func (r *Registry) Len() int { return len(r.names) }

// Upper upper-cases s with Polish casing rules, so "ład" becomes "ŁAD".
func Upper(s string) string {
	return cases.Upper(language.Polish).String(s)
}
