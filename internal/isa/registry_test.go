package isa

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRegistryKnowsEveryBuiltin(t *testing.T) {
	reg := NewRegistry()
	require.Equal(t, len(builtin), reg.Len())
	for _, spec := range builtin {
		require.True(t, reg.IsValid(spec.Name), spec.Name)
		got, ok := reg.Lookup(spec.Name)
		require.True(t, ok, spec.Name)
		require.Equal(t, spec, got)
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	reg := NewRegistry()
	if reg.IsValid("pob") {
		t.Fatalf("expected lower-case pob to be rejected")
	}
	if !reg.IsValid("ŁAD") {
		t.Fatalf("expected ŁAD to be registered")
	}
	if reg.IsValid("LAD") {
		t.Fatalf("expected LAD without the accent to be rejected")
	}
}

func TestByCategory(t *testing.T) {
	reg := NewRegistry()
	var names []string
	for _, s := range reg.ByCategory(ControlFlow) {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"SOB", "SOM", "SOZ", "STP"}, names)
	require.Len(t, reg.ByCategory(InputOutput), 2)
}

func TestWithoutExtended(t *testing.T) {
	base := NewRegistry().WithoutExtended()
	for _, name := range []string{"MNO", "DZI", "MOD"} {
		if base.IsValid(name) {
			t.Fatalf("%s should not be part of the base set", name)
		}
	}
	if !base.IsValid("DOD") {
		t.Fatalf("DOD missing from base set")
	}
}

func TestSimilarTo(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		in    string
		first string
	}{
		{"DOX", "DOD"},
		{"dox", "DOD"},
		{"POBB", "POB"},
		{"lad", "ŁAD"},
		{"STOP", "STP"},
	}
	for _, tt := range tests {
		got := reg.SimilarTo(tt.in)
		if len(got) == 0 || got[0] != tt.first {
			t.Fatalf("SimilarTo(%q) = %v, want first %q", tt.in, got, tt.first)
		}
	}
	if got := reg.SimilarTo("COMPLETELY_UNKNOWN"); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}

func TestSimilarToBreaksTiesByName(t *testing.T) {
	got := NewRegistry().SimilarTo("SOX")
	// SOB, SOM, SOZ are all one edit away
	require.Equal(t, []string{"SOB", "SOM", "SOZ"}, got[:3])
}

func TestLevenshtein(t *testing.T) {
	require.Equal(t, 3, Levenshtein([]rune("kitten"), []rune("sitting")))
	require.Equal(t, 0, Levenshtein([]rune("ŁAD"), []rune("ŁAD")))
	require.Equal(t, 1, Levenshtein([]rune("LAD"), []rune("ŁAD")))
	require.Equal(t, 3, Levenshtein(nil, []rune("abc")))
}

func TestLevenshteinProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := []rune(rapid.StringN(0, 8, -1).Draw(t, "a"))
		b := []rune(rapid.StringN(0, 8, -1).Draw(t, "b"))
		d := Levenshtein(a, b)
		if d != Levenshtein(b, a) {
			t.Fatalf("distance not symmetric for %q %q", string(a), string(b))
		}
		if d > max(len(a), len(b)) {
			t.Fatalf("distance %d exceeds longest input", d)
		}
		if Levenshtein(a, a) != 0 {
			t.Fatalf("distance to self must be zero")
		}
	})
}

func TestSimilarToReturnsExactNameFirst(t *testing.T) {
	reg := NewRegistry()
	names := reg.Names()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.SampledFrom(names).Draw(t, "name")
		got := reg.SimilarTo(name)
		if len(got) == 0 || got[0] != name {
			t.Fatalf("SimilarTo(%q) = %v", name, got)
		}
	})
}
