package source

import (
	"testing"

	"pgregory.net/rapid"
)

func TestWordAt(t *testing.T) {
	tests := []struct {
		line   string
		cursor int
		want   string
		start  int
		ok     bool
	}{
		{"    POB #42", 5, "POB", 4, true},
		{"    POB #42", 7, "", 0, false}, // on the space after POB
		{"SOB start", 9, "start", 4, true}, // end of line
		{"    POB #42", 8, "", 0, false},   // on '#'
		{"    POB #42", 9, "42", 9, true},
		{"start:", 0, "start", 0, true},
		{"start:", 5, "", 0, false},
		{"ŁAD wynik", 1, "ŁAD", 0, true},
		{"", 0, "", 0, false},
		{"abc", 4, "", 0, false},
	}
	for _, tt := range tests {
		w, ok := WordAt([]rune(tt.line), tt.cursor)
		if ok != tt.ok {
			t.Fatalf("WordAt(%q, %d) ok=%v, want %v", tt.line, tt.cursor, ok, tt.ok)
		}
		if !ok {
			continue
		}
		if w.Text != tt.want || w.Start != tt.start || w.End != tt.start+len([]rune(tt.want)) {
			t.Fatalf("WordAt(%q, %d) = %+v, want %q at %d", tt.line, tt.cursor, w, tt.want, tt.start)
		}
	}
}

func TestWordAtIsIdempotent(t *testing.T) {
	alphabet := []rune("ab_1 :#;Ł\t")
	rapid.Check(t, func(t *rapid.T) {
		runes := rapid.SliceOfN(rapid.SampledFrom(alphabet), 0, 24).Draw(t, "line")
		cursor := rapid.IntRange(0, len(runes)).Draw(t, "cursor")
		w, ok := WordAt(runes, cursor)
		if !ok {
			return
		}
		for i := w.Start; i < w.End; i++ {
			again, ok := WordAt(runes, i)
			if !ok || again != w {
				t.Fatalf("WordAt(%q, %d) = %+v, want %+v", string(runes), i, again, w)
			}
		}
	})
}

func TestIsWholeWordMatch(t *testing.T) {
	line := []rune("    SOB start_loop ; start")
	if IsWholeWordMatch(line, 8, []rune("start")) {
		t.Fatalf("prefix of start_loop must not match")
	}
	if !IsWholeWordMatch(line, 21, []rune("start")) {
		t.Fatalf("expected whole-word match at end of line")
	}
	if !IsWholeWordMatch([]rune("start:"), 0, []rune("start")) {
		t.Fatalf("expected match before ':'")
	}
}

func TestIsLabelDeclaration(t *testing.T) {
	if !IsLabelDeclaration([]rune("loop: POB x"), 0, []rune("loop")) {
		t.Fatalf("expected declaration")
	}
	if IsLabelDeclaration([]rune("SOB loop"), 4, []rune("loop")) {
		t.Fatalf("reference reported as declaration")
	}
}

func TestIsValidSymbolName(t *testing.T) {
	valid := []string{"start", "_tmp", "loop2", "wynik_końcowy"}
	invalid := []string{"", "2start", "a-b", "x y", "lab:"}
	for _, s := range valid {
		if !IsValidSymbolName(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range invalid {
		if IsValidSymbolName(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestFindAll(t *testing.T) {
	got := FindAll([]rune("aaa"), []rune("aa"))
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("FindAll overlapping = %v", got)
	}
	if FindAll([]rune("abc"), nil) != nil {
		t.Fatalf("empty needle must not match")
	}
}

func TestLines(t *testing.T) {
	got := Lines("a\r\nb\n")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Lines = %q", got)
	}
	if Lines("") != nil {
		t.Fatalf("empty text has no lines")
	}
	if got := Lines("\n"); len(got) != 1 || got[0] != "" {
		t.Fatalf("single newline = %q", got)
	}
}

func TestSpanFromLineCol(t *testing.T) {
	got := SpanFromLineCol(2, 5, 3)
	if got != (Span{Line: 1, Start: 4, End: 7}) {
		t.Fatalf("SpanFromLineCol = %v", got)
	}
	if got := SpanFromLineCol(0, 0, -1); got.End < got.Start {
		t.Fatalf("span end before start: %v", got)
	}
}
