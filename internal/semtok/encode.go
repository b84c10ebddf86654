package semtok

import (
	"fmt"

	"fortio.org/safecast"
)

// Encoded is a token relative to its predecessor.
type Encoded struct {
	DeltaLine  int
	DeltaStart int
	Length     int
	Type       Type
	Modifiers  uint32
}

// Encode delta-encodes raw tokens, which must be in document order. The
// start delta is relative to the previous token on the same line and to the
// line start otherwise.
func Encode(raw []Raw) []Encoded {
	out := make([]Encoded, 0, len(raw))
	prevLine, prevChar := 0, 0
	for _, t := range raw {
		e := Encoded{DeltaLine: t.Line - prevLine, Length: t.Length, Type: t.Type, Modifiers: t.Modifiers}
		if e.DeltaLine == 0 {
			e.DeltaStart = t.Char - prevChar
		} else {
			e.DeltaStart = t.Char
		}
		out = append(out, e)
		prevLine, prevChar = t.Line, t.Char
	}
	return out
}

// Decode reverses Encode.
func Decode(enc []Encoded) []Raw {
	out := make([]Raw, 0, len(enc))
	line, char := 0, 0
	for _, e := range enc {
		if e.DeltaLine == 0 {
			char += e.DeltaStart
		} else {
			line += e.DeltaLine
			char = e.DeltaStart
		}
		out = append(out, Raw{Line: line, Char: char, Length: e.Length, Type: e.Type, Modifiers: e.Modifiers})
	}
	return out
}

// Flatten lays tokens out as five integers each, the form sent to clients.
func Flatten(enc []Encoded) ([]uint32, error) {
	out := make([]uint32, 0, len(enc)*5)
	for i, e := range enc {
		for _, v := range [...]int{e.DeltaLine, e.DeltaStart, e.Length} {
			u, err := safecast.Conv[uint32](v)
			if err != nil {
				return nil, fmt.Errorf("token %d: %w", i, err)
			}
			out = append(out, u)
		}
		out = append(out, uint32(e.Type), e.Modifiers)
	}
	return out, nil
}
