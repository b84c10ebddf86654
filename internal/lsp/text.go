package lsp

import (
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
	"go.lsp.dev/protocol"

	"asmodeus/internal/semtok"
	"asmodeus/internal/source"
)

// applyChanges applies content changes in order. A change without a range
// replaces the whole document.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := byteOffset(text, change.Range.Start)
		end := byteOffset(text, change.Range.End)
		if end < start {
			start, end = end, start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// byteOffset maps a UTF-16 based position to a byte offset in text, clamping
// past-the-end lines and columns.
func byteOffset(text string, pos position) int {
	if pos.Line < 0 {
		return 0
	}
	i := 0
	for line := 0; line < pos.Line; line++ {
		nl := strings.IndexByte(text[i:], '\n')
		if nl < 0 {
			return len(text)
		}
		i += nl + 1
	}
	units := 0
	for i < len(text) && text[i] != '\n' && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[i:])
		need := utf16RuneLen(r)
		if need < 0 {
			need = 1
		}
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}

// lineIndex converts between the engine's code-point columns and the
// UTF-16 columns of the protocol for one document snapshot.
type lineIndex struct {
	lines [][]rune
}

func newLineIndex(text string) *lineIndex {
	return &lineIndex{lines: source.RuneLines(text)}
}

func (ix *lineIndex) line(n int) []rune {
	if n < 0 || n >= len(ix.lines) {
		return nil
	}
	return ix.lines[n]
}

// toSource converts a protocol position to a code-point position.
func (ix *lineIndex) toSource(pos position) source.Position {
	line := ix.line(pos.Line)
	units, col := 0, 0
	for col < len(line) {
		need := utf16RuneLen(line[col])
		if need < 0 {
			need = 1
		}
		if units+need > pos.Character {
			break
		}
		units += need
		col++
	}
	return source.Position{Line: max(pos.Line, 0), Char: col}
}

// toSourceSpan maps a range to a single-line span. Ranges spanning lines are
// cut at the end of their first line.
func (ix *lineIndex) toSourceSpan(r lspRange) source.Span {
	start := ix.toSource(r.Start)
	end := ix.toSource(r.End)
	if r.End.Line != r.Start.Line {
		end.Char = len(ix.line(start.Line))
	}
	return source.NewSpan(start.Line, start.Char, end.Char)
}

func (ix *lineIndex) utf16Col(lineNo, col int) int {
	line := ix.line(lineNo)
	units := 0
	for i := 0; i < col; i++ {
		if i >= len(line) {
			units++
			continue
		}
		n := utf16RuneLen(line[i])
		if n < 0 {
			n = 1
		}
		units += n
	}
	return units
}

func (ix *lineIndex) position(lineNo, col int) protocol.Position {
	return protocol.Position{
		Line:      toUint32(lineNo),
		Character: toUint32(ix.utf16Col(lineNo, col)),
	}
}

func (ix *lineIndex) rangeOf(sp source.Span) protocol.Range {
	return protocol.Range{
		Start: ix.position(sp.Line, sp.Start),
		End:   ix.position(sp.Line, sp.End),
	}
}

// utf16Tokens re-encodes tokens with UTF-16 starts and lengths.
func (ix *lineIndex) utf16Tokens(enc []semtok.Encoded) []semtok.Encoded {
	raw := semtok.Decode(enc)
	for i, t := range raw {
		start := ix.utf16Col(t.Line, t.Char)
		raw[i].Char = start
		raw[i].Length = ix.utf16Col(t.Line, t.Char+t.Length) - start
	}
	return semtok.Encode(raw)
}

func toUint32(v int) uint32 {
	u, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0
	}
	return u
}

// protocolRangeToLocal turns a decoded protocol range back into the local
// signed form.
func protocolRangeToLocal(r protocol.Range) lspRange {
	return lspRange{
		Start: position{Line: int(r.Start.Line), Character: int(r.Start.Character)},
		End:   position{Line: int(r.End.Line), Character: int(r.End.Character)},
	}
}
