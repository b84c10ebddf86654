package lexer

// Cursor walks a rune slice keeping track of the 1-based line and column.
type Cursor struct {
	src  []rune
	Off  int
	Line int
	Col  int
}

// NewCursor creates a new cursor at the start of src.
func NewCursor(src []rune) Cursor {
	return Cursor{src: src, Line: 1, Col: 1}
}

// EOF reports whether the end of input is reached.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.src)
}

// Peek returns the current rune or 0 at end of input.
func (c *Cursor) Peek() rune {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// Bump consumes one rune and returns it.
func (c *Cursor) Bump() rune {
	if c.EOF() {
		return 0
	}
	r := c.src[c.Off]
	c.Off++
	if r == '\n' {
		c.Line++
		c.Col = 1
	} else {
		c.Col++
	}
	return r
}

// Mark remembers a position to slice text from.
type Mark struct {
	Off  int
	Line int
	Col  int
}

func (c *Cursor) Mark() Mark {
	return Mark{Off: c.Off, Line: c.Line, Col: c.Col}
}

// TextFrom returns the text consumed since m.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.src[m.Off:c.Off])
}
