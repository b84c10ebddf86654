// Package lexer splits Asmodeus source into tokens.
package lexer

import (
	"fmt"
	"strings"

	"asmodeus/internal/source"
	"asmodeus/internal/token"
)

type Lexer struct {
	cursor Cursor
	opts   Options
	look   *token.Token
}

func New(text string, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor([]rune(text)),
		opts:   opts,
	}
}

// Tokenize lexes the whole text. The result always ends with token.EOF.
func Tokenize(text string) ([]token.Token, error) {
	lx := New(text, Options{})
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok, nil
	}

	c := &lx.cursor
	for !c.EOF() {
		switch r := c.Peek(); {
		case r == ' ' || r == '\t' || r == '\r':
			c.Bump()
		case r == ';':
			m := c.Mark()
			for !c.EOF() && c.Peek() != '\n' {
				c.Bump()
			}
			if lx.opts.KeepComments {
				return lx.tok(token.Comment, m), nil
			}
		default:
			return lx.scan()
		}
	}
	return token.Token{Kind: token.EOF, Line: c.Line, Col: c.Col}, nil
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (token.Token, error) {
	t, err := lx.Next()
	if err != nil {
		return t, err
	}
	lx.look = &t
	return t, nil
}

func (lx *Lexer) scan() (token.Token, error) {
	c := &lx.cursor
	m := c.Mark()
	r := c.Peek()
	switch {
	case r == '\n':
		c.Bump()
		return token.Token{Kind: token.Newline, Line: m.Line, Col: m.Col, Text: "\n"}, nil
	case r == '#':
		c.Bump()
		return lx.tok(token.Hash, m), nil
	case r == '[':
		c.Bump()
		return lx.tok(token.LBracket, m), nil
	case r == ']':
		c.Bump()
		return lx.tok(token.RBracket, m), nil
	case r == ':':
		c.Bump()
		return lx.tok(token.Colon, m), nil
	case source.IsWordChar(r):
		for !c.EOF() && source.IsWordChar(c.Peek()) {
			c.Bump()
		}
		if isDigit(r) {
			text := c.TextFrom(m)
			if !validNumber(text) {
				return token.Token{}, &Error{Line: m.Line, Col: m.Col, Msg: fmt.Sprintf("invalid number literal '%s'", text)}
			}
			return lx.tok(token.Number, m), nil
		}
		return lx.tok(token.Ident, m), nil
	default:
		return token.Token{}, &Error{Line: m.Line, Col: m.Col, Msg: fmt.Sprintf("unexpected character '%c'", r)}
	}
}

func (lx *Lexer) tok(kind token.Kind, m Mark) token.Token {
	return token.Token{Kind: kind, Line: m.Line, Col: m.Col, Text: lx.cursor.TextFrom(m)}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func validNumber(text string) bool {
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "0x"):
		return len(lower) > 2 && strings.Trim(lower[2:], "0123456789abcdef") == ""
	case strings.HasPrefix(lower, "0b"):
		return len(lower) > 2 && strings.Trim(lower[2:], "01") == ""
	default:
		return strings.Trim(lower, "0123456789") == ""
	}
}
