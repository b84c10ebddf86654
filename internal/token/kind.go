package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a statement.
	Newline
	// Ident is an identifier, opcode, macro or directive name.
	Ident
	// Number is a decimal, 0x hexadecimal or 0b binary literal.
	Number
	Hash     // #
	LBracket // [
	RBracket // ]
	Colon    // :
	// Comment runs from ';' to the end of the line. Only emitted when the
	// lexer is asked to keep comments.
	Comment
)

var kindNames = [...]string{
	Invalid:  "invalid",
	EOF:      "end of input",
	Newline:  "newline",
	Ident:    "identifier",
	Number:   "number",
	Hash:     "'#'",
	LBracket: "'['",
	RBracket: "']'",
	Colon:    "':'",
	Comment:  "comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}
