package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnexpectedChar Code = 1001

	// Syntax
	SynUnexpectedToken Code = 2001

	// Semantic
	SemUnknownInstruction Code = 3001
	SemUndefinedMacro     Code = 3002
	SemUnexpectedOperand  Code = 3003
	SemMissingOperand     Code = 3004
	SemInvalidCharacter   Code = 3005
	SemInvalidLabelName   Code = 3006
	SemLabelIsInstruction Code = 3007
)

var codeIDs = map[Code]string{
	UnknownCode:           "E0000",
	LexUnexpectedChar:     "LEX001",
	SynUnexpectedToken:    "PAR001",
	SemUnknownInstruction: "SEM001",
	SemUndefinedMacro:     "SEM002",
	SemUnexpectedOperand:  "SEM003",
	SemMissingOperand:     "SEM004",
	SemInvalidCharacter:   "SEM005",
	SemInvalidLabelName:   "SEM006",
	SemLabelIsInstruction: "SEM007",
}

var codeDescriptions = map[Code]string{
	UnknownCode:           "Unknown error",
	LexUnexpectedChar:     "Lexer rejected a character",
	SynUnexpectedToken:    "Parser rejected a token sequence",
	SemUnknownInstruction: "Unknown instruction",
	SemUndefinedMacro:     "Unknown instruction or undefined macro",
	SemUnexpectedOperand:  "Instruction does not take operands",
	SemMissingOperand:     "Instruction requires an operand",
	SemInvalidCharacter:   "Invalid character in code",
	SemInvalidLabelName:   "Invalid label name",
	SemLabelIsInstruction: "Label name conflicts with instruction name",
}

// ID returns the stable short identifier shown to users.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("E%04d", uint16(c))
}

func (c Code) Title() string {
	if d, ok := codeDescriptions[c]; ok {
		return d
	}
	return codeDescriptions[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}

// ParseCode resolves a short identifier such as "SEM001".
func ParseCode(id string) (Code, bool) {
	for c, s := range codeIDs {
		if s == id {
			return c, true
		}
	}
	return UnknownCode, false
}
