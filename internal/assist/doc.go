// Package assist answers hover, completion and signature help requests.
//
// Results are protocol neutral: positions are code points and markdown is
// plain strings. The language server converts them to wire types.
package assist

import "asmodeus/internal/isa"

type Assistant struct {
	reg *isa.Registry
}

func New(reg *isa.Registry) *Assistant {
	return &Assistant{reg: reg}
}

// operandDoc describes the operand an instruction of the given shape expects.
func operandDoc(shape isa.OperandShape) string {
	switch shape {
	case isa.OperandFlexible:
		return "Memory address, immediate value (#42), or label"
	case isa.OperandAddressOrLabel:
		return "Memory address or label"
	case isa.OperandLabelOnly:
		return "Target label or address"
	case isa.OperandImmediateOnly:
		return "Immediate value (#42)"
	}
	return ""
}

// parameterName is the placeholder shown for an operand of the given shape.
func parameterName(shape isa.OperandShape) string {
	switch shape {
	case isa.OperandAddressOrLabel:
		return "address"
	case isa.OperandLabelOnly:
		return "label"
	case isa.OperandImmediateOnly:
		return "mask"
	case isa.OperandNone:
		return ""
	}
	return "operand"
}
