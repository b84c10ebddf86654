package isa

// Category groups instructions by the machine resource they act on.
type Category uint8

const (
	Arithmetic Category = iota
	Memory
	ControlFlow
	Stack
	Interrupt
	InputOutput
)

var categoryNames = [...]string{
	Arithmetic:  "Arithmetic",
	Memory:      "Memory",
	ControlFlow: "Control Flow",
	Stack:       "Stack",
	Interrupt:   "Interrupt",
	InputOutput: "Input/Output",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// OperandShape describes which operand forms an instruction accepts.
type OperandShape uint8

const (
	// OperandNone - instruction takes no operand (STP, WEJSCIE).
	OperandNone OperandShape = iota
	// OperandLabelOnly - jump target (SOB start).
	OperandLabelOnly
	// OperandAddressOrLabel - memory cell by address or label (ŁAD wynik).
	OperandAddressOrLabel
	// OperandImmediateOnly - `#value` only (MSK #3).
	OperandImmediateOnly
	// OperandFlexible - immediate, address, indirect or label.
	OperandFlexible
)

func (s OperandShape) String() string {
	switch s {
	case OperandNone:
		return "none"
	case OperandLabelOnly:
		return "label"
	case OperandAddressOrLabel:
		return "address or label"
	case OperandImmediateOnly:
		return "immediate"
	case OperandFlexible:
		return "immediate, address, indirect or label"
	default:
		return "unknown"
	}
}

// TakesOperand reports whether the shape requires an operand.
func (s OperandShape) TakesOperand() bool { return s != OperandNone }
