package isa

var builtin = []Spec{
	{Name: "DOD", Category: Arithmetic, Operand: OperandFlexible,
		Description: "Add value to accumulator: (AK) + (operand) → AK", Operation: "(AK) + (operand) → AK"},
	{Name: "ODE", Category: Arithmetic, Operand: OperandFlexible,
		Description: "Subtract value from accumulator: (AK) - (operand) → AK", Operation: "(AK) - (operand) → AK"},

	{Name: "POB", Category: Memory, Operand: OperandFlexible,
		Description: "Load value into accumulator: (operand) → AK", Operation: "(operand) → AK"},
	{Name: "ŁAD", Category: Memory, Operand: OperandAddressOrLabel,
		Description: "Store accumulator to memory: (AK) → (address)", Operation: "(AK) → (address)"},

	{Name: "SOB", Category: ControlFlow, Operand: OperandLabelOnly,
		Description: "Unconditional jump to label", Operation: "Unconditional jump"},
	{Name: "SOM", Category: ControlFlow, Operand: OperandLabelOnly,
		Description: "Jump to label if AK < 0", Operation: "Jump if AK < 0"},
	{Name: "SOZ", Category: ControlFlow, Operand: OperandLabelOnly,
		Description: "Jump to label if AK = 0", Operation: "Jump if AK = 0"},
	{Name: "STP", Category: ControlFlow, Operand: OperandNone,
		Description: "Stop program execution", Operation: "Halt execution"},

	{Name: "SDP", Category: Stack, Operand: OperandNone,
		Description: "Push accumulator to stack: (AK) → stack", Operation: "(AK) → stack"},
	{Name: "PZS", Category: Stack, Operand: OperandNone,
		Description: "Pop from stack to accumulator: stack → AK", Operation: "stack → AK"},

	{Name: "DNS", Category: Interrupt, Operand: OperandNone,
		Description: "Disable interrupt handling", Operation: "Disable interrupts"},
	{Name: "CZM", Category: Interrupt, Operand: OperandNone,
		Description: "Clear interrupt mask register", Operation: "Clear interrupt mask"},
	{Name: "MSK", Category: Interrupt, Operand: OperandImmediateOnly,
		Description: "Set interrupt mask register", Operation: "Set interrupt mask"},
	{Name: "PWR", Category: Interrupt, Operand: OperandNone,
		Description: "Return from interrupt handler", Operation: "Return from interrupt"},

	{Name: "WEJSCIE", Category: InputOutput, Operand: OperandNone,
		Description: "Input value from user", Operation: "Input → AK"},
	{Name: "WYJSCIE", Category: InputOutput, Operand: OperandNone,
		Description: "Output accumulator value", Operation: "Output AK"},

	// extended set, available when the machine runs with extended arithmetic
	{Name: "MNO", Category: Arithmetic, Operand: OperandFlexible, Extended: true,
		Description: "Multiply: (AK) * (operand) → AK [Extended]", Operation: "(AK) * (operand) → AK"},
	{Name: "DZI", Category: Arithmetic, Operand: OperandFlexible, Extended: true,
		Description: "Divide: (AK) / (operand) → AK [Extended]", Operation: "(AK) / (operand) → AK"},
	{Name: "MOD", Category: Arithmetic, Operand: OperandFlexible, Extended: true,
		Description: "Modulo: (AK) % (operand) → AK [Extended]", Operation: "(AK) % (operand) → AK"},
}
