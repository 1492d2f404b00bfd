package cpu

// Opcode is a single-character instruction.
type Opcode rune

const (
	OP_GAIN_P   = Opcode('P') // Set the PID proportional gain.
	OP_GAIN_I   = Opcode('I') // Set the PID integral gain.
	OP_GAIN_D   = Opcode('D') // Set the PID derivative gain.
	OP_SETPOINT = Opcode('q') // Set the PID setpoint.
	OP_CONTROL  = Opcode('c') // Run one PID step into f3.
	OP_LOAD     = Opcode('l') // Load a literal into a register.
	OP_ADD      = Opcode('+') // Sum two registers into r3 or f3.
	OP_SWAP     = Opcode('T') // Swap two registers.
	OP_PRINT    = Opcode('!') // Print a register.
	OP_OUTPUT   = Opcode('o') // Write a register to a digital pin.
	OP_INPUT    = Opcode('i') // Read a digital pin into a register.
	OP_PWM      = Opcode('p') // Drive PWM on a pin from a register.
)

// Operand is the grammar of one operand.
type Operand int

// Operands are a float literal, a register reference, or a pin number
// literal from 0 to 255.
//
//go:generate go tool stringer -linecomment -type=Operand
const (
	OPERAND_FLOAT    = Operand(0) // float
	OPERAND_REGISTER = Operand(1) // register
	OPERAND_PORT     = Operand(2) // port
)

var _opcode_operands = map[Opcode][]Operand{
	OP_GAIN_P:   {OPERAND_FLOAT},
	OP_GAIN_I:   {OPERAND_FLOAT},
	OP_GAIN_D:   {OPERAND_FLOAT},
	OP_SETPOINT: {OPERAND_FLOAT},
	OP_CONTROL:  {OPERAND_FLOAT},
	OP_LOAD:     {OPERAND_REGISTER, OPERAND_FLOAT},
	OP_ADD:      {OPERAND_REGISTER, OPERAND_REGISTER},
	OP_SWAP:     {OPERAND_REGISTER, OPERAND_REGISTER},
	OP_PRINT:    {OPERAND_REGISTER},
	OP_OUTPUT:   {OPERAND_REGISTER, OPERAND_PORT},
	OP_INPUT:    {OPERAND_REGISTER, OPERAND_PORT},
	OP_PWM:      {OPERAND_REGISTER, OPERAND_PORT},
}

// Valid returns true if the opcode is part of the instruction set.
// Any other character is a no-op.
func (op Opcode) Valid() bool {
	_, ok := _opcode_operands[op]
	return ok
}

// Operands returns the operand grammar of the opcode.
func (op Opcode) Operands() []Operand {
	return _opcode_operands[op]
}

func (op Opcode) String() string {
	return printable(rune(op))
}

// registers returns the number of register operands of the opcode.
func (op Opcode) registers() (count int) {
	for _, operand := range op.Operands() {
		if operand == OPERAND_REGISTER {
			count++
		}
	}
	return
}
