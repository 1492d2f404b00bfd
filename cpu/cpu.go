// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"os"

	"github.com/ezrec/angelio/pid"
)

const (
	PWM_FREQUENCY = 8.0 // Carrier frequency of every PWM output.
)

var _cpu_defines = map[string]string{
	"PWM_FREQUENCY":  fmt.Sprintf("%v", PWM_FREQUENCY),
	"PID_PERIOD":     fmt.Sprintf("%v", pid.PERIOD),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
}

// Hardware is the pin capability surface driven by the o, i and p opcodes.
type Hardware interface {
	// ReadDigital samples a pin.
	ReadDigital(pin uint8) (level bool, err error)
	// WriteDigital drives a pin high (true) or low (false).
	WriteDigital(pin uint8, level bool) error
	// WritePwm drives PWM at frequency, with duty as a fraction.
	WritePwm(pin uint8, frequency float64, duty float64) error
}

// Cpu is the interpreter: the register bank, the PID controller and the
// cursor over the loaded script.
type Cpu struct {
	Verbose  bool         // Set to enable verbose logging.
	Logger   *slog.Logger // Logger for verbose output; slog.Default() if nil.
	Output   io.Writer    // Destination of printed registers; os.Stdout if nil.
	Hardware Hardware     // Pin capabilities; hardware opcodes fail if nil.

	Bank  Bank           // Register bank.
	Pid   pid.Controller // PID controller state.
	Ticks int            // Characters dispatched since load.

	cursor *Cursor
	fault  error
}

// NewCpu creates an interpreter bound to the given hardware.
func NewCpu(hw Hardware) (cpu *Cpu) {
	cpu = &Cpu{
		Hardware: hw,
	}

	return
}

// Defines for the cpu.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset zeros the register bank and the PID controller, and rewinds the
// loaded script.
func (cpu *Cpu) Reset() {
	cpu.Bank.Reset()
	cpu.Pid = pid.Controller{}
	cpu.Ticks = 0
	cpu.fault = nil
	if cpu.cursor != nil {
		cpu.cursor.pos = 0
	}
}

// Load resets the interpreter and installs a script.
func (cpu *Cpu) Load(script string) {
	cpu.cursor = NewCursor(script)
	cpu.Reset()
}

// Pos returns the 0-based position of the next character to dispatch.
func (cpu *Cpu) Pos() int {
	if cpu.cursor == nil {
		return 0
	}
	return cpu.cursor.Pos()
}

// Err returns the fault that aborted the run, if any.
func (cpu *Cpu) Err() error {
	return cpu.fault
}

func (cpu *Cpu) logger() *slog.Logger {
	if cpu.Logger != nil {
		return cpu.Logger
	}
	return slog.Default()
}

// String returns the register bank and PID state as text.
func (cpu *Cpu) String() (text string) {
	for n := range REGISTER_COUNT {
		reg := Register{KIND_INT, n + 1}
		text += fmt.Sprintf("%5v: %v\n", reg, IntValue(cpu.Bank.R[n]))
	}
	for n := range REGISTER_COUNT {
		reg := Register{KIND_FLOAT, n + 1}
		text += fmt.Sprintf("%5v: %v\n", reg, FloatValue(cpu.Bank.F[n]))
	}
	text += fmt.Sprintf("%5s: %v %v %v\n", "pid", cpu.Pid.P, cpu.Pid.I, cpu.Pid.D)
	text += fmt.Sprintf("%5s: %v\n", "q", cpu.Pid.Setpoint)

	return
}

// Run dispatches the loaded script to the end, or to the first fault.
func (cpu *Cpu) Run() (err error) {
	for {
		var done bool
		done, err = cpu.Step()
		if err != nil || done {
			return
		}
	}
}

// Step dispatches one opcode character and its operands. Characters that
// are not opcodes are skipped. done is set once the script is exhausted.
//
// The first fault aborts the run: every later Step returns it again.
func (cpu *Cpu) Step() (done bool, err error) {
	if cpu.fault != nil {
		err = cpu.fault
		return
	}

	if cpu.cursor == nil || cpu.cursor.Done() {
		done = true
		return
	}

	pos, ch, _ := cpu.cursor.Next()
	cpu.Ticks++

	op := Opcode(ch)
	if !op.Valid() {
		return
	}

	defer func() {
		if err == nil {
			return
		}
		if _, ok := Position(err); !ok {
			err = &ErrRuntime{Pos: pos + 1, Opcode: op, Err: err}
		}
		cpu.fault = err
	}()

	args, err := cpu.decode(op)
	if err != nil {
		return
	}

	if cpu.Verbose {
		cpu.logger().Debug("cpu: exec", "pos", pos+1, "opcode", op, "args", args)
	}

	err = cpu.Execute(op, args)

	return
}

// Args are the decoded operands of one opcode.
type Args struct {
	Registers []Register
	Literal   float32
	Port      uint8
}

func (args Args) String() string {
	return fmt.Sprintf("%v %v %v", args.Registers, args.Literal, args.Port)
}

// decode reads the operands of an opcode from the cursor.
func (cpu *Cpu) decode(op Opcode) (args Args, err error) {
	for _, operand := range op.Operands() {
		switch operand {
		case OPERAND_FLOAT:
			args.Literal, err = ReadNumber[float32](cpu.cursor)
		case OPERAND_PORT:
			args.Port, err = ReadNumber[uint8](cpu.cursor)
		case OPERAND_REGISTER:
			var reg Register
			reg, err = cpu.cursor.ReadRegister()
			args.Registers = append(args.Registers, reg)
		}
		if err != nil {
			return
		}
	}

	return
}

// Execute performs an opcode on decoded operands.
func (cpu *Cpu) Execute(op Opcode, args Args) (err error) {
	if len(args.Registers) != op.registers() {
		err = ErrInvalidRegister
		return
	}

	switch op {
	case OP_GAIN_P:
		cpu.Pid.P = args.Literal
	case OP_GAIN_I:
		cpu.Pid.I = args.Literal
	case OP_GAIN_D:
		cpu.Pid.D = args.Literal
	case OP_SETPOINT:
		cpu.Pid.Setpoint = args.Literal
	case OP_CONTROL:
		output := cpu.Pid.Step(args.Literal)
		err = cpu.Bank.Set(REG_F3, FloatValue(output))
	case OP_LOAD:
		err = cpu.Bank.Set(args.Registers[0], FloatValue(args.Literal))
	case OP_ADD:
		err = cpu.add(args.Registers[0], args.Registers[1])
	case OP_SWAP:
		err = cpu.swap(args.Registers[0], args.Registers[1])
	case OP_PRINT:
		err = cpu.print(args.Registers[0])
	case OP_OUTPUT:
		err = cpu.output(args.Registers[0], args.Port)
	case OP_INPUT:
		err = cpu.input(args.Registers[0], args.Port)
	case OP_PWM:
		err = cpu.pwm(args.Registers[0], args.Port)
	}

	return
}

// add sums in single precision. Two integer operands truncate into r3,
// any float operand stores into f3.
func (cpu *Cpu) add(a, b Register) (err error) {
	va, err := cpu.Bank.Get(a)
	if err != nil {
		return
	}
	vb, err := cpu.Bank.Get(b)
	if err != nil {
		return
	}

	sum := FloatValue(va.AsFloat() + vb.AsFloat())
	if a.Kind == KIND_INT && b.Kind == KIND_INT {
		return cpu.Bank.Set(REG_R3, sum)
	}
	return cpu.Bank.Set(REG_F3, sum)
}

// swap exchanges two registers, coercing each value to its new home.
func (cpu *Cpu) swap(a, b Register) (err error) {
	va, err := cpu.Bank.Get(a)
	if err != nil {
		return
	}
	vb, err := cpu.Bank.Get(b)
	if err != nil {
		return
	}

	err = cpu.Bank.Set(a, vb)
	if err != nil {
		return
	}
	return cpu.Bank.Set(b, va)
}

func (cpu *Cpu) print(reg Register) (err error) {
	val, err := cpu.Bank.Get(reg)
	if err != nil {
		return
	}

	out := cpu.Output
	if out == nil {
		out = os.Stdout
	}

	_, err = fmt.Fprintln(out, val.String())
	return
}

func (cpu *Cpu) hardware() (hw Hardware, err error) {
	if cpu.Hardware == nil {
		err = ErrNoHardware
		return
	}
	return cpu.Hardware, nil
}

// output writes nonzero (after integer truncation) as high.
func (cpu *Cpu) output(reg Register, port uint8) (err error) {
	val, err := cpu.Bank.Get(reg)
	if err != nil {
		return
	}

	hw, err := cpu.hardware()
	if err != nil {
		return
	}

	return hw.WriteDigital(port, val.AsInt() != 0)
}

func (cpu *Cpu) input(reg Register, port uint8) (err error) {
	hw, err := cpu.hardware()
	if err != nil {
		return
	}

	level, err := hw.ReadDigital(port)
	if err != nil {
		return
	}

	var bit uint32
	if level {
		bit = 1
	}

	return cpu.Bank.Set(reg, IntValue(bit))
}

func (cpu *Cpu) pwm(reg Register, port uint8) (err error) {
	val, err := cpu.Bank.Get(reg)
	if err != nil {
		return
	}

	hw, err := cpu.hardware()
	if err != nil {
		return
	}

	return hw.WritePwm(port, PWM_FREQUENCY, float64(val.AsFloat()))
}
