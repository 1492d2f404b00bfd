package cpu

import (
	"errors"

	"github.com/ezrec/angelio/translate"
)

var f = translate.From

var (
	// Operand decode errors
	ErrMalformedNumber       = errors.New(f("malformed number"))
	ErrNumberParse           = errors.New(f("number does not parse"))
	ErrUnexpectedEnd         = errors.New(f("unexpected end of input"))
	ErrInvalidRegisterType   = errors.New(f("invalid register type"))
	ErrInvalidRegisterNumber = errors.New(f("invalid register number"))

	// Register bank errors
	ErrInvalidRegister = errors.New(f("invalid register"))

	// Run errors
	ErrNoHardware = errors.New(f("no hardware attached"))
)

// ErrSyntax locates an operand decode failure in the script.
type ErrSyntax struct {
	Pos  int    // 1-based character index nearest the fault.
	Text string // Offending text, if any.
	Err  error
}

func (err *ErrSyntax) Error() string {
	if len(err.Text) == 0 {
		return f("char %d %v", err.Pos, err.Err)
	}
	return f("char %d '%v' %v", err.Pos, err.Text, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrRuntime locates a register or hardware failure at its opcode.
type ErrRuntime struct {
	Pos    int    // 1-based character index of the opcode.
	Opcode Opcode // Opcode being executed.
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("char %d '%v' %v", err.Pos, err.Opcode, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// Position returns the 1-based character index carried by a run error.
func Position(err error) (pos int, ok bool) {
	var syntaxErr *ErrSyntax
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Pos, true
	}

	var runtimeErr *ErrRuntime
	if errors.As(err, &runtimeErr) {
		return runtimeErr.Pos, true
	}

	return
}
