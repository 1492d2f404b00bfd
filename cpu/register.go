// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"math"
	"strconv"
)

const (
	REGISTER_COUNT = 4 // Registers of each kind, numbered 1 to REGISTER_COUNT.
)

// RegisterKind is the type tag of a register.
type RegisterKind int

//go:generate go tool stringer -linecomment -type=RegisterKind
const (
	KIND_INT   = RegisterKind(0) // r
	KIND_FLOAT = RegisterKind(1) // f
)

// Register identifies one register of the bank.
type Register struct {
	Kind  RegisterKind
	Index int // 1 to REGISTER_COUNT.
}

// Valid returns true if the register exists in the bank.
func (reg Register) Valid() bool {
	return (reg.Kind == KIND_INT || reg.Kind == KIND_FLOAT) &&
		reg.Index >= 1 && reg.Index <= REGISTER_COUNT
}

func (reg Register) String() string {
	return fmt.Sprintf("%v%d", reg.Kind, reg.Index)
}

// Well known registers.
var (
	REG_R1 = Register{KIND_INT, 1}
	REG_R2 = Register{KIND_INT, 2}
	REG_R3 = Register{KIND_INT, 3}
	REG_R4 = Register{KIND_INT, 4}
	REG_F1 = Register{KIND_FLOAT, 1}
	REG_F2 = Register{KIND_FLOAT, 2}
	REG_F3 = Register{KIND_FLOAT, 3}
	REG_F4 = Register{KIND_FLOAT, 4}
)

// ParseRegister parses a register name such as "r2" or "f4".
func ParseRegister(name string) (reg Register, err error) {
	if len(name) != 2 {
		err = ErrInvalidRegister
		return
	}

	switch name[0] {
	case 'r':
		reg.Kind = KIND_INT
	case 'f':
		reg.Kind = KIND_FLOAT
	default:
		err = ErrInvalidRegister
		return
	}

	reg.Index = int(name[1]) - '0'
	if !reg.Valid() {
		reg = Register{}
		err = ErrInvalidRegister
	}

	return
}

// Value is the content of a register, tagged with its kind.
type Value struct {
	Kind  RegisterKind
	Int   uint32
	Float float32
}

// IntValue makes an integer value.
func IntValue(v uint32) Value {
	return Value{Kind: KIND_INT, Int: v}
}

// FloatValue makes a float value.
func FloatValue(v float32) Value {
	return Value{Kind: KIND_FLOAT, Float: v}
}

// AsFloat widens an integer value, or returns the float value.
func (val Value) AsFloat() float32 {
	if val.Kind == KIND_INT {
		return float32(val.Int)
	}
	return val.Float
}

// AsInt truncates a float value toward zero, or returns the integer value.
func (val Value) AsInt() uint32 {
	if val.Kind == KIND_INT {
		return val.Int
	}
	return Truncate(val.Float)
}

// As coerces the value to a register kind.
func (val Value) As(kind RegisterKind) Value {
	if kind == KIND_INT {
		return IntValue(val.AsInt())
	}
	return FloatValue(val.AsFloat())
}

// String formats the value in plain decimal.
func (val Value) String() string {
	if val.Kind == KIND_INT {
		return strconv.FormatUint(uint64(val.Int), 10)
	}

	f := val.Float
	switch {
	case math.IsInf(float64(f), 1):
		return "inf"
	case math.IsInf(float64(f), -1):
		return "-inf"
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// Truncate converts a float to an unsigned integer, toward zero.
// NaN and negative values saturate to 0, large values to MaxUint32.
func Truncate(v float32) uint32 {
	switch {
	case math.IsNaN(float64(v)), v <= 0:
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}

// Bank is the register bank: four integer and four float registers.
type Bank struct {
	R [REGISTER_COUNT]uint32  // r1 to r4.
	F [REGISTER_COUNT]float32 // f1 to f4.
}

// Reset zeros all registers.
func (bank *Bank) Reset() {
	clear(bank.R[:])
	clear(bank.F[:])
}

// Get returns the value of a register.
func (bank *Bank) Get(reg Register) (val Value, err error) {
	if !reg.Valid() {
		err = ErrInvalidRegister
		return
	}

	if reg.Kind == KIND_INT {
		val = IntValue(bank.R[reg.Index-1])
	} else {
		val = FloatValue(bank.F[reg.Index-1])
	}

	return
}

// GetByName returns the value of a named register.
func (bank *Bank) GetByName(name string) (val Value, err error) {
	reg, err := ParseRegister(name)
	if err != nil {
		return
	}

	return bank.Get(reg)
}

// Set stores a value, coerced to the register's kind.
func (bank *Bank) Set(reg Register, val Value) (err error) {
	if !reg.Valid() {
		err = ErrInvalidRegister
		return
	}

	if reg.Kind == KIND_INT {
		bank.R[reg.Index-1] = val.AsInt()
	} else {
		bank.F[reg.Index-1] = val.AsFloat()
	}

	return
}

// SetInt stores into integer register r<index>.
func (bank *Bank) SetInt(index int, v uint32) (err error) {
	return bank.Set(Register{KIND_INT, index}, IntValue(v))
}

// SetFloat stores into float register f<index>.
func (bank *Bank) SetFloat(index int, v float32) (err error) {
	return bank.Set(Register{KIND_FLOAT, index}, FloatValue(v))
}

// SetIntByName stores into a named integer register.
func (bank *Bank) SetIntByName(name string, v uint32) (err error) {
	reg, err := ParseRegister(name)
	if err != nil {
		return
	}
	if reg.Kind != KIND_INT {
		err = ErrInvalidRegister
		return
	}

	return bank.Set(reg, IntValue(v))
}

// SetFloatByName stores into a named float register.
func (bank *Bank) SetFloatByName(name string, v float32) (err error) {
	reg, err := ParseRegister(name)
	if err != nil {
		return
	}
	if reg.Kind != KIND_FLOAT {
		err = ErrInvalidRegister
		return
	}

	return bank.Set(reg, FloatValue(v))
}
