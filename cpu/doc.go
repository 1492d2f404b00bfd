// Package cpu implements the angelio interpreter.
//
// A script is a flat stream of single-character opcodes, each followed
// immediately by its operands: float literals, register references
// (r1-r4 for unsigned integers, f1-f4 for floats) or pin numbers. Any
// character that is not an opcode is skipped. The stream runs once, left
// to right, and the first malformed operand or hardware fault aborts it
// with an error carrying the 1-based character position.
//
//	P2I13D7q420c69   set PID gains and setpoint, step once into f3
//	lr121lr237+r1r2  load r1 and r2, sum into r3
//	lf10.5pf118      drive PWM at 50% duty on pin 18
//
// The interpreter owns a register Bank and a pid.Controller, and reaches
// pins only through the Hardware interface.
package cpu
