// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"strconv"
)

// SENTINEL terminates every script held by a Cursor.
const SENTINEL = '\x00'

// Cursor is a position-tracked, forward-only character stream over a
// script. The script is followed by SENTINEL, so a literal that ends the
// script still has a character after it.
type Cursor struct {
	text []rune
	pos  int
}

// NewCursor creates a cursor at the start of the script.
func NewCursor(script string) (cur *Cursor) {
	text := []rune(script)
	cur = &Cursor{
		text: append(text, SENTINEL),
	}

	return
}

// Len returns the number of characters in the stream, sentinel included.
func (cur *Cursor) Len() int {
	return len(cur.text)
}

// Pos returns the 0-based position of the next character.
func (cur *Cursor) Pos() int {
	return cur.pos
}

// Done returns true once every character, sentinel included, is consumed.
func (cur *Cursor) Done() bool {
	return cur.pos >= len(cur.text)
}

// Peek returns the next character without consuming it.
func (cur *Cursor) Peek() (pos int, ch rune, ok bool) {
	if cur.Done() {
		return
	}

	return cur.pos, cur.text[cur.pos], true
}

// Advance consumes one character.
func (cur *Cursor) Advance() {
	if !cur.Done() {
		cur.pos++
	}
}

// Next consumes and returns the next character.
func (cur *Cursor) Next() (pos int, ch rune, ok bool) {
	pos, ch, ok = cur.Peek()
	if ok {
		cur.Advance()
	}
	return
}

// Number is the set of types a numeric literal can be read as.
type Number interface {
	uint8 | uint16 | uint32 | float32 | float64
}

func isNumeric(ch rune) bool {
	return (ch >= '0' && ch <= '9') || ch == '.'
}

// endOfInput reports a stream exhausted mid-operand, at the sentinel.
func (cur *Cursor) endOfInput() error {
	return &ErrSyntax{Pos: len(cur.text), Err: ErrUnexpectedEnd}
}

// scanNumber greedily consumes digits and decimal points. The literal must
// be followed by at least one more character.
func (cur *Cursor) scanNumber() (start int, text string, err error) {
	start = cur.pos
	for {
		pos, ch, ok := cur.Peek()
		if !ok {
			err = cur.endOfInput()
			return
		}
		if isNumeric(ch) {
			cur.Advance()
			continue
		}
		if pos == start {
			err = &ErrSyntax{Pos: pos + 1, Text: printable(ch), Err: ErrMalformedNumber}
			return
		}
		break
	}

	text = string(cur.text[start:cur.pos])
	return
}

// ReadNumber consumes a numeric literal and parses it as T. Several
// decimal points are scanned as one literal and then fail to parse.
// Floats too large for T parse as an infinity.
func ReadNumber[T Number](cur *Cursor) (value T, err error) {
	start, text, err := cur.scanNumber()
	if err != nil {
		return
	}

	var perr error
	switch p := any(&value).(type) {
	case *uint8:
		var u64 uint64
		u64, perr = strconv.ParseUint(text, 10, 8)
		*p = uint8(u64)
	case *uint16:
		var u64 uint64
		u64, perr = strconv.ParseUint(text, 10, 16)
		*p = uint16(u64)
	case *uint32:
		var u64 uint64
		u64, perr = strconv.ParseUint(text, 10, 32)
		*p = uint32(u64)
	case *float32:
		var f64 float64
		f64, perr = strconv.ParseFloat(text, 32)
		if errors.Is(perr, strconv.ErrRange) {
			perr = nil
		}
		*p = float32(f64)
	case *float64:
		*p, perr = strconv.ParseFloat(text, 64)
		if errors.Is(perr, strconv.ErrRange) {
			perr = nil
		}
	}

	if perr != nil {
		value = 0
		err = &ErrSyntax{Pos: start + 1, Text: text, Err: ErrNumberParse}
	}

	return
}

// ReadRegister consumes a two character register reference: a type tag
// ('r' or 'f') and a number from 1 to 4.
func (cur *Cursor) ReadRegister() (reg Register, err error) {
	pos, tag, ok := cur.Next()
	if !ok || cur.isSentinel(pos) {
		err = cur.endOfInput()
		return
	}

	var kind RegisterKind
	switch tag {
	case 'r':
		kind = KIND_INT
	case 'f':
		kind = KIND_FLOAT
	default:
		err = &ErrSyntax{Pos: pos + 1, Text: printable(tag), Err: ErrInvalidRegisterType}
		return
	}

	pos, digit, ok := cur.Next()
	if !ok || cur.isSentinel(pos) {
		err = cur.endOfInput()
		return
	}

	if digit < '1' || digit > '4' {
		err = &ErrSyntax{Pos: pos + 1, Text: printable(digit), Err: ErrInvalidRegisterNumber}
		return
	}

	reg = Register{Kind: kind, Index: int(digit - '0')}
	return
}

// isSentinel returns true if pos is the terminating sentinel.
func (cur *Cursor) isSentinel(pos int) bool {
	return pos == len(cur.text)-1
}

// printable renders a character for an error message.
func printable(ch rune) string {
	if ch == SENTINEL {
		return `\0`
	}
	return string(ch)
}
