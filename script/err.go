package script

import (
	"errors"

	"github.com/ezrec/angelio/translate"
)

var f = translate.From

var (
	ErrExpandUnbalanced = errors.New(f("unbalanced $("))
	ErrExpandValue      = errors.New(f("not a number"))
)

// ErrExpand reports a failed $(...) expansion.
type ErrExpand struct {
	Offset int // 1-based character index of the '$'.
	Expr   string
	Err    error
}

func (err *ErrExpand) Error() string {
	return f("char %d $(%v) %v", err.Offset, err.Expr, err.Err)
}

func (err *ErrExpand) Unwrap() error {
	return err.Err
}
