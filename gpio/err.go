package gpio

import (
	"errors"

	"github.com/ezrec/angelio/translate"
)

var f = translate.From

var (
	ErrPinUnavailable = errors.New(f("pin unavailable"))
	ErrPwmUnavailable = errors.New(f("pwm unavailable"))
	ErrSimInputs      = errors.New(f("input model must define read(pin, tick)"))
)

// ErrPin locates a hardware failure on a pin.
type ErrPin struct {
	Pin uint8
	Err error
}

func (err *ErrPin) Error() string {
	return f("pin %d %v", err.Pin, err.Err)
}

func (err *ErrPin) Unwrap() error {
	return err.Err
}
