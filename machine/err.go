package machine

import (
	"errors"

	"github.com/ezrec/angelio/cpu"
	"github.com/ezrec/angelio/translate"
)

var f = translate.From

var (
	ErrHardware = errors.New(f("unknown hardware"))
)

// ErrScript locates an error within a named script.
type ErrScript struct {
	Name string
	Err  error
}

func (err *ErrScript) Error() string {
	if pos, ok := cpu.Position(err.Err); ok {
		return f("%v:%d: %v", err.Name, pos, err.Err)
	}
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
