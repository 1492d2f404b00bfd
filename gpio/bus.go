// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package gpio

import (
	"errors"
	"log/slog"
)

// Bus routes digital and PWM requests onto an Adapter.
type Bus struct {
	Verbose bool         // If set, logs every hardware request.
	Logger  *slog.Logger // Logger for verbose output; slog.Default() if nil.
	Adapter Adapter      // Hardware binding.
}

// NewBus creates a bus over an adapter.
func NewBus(adapter Adapter) (bus *Bus) {
	bus = &Bus{
		Adapter: adapter,
	}

	return
}

func (bus *Bus) log(msg string, args ...any) {
	if !bus.Verbose {
		return
	}
	logger := bus.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug(msg, args...)
}

// kindOf tags err with kind, unless it already carries it.
func kindOf(kind error, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return errors.Join(kind, err)
}

func (bus *Bus) pin(number uint8) (pin Pin, err error) {
	pin, err = bus.Adapter.Pin(number)
	if err != nil {
		err = kindOf(ErrPinUnavailable, err)
	}
	return
}

// ReadDigital configures the pin as an input and samples it.
func (bus *Bus) ReadDigital(number uint8) (level bool, err error) {
	defer func() {
		if err != nil {
			err = &ErrPin{Pin: number, Err: err}
		}
	}()

	pin, err := bus.pin(number)
	if err != nil {
		return
	}

	level, err = pin.ReadDigital()
	if err != nil {
		err = kindOf(ErrPinUnavailable, err)
		return
	}

	bus.log("gpio: read", "pin", number, "level", level)

	return
}

// WriteDigital configures the pin as an output and drives it.
func (bus *Bus) WriteDigital(number uint8, level bool) (err error) {
	defer func() {
		if err != nil {
			err = &ErrPin{Pin: number, Err: err}
		}
	}()

	pin, err := bus.pin(number)
	if err != nil {
		return
	}

	bus.log("gpio: write", "pin", number, "level", level)

	err = pin.SetDigital(level)
	if err != nil {
		err = kindOf(ErrPinUnavailable, err)
	}

	return
}

// WritePwm drives PWM on a pin. Pins with a dedicated hardware channel use
// it; all others use the adapter's software PWM. The duty is clamped to
// [0, 1], with NaN as 0.
func (bus *Bus) WritePwm(number uint8, frequency float64, duty float64) (err error) {
	defer func() {
		if err != nil {
			err = &ErrPin{Pin: number, Err: err}
		}
	}()

	duty = ClampDuty(duty)

	var pwm Pwm
	if ch, ok := HardwareChannel(number); ok {
		pwm, err = bus.Adapter.HardwarePwm(ch)
		if err != nil {
			err = kindOf(ErrPwmUnavailable, err)
			return
		}
		bus.log("gpio: pwm", "pin", number, "channel", ch, "frequency", frequency, "duty", duty)
	} else {
		pwm, err = bus.pin(number)
		if err != nil {
			return
		}
		bus.log("gpio: soft pwm", "pin", number, "frequency", frequency, "duty", duty)
	}

	err = pwm.SetPwm(frequency, duty)
	if err != nil {
		err = kindOf(ErrPwmUnavailable, err)
	}

	return
}
