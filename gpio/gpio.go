// Package gpio provides the hardware capabilities used by the angelio
// interpreter: digital pin input and output, and pulse-width modulation.
//
// An Adapter hands out configured pins and the dedicated PWM channels. The
// Bus routes interpreter requests onto an Adapter; pins 18 and 19 are
// driven through hardware PWM channels 0 and 1, and every other pin uses
// the adapter's software PWM.
//
// Sim is a pure-software Adapter for tests and dry runs, optionally driven
// by a starlark input model. Null accepts everything and reads low.
package gpio

import (
	"fmt"
	"iter"
	"maps"
	"math"
)

// PwmChannel is a dedicated hardware PWM channel index.
type PwmChannel int

//go:generate go tool stringer -linecomment -type=PwmChannel
const (
	PWM_CHANNEL_0 = PwmChannel(0) // pwm0
	PWM_CHANNEL_1 = PwmChannel(1) // pwm1
)

const (
	PWM0_PIN = uint8(18) // Pin routed to PWM_CHANNEL_0.
	PWM1_PIN = uint8(19) // Pin routed to PWM_CHANNEL_1.
)

var _gpio_defines = map[string]string{
	"PWM0_PIN": fmt.Sprintf("%v", PWM0_PIN),
	"PWM1_PIN": fmt.Sprintf("%v", PWM1_PIN),
}

// Defines returns an iterator over the pin defines.
func Defines() iter.Seq2[string, string] {
	return maps.All(_gpio_defines)
}

// Pin returns the pin wired to a hardware PWM channel.
func (ch PwmChannel) Pin() uint8 {
	if ch == PWM_CHANNEL_1 {
		return PWM1_PIN
	}
	return PWM0_PIN
}

// ClampDuty limits a duty fraction to [0, 1]. NaN is 0.
func ClampDuty(duty float64) float64 {
	if math.IsNaN(duty) {
		return 0
	}
	return min(max(duty, 0), 1)
}

// HardwareChannel reports the dedicated PWM channel for a pin, if any.
func HardwareChannel(pin uint8) (ch PwmChannel, ok bool) {
	switch pin {
	case PWM0_PIN:
		return PWM_CHANNEL_0, true
	case PWM1_PIN:
		return PWM_CHANNEL_1, true
	}
	return
}

// Pwm is a pulse-width modulated output.
type Pwm interface {
	// SetPwm drives the output at frequency with duty as a fraction in [0, 1].
	SetPwm(frequency float64, duty float64) error
}

// Pin is a configured GPIO pin.
type Pin interface {
	Pwm
	// SetDigital drives the pin high (true) or low (false).
	SetDigital(level bool) error
	// ReadDigital samples the pin level.
	ReadDigital() (level bool, err error)
}

// Adapter is the hardware binding used by a Bus.
type Adapter interface {
	// Pin claims and configures a GPIO pin.
	Pin(number uint8) (pin Pin, err error)
	// HardwarePwm configures a dedicated PWM channel.
	HardwarePwm(ch PwmChannel) (pwm Pwm, err error)
}
