// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package periph binds the angelio gpio capabilities to physical pins
// through periph.io.
package periph

import (
	"errors"
	"math"
	"strconv"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/ezrec/angelio/gpio"
)

// Adapter drives host GPIO through the periph.io registry.
type Adapter struct {
	// ByName looks up a pin; gpioreg.ByName if nil.
	ByName func(name string) pgpio.PinIO
}

var _ gpio.Adapter = (*Adapter)(nil)

// New initializes the host drivers.
func New() (adapter *Adapter, err error) {
	_, err = host.Init()
	if err != nil {
		err = errors.Join(gpio.ErrPinUnavailable, err)
		return
	}

	adapter = &Adapter{}
	return
}

func (pa *Adapter) lookup(number uint8) (pin pgpio.PinIO, err error) {
	byName := pa.ByName
	if byName == nil {
		byName = gpioreg.ByName
	}

	pin = byName(strconv.Itoa(int(number)))
	if pin == nil {
		err = gpio.ErrPinUnavailable
	}

	return
}

// Pin claims a GPIO pin by its chipset number.
func (pa *Adapter) Pin(number uint8) (pin gpio.Pin, err error) {
	io, err := pa.lookup(number)
	if err != nil {
		return
	}

	pin = &Pin{PinIO: io}
	return
}

// HardwarePwm returns the pin carrying the dedicated PWM channel.
func (pa *Adapter) HardwarePwm(ch gpio.PwmChannel) (pwm gpio.Pwm, err error) {
	io, err := pa.lookup(ch.Pin())
	if err != nil {
		err = errors.Join(gpio.ErrPwmUnavailable, err)
		return
	}

	pwm = &Pin{PinIO: io}
	return
}

// Pin is a periph.io pin.
type Pin struct {
	pgpio.PinIO
}

// SetDigital drives the pin as an output.
func (pin *Pin) SetDigital(level bool) error {
	return pin.Out(pgpio.Level(level))
}

// ReadDigital configures the pin as an input and samples it.
func (pin *Pin) ReadDigital() (level bool, err error) {
	err = pin.In(pgpio.PullNoChange, pgpio.NoEdge)
	if err != nil {
		return
	}

	level = pin.Read() == pgpio.High
	return
}

// SetPwm converts the duty fraction and frequency to periph units.
func (pin *Pin) SetPwm(frequency float64, duty float64) (err error) {
	if !(duty >= 0 && duty <= 1) || !(frequency > 0) {
		err = gpio.ErrPwmUnavailable
		return
	}

	pduty := pgpio.Duty(math.Round(duty * float64(pgpio.DutyMax)))
	pfreq := physic.Frequency(math.Round(frequency * float64(physic.Hertz)))

	err = pin.PWM(pduty, pfreq)
	if err != nil {
		err = errors.Join(gpio.ErrPwmUnavailable, err)
	}

	return
}
