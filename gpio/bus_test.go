package gpio

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHardwareChannel(t *testing.T) {
	assert := assert.New(t)

	ch, ok := HardwareChannel(18)
	assert.True(ok)
	assert.Equal(PWM_CHANNEL_0, ch)
	assert.Equal(uint8(18), ch.Pin())

	ch, ok = HardwareChannel(19)
	assert.True(ok)
	assert.Equal(PWM_CHANNEL_1, ch)
	assert.Equal(uint8(19), ch.Pin())
	assert.Equal("pwm1", ch.String())

	_, ok = HardwareChannel(17)
	assert.False(ok)
}

func TestBus_Digital(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	bus := NewBus(sim)

	assert.NoError(bus.WriteDigital(17, true))
	assert.True(sim.Levels[17])

	level, err := bus.ReadDigital(17)
	assert.NoError(err)
	assert.True(level)
}

func TestBus_PwmRouting(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	bus := NewBus(sim)

	assert.NoError(bus.WritePwm(18, 8, 0.5))
	assert.NoError(bus.WritePwm(19, 8, 0.25))
	assert.NoError(bus.WritePwm(12, 8, 1))

	assert.Equal([]Event{
		{Op: EVENT_PWM, Pin: 18, Pwm: PwmState{8, 0.5}, Hardware: true},
		{Op: EVENT_PWM, Pin: 19, Pwm: PwmState{8, 0.25}, Hardware: true},
		{Op: EVENT_PWM, Pin: 12, Pwm: PwmState{8, 1}},
	}, sim.Events)
}

func TestBus_Errors(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	sim.Unavailable = map[uint8]bool{7: true, 18: true}
	bus := NewBus(sim)

	err := bus.WriteDigital(7, true)
	assert.ErrorIs(err, ErrPinUnavailable)
	var pinErr *ErrPin
	if assert.ErrorAs(err, &pinErr) {
		assert.Equal(uint8(7), pinErr.Pin)
	}

	_, err = bus.ReadDigital(7)
	assert.ErrorIs(err, ErrPinUnavailable)

	assert.ErrorIs(bus.WritePwm(7, 8, 0.5), ErrPinUnavailable)
	assert.ErrorIs(bus.WritePwm(18, 8, 0.5), ErrPwmUnavailable)
	assert.ErrorIs(bus.WritePwm(6, 0, 0.5), ErrPwmUnavailable)
}

func TestBus_PwmClamp(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	bus := NewBus(sim)

	table := [](struct {
		pin  uint8
		duty float64
		want float64
	}){
		{18, 6, 1},
		{5, 2, 1},
		{5, -0.5, 0},
		{19, math.Inf(1), 1},
		{19, math.Inf(-1), 0},
		{5, math.NaN(), 0},
		{5, 0.75, 0.75},
	}

	for _, entry := range table {
		assert.NoError(bus.WritePwm(entry.pin, 8, entry.duty), entry.duty)
		assert.Equal(entry.want, sim.Pwm[entry.pin].Duty, entry.duty)
	}
}

type failAdapter struct {
	err error
}

func (fa failAdapter) Pin(number uint8) (Pin, error) {
	return nil, fa.err
}

func (fa failAdapter) HardwarePwm(ch PwmChannel) (Pwm, error) {
	return nil, fa.err
}

func TestBus_ForeignErrors(t *testing.T) {
	assert := assert.New(t)

	cause := errors.New("permission denied")
	bus := NewBus(failAdapter{cause})

	err := bus.WriteDigital(1, false)
	assert.ErrorIs(err, ErrPinUnavailable)
	assert.ErrorIs(err, cause)

	err = bus.WritePwm(19, 8, 0)
	assert.ErrorIs(err, ErrPwmUnavailable)
	assert.ErrorIs(err, cause)
}

func TestBus_Verbose(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	bus := NewBus(NewSim())
	bus.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	assert.NoError(bus.WriteDigital(2, true))
	assert.Empty(buf.String())

	bus.Verbose = true
	assert.NoError(bus.WriteDigital(2, true))
	assert.Contains(buf.String(), "gpio: write")
	assert.Contains(buf.String(), "pin=2")
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}
	assert.Equal("18", defines["PWM0_PIN"])
	assert.Equal("19", defines["PWM1_PIN"])
}
