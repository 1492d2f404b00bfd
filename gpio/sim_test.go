package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSim_Digital(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	pin, err := sim.Pin(17)
	require.NoError(t, err)

	level, err := pin.ReadDigital()
	assert.NoError(err)
	assert.False(level)

	assert.NoError(pin.SetDigital(true))
	assert.True(sim.Levels[17])

	level, err = pin.ReadDigital()
	assert.NoError(err)
	assert.True(level)

	assert.Equal([]Event{
		{Op: EVENT_READ, Pin: 17},
		{Op: EVENT_WRITE, Pin: 17, Level: true},
		{Op: EVENT_READ, Pin: 17, Level: true},
	}, sim.Events)
}

func TestSim_Unavailable(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	sim.Unavailable = map[uint8]bool{4: true, PWM1_PIN: true}

	_, err := sim.Pin(4)
	assert.ErrorIs(err, ErrPinUnavailable)

	_, err = sim.HardwarePwm(PWM_CHANNEL_1)
	assert.ErrorIs(err, ErrPwmUnavailable)

	_, err = sim.HardwarePwm(PwmChannel(2))
	assert.ErrorIs(err, ErrPwmUnavailable)

	_, err = sim.HardwarePwm(PWM_CHANNEL_0)
	assert.NoError(err)
}

func TestSim_Pwm(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	pin, err := sim.Pin(5)
	require.NoError(t, err)

	assert.NoError(pin.SetPwm(8, 0.25))
	assert.Equal(PwmState{Frequency: 8, Duty: 0.25}, sim.Pwm[5])

	assert.ErrorIs(pin.SetPwm(8, 1.5), ErrPwmUnavailable)
	assert.ErrorIs(pin.SetPwm(8, -0.1), ErrPwmUnavailable)
	assert.ErrorIs(pin.SetPwm(0, 0.5), ErrPwmUnavailable)

	// Digital output replaces the PWM output.
	assert.NoError(pin.SetDigital(false))
	_, ok := sim.Pwm[5]
	assert.False(ok)
}

func TestSim_Reset(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	pin, _ := sim.Pin(1)
	pin.SetDigital(true)
	pin.SetPwm(8, 1)

	sim.Reset()
	assert.Empty(sim.Levels)
	assert.Empty(sim.Pwm)
	assert.Nil(sim.Events)
}

func TestSim_LoadInputs(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	err := sim.LoadInputs("inputs.star", `
def read(pin, tick):
    if pin == 3:
        return tick % 2 == 0
    return False
`)
	require.NoError(t, err)

	pin, _ := sim.Pin(3)
	other, _ := sim.Pin(4)

	table := []struct {
		pin   Pin
		level bool
	}{
		{pin, true},
		{pin, false},
		{other, false},
		{pin, false},
		{pin, true},
	}

	for n, entry := range table {
		level, err := entry.pin.ReadDigital()
		assert.NoError(err, n)
		assert.Equal(entry.level, level, n)
	}
	assert.Equal(5, sim.Ticks)

	sim.ResetTicks()
	assert.Equal(0, sim.Ticks)
	level, err := pin.ReadDigital()
	assert.NoError(err)
	assert.True(level)
	assert.Equal(1, sim.Ticks)
}

func TestSim_LoadInputs_Errors(t *testing.T) {
	assert := assert.New(t)

	sim := NewSim()
	assert.ErrorIs(sim.LoadInputs("inputs.star", "x = 1\n"), ErrSimInputs)
	assert.Error(sim.LoadInputs("inputs.star", "def read(:\n"))

	assert.NoError(sim.LoadInputs("inputs.star", "def read(pin, tick):\n    return 1 // 0\n"))
	pin, _ := sim.Pin(3)
	_, err := pin.ReadDigital()
	assert.Error(err)
}

func TestNull(t *testing.T) {
	assert := assert.New(t)

	var null Null
	pin, err := null.Pin(200)
	assert.NoError(err)
	assert.NoError(pin.SetDigital(true))
	level, err := pin.ReadDigital()
	assert.NoError(err)
	assert.False(level)

	pwm, err := null.HardwarePwm(PWM_CHANNEL_0)
	assert.NoError(err)
	assert.NoError(pwm.SetPwm(8, 0.5))
}

func TestEventOp_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("read", EVENT_READ.String())
	assert.Equal("write", EVENT_WRITE.String())
	assert.Equal("pwm", EVENT_PWM.String())
	assert.Equal("EventOp(-1)", EventOp(-1).String())
	assert.Equal("PwmChannel(2)", PwmChannel(2).String())
}
