package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	pc := New(1, 2, 3)
	assert.Equal(float32(1), pc.P)
	assert.Equal(float32(2), pc.I)
	assert.Equal(float32(3), pc.D)
	assert.Equal(float32(0), pc.Setpoint)
	assert.Equal(float32(0), pc.PrevError())
	assert.Equal(float32(0), pc.TotalError())
}

func TestStep_Basic(t *testing.T) {
	assert := assert.New(t)

	pc := New(2, 13, 7)
	pc.Setpoint = 420

	assert.Equal(float32(123553), pc.Step(69))
	assert.Equal(float32(351), pc.PrevError())
	assert.InDelta(1.0/13.0, pc.TotalError(), 1e-6)
}

func TestStep_Proportional(t *testing.T) {
	assert := assert.New(t)

	pc := New(1, 0, 0)
	pc.Setpoint = 10

	assert.Equal(float32(6), pc.Step(4))
	assert.Equal(float32(-2), pc.Step(12))
}

func TestStep_IntegralZeroGain(t *testing.T) {
	assert := assert.New(t)

	pc := New(0, 0, 0)
	pc.Setpoint = 1000

	for range 10 {
		assert.Equal(float32(0), pc.Step(0))
	}
	assert.Equal(float32(0), pc.TotalError())
}

func TestStep_IntegralAccumulates(t *testing.T) {
	assert := assert.New(t)

	pc := New(0, 1, 0)
	pc.Setpoint = 1

	assert.InDelta(0.02, pc.Step(0), 1e-6)
	assert.InDelta(0.04, pc.Step(0), 1e-6)
	assert.InDelta(0.04, pc.TotalError(), 1e-6)
}

func TestStep_AntiWindup(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		setpoint float32
		output   float32
	}){
		{"high", 100, 1},
		{"low", -100, -1},
	}

	for _, entry := range table {
		pc := New(0, 10, 0)
		pc.Setpoint = entry.setpoint

		for range 5 {
			assert.InDelta(entry.output, pc.Step(0), 1e-6, entry.name)
		}
		assert.InDelta(entry.output/10, pc.TotalError(), 1e-6, entry.name)
	}
}

func TestStep_Derivative(t *testing.T) {
	assert := assert.New(t)

	pc := New(0, 0, 1)

	assert.InDelta(-50, pc.Step(1), 1e-3)
	// Same error as the previous step: no derivative.
	assert.Equal(float32(0), pc.Step(1))
	assert.InDelta(50, pc.Step(0), 1e-3)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	pc := New(2, 13, 7)
	pc.Setpoint = 420
	first := pc.Step(69)
	assert.NotEqual(first, pc.Step(69))

	pc.Reset()
	assert.Equal(float32(0), pc.PrevError())
	assert.Equal(float32(0), pc.TotalError())
	assert.Equal(float32(420), pc.Setpoint)
	assert.Equal(first, pc.Step(69))
}
