// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package gpio

import (
	"sync"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// EventOp is the kind of a simulated hardware access.
type EventOp int

//go:generate go tool stringer -linecomment -type=EventOp
const (
	EVENT_READ  = EventOp(0) // read
	EVENT_WRITE = EventOp(1) // write
	EVENT_PWM   = EventOp(2) // pwm
)

// PwmState is the last PWM configuration of an output.
type PwmState struct {
	Frequency float64
	Duty      float64
}

// Event records one simulated hardware access.
type Event struct {
	Op       EventOp
	Pin      uint8
	Level    bool     // Level read or written.
	Pwm      PwmState // PWM setting, for EVENT_PWM.
	Hardware bool     // Set if PWM went through a dedicated channel.
}

// Sim is a software GPIO adapter. Reads return the last level written to
// or preset on the pin, unless an input model is loaded.
type Sim struct {
	Levels      map[uint8]bool     // Current pin levels.
	Pwm         map[uint8]PwmState // Current PWM outputs, by pin.
	Unavailable map[uint8]bool     // Pins that refuse to be claimed.
	Events      []Event            // Access history.
	Ticks       int                // Reads served by the input model.

	mutex  sync.Mutex
	thread *starlark.Thread
	inputs starlark.Callable
}

var _ Adapter = (*Sim)(nil)

// NewSim creates an empty simulator.
func NewSim() (sim *Sim) {
	sim = &Sim{}
	sim.Reset()
	return
}

// Reset clears pin state, history, and the input model tick count.
func (sim *Sim) Reset() {
	sim.mutex.Lock()
	defer sim.mutex.Unlock()

	sim.Levels = map[uint8]bool{}
	sim.Pwm = map[uint8]PwmState{}
	sim.Events = nil
	sim.Ticks = 0
}

// ResetTicks restarts the input model at tick 0.
func (sim *Sim) ResetTicks() {
	sim.mutex.Lock()
	defer sim.mutex.Unlock()

	sim.Ticks = 0
}

// LoadInputs executes a starlark input model. The model must define
// read(pin, tick), whose truth value is the level of every later read.
func (sim *Sim) LoadInputs(filename string, src any) (err error) {
	thread := &starlark.Thread{Name: "sim"}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, nil)
	if err != nil {
		return
	}

	read, ok := globals["read"].(starlark.Callable)
	if !ok {
		err = ErrSimInputs
		return
	}

	sim.mutex.Lock()
	defer sim.mutex.Unlock()

	sim.thread = thread
	sim.inputs = read

	return
}

// Pin claims a simulated pin.
func (sim *Sim) Pin(number uint8) (pin Pin, err error) {
	sim.mutex.Lock()
	defer sim.mutex.Unlock()

	if sim.Unavailable[number] {
		err = ErrPinUnavailable
		return
	}

	pin = &simPin{sim: sim, number: number}
	return
}

// HardwarePwm claims a dedicated PWM channel.
func (sim *Sim) HardwarePwm(ch PwmChannel) (pwm Pwm, err error) {
	sim.mutex.Lock()
	defer sim.mutex.Unlock()

	if ch != PWM_CHANNEL_0 && ch != PWM_CHANNEL_1 {
		err = ErrPwmUnavailable
		return
	}

	if sim.Unavailable[ch.Pin()] {
		err = ErrPwmUnavailable
		return
	}

	pwm = &simPin{sim: sim, number: ch.Pin(), hardware: true}
	return
}

type simPin struct {
	sim      *Sim
	number   uint8
	hardware bool
}

func (sp *simPin) SetDigital(level bool) (err error) {
	sim := sp.sim
	sim.mutex.Lock()
	defer sim.mutex.Unlock()

	delete(sim.Pwm, sp.number)
	sim.Levels[sp.number] = level
	sim.Events = append(sim.Events, Event{Op: EVENT_WRITE, Pin: sp.number, Level: level})

	return
}

func (sp *simPin) ReadDigital() (level bool, err error) {
	sim := sp.sim
	sim.mutex.Lock()
	defer sim.mutex.Unlock()

	if sim.inputs != nil {
		args := starlark.Tuple{starlark.MakeInt(int(sp.number)), starlark.MakeInt(sim.Ticks)}
		var value starlark.Value
		value, err = starlark.Call(sim.thread, sim.inputs, args, nil)
		if err != nil {
			return
		}
		sim.Ticks++
		sim.Levels[sp.number] = bool(value.Truth())
	}

	level = sim.Levels[sp.number]
	sim.Events = append(sim.Events, Event{Op: EVENT_READ, Pin: sp.number, Level: level})

	return
}

func (sp *simPin) SetPwm(frequency float64, duty float64) (err error) {
	if !(frequency > 0) || !(duty >= 0 && duty <= 1) {
		err = ErrPwmUnavailable
		return
	}

	sim := sp.sim
	sim.mutex.Lock()
	defer sim.mutex.Unlock()

	state := PwmState{Frequency: frequency, Duty: duty}
	sim.Pwm[sp.number] = state
	sim.Events = append(sim.Events, Event{Op: EVENT_PWM, Pin: sp.number, Pwm: state, Hardware: sp.hardware})

	return
}
