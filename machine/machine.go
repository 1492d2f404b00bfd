// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine assembles an interpreter, its pin bus and the selected
// hardware backend from a run configuration.
package machine

import (
	"iter"
	"log/slog"
	"maps"

	"github.com/ezrec/angelio/config"
	"github.com/ezrec/angelio/cpu"
	"github.com/ezrec/angelio/gpio"
	"github.com/ezrec/angelio/gpio/periph"
	"github.com/ezrec/angelio/internal"
	"github.com/ezrec/angelio/script"
)

// Machine state. CPU + pin bus + hardware backend.
type Machine struct {
	Verbose  bool              // If set, enables verbose logging.
	Logger   *slog.Logger      // Logger for verbose output; slog.Default() if nil.
	*cpu.Cpu                   // Reference to the interpreter.
	Bus      *gpio.Bus         // Pin bus driven by the interpreter.
	Sim      *gpio.Sim         // Simulator backend, if selected.
	Config   config.Config     // Configuration the machine was built from.
	Extra    map[string]string // Defines added after the configured ones.

	source script.Source
}

// NewAdapter creates the hardware backend named by the configuration.
// sim is set when the backend is the simulator.
func NewAdapter(cfg config.Config) (adapter gpio.Adapter, sim *gpio.Sim, err error) {
	switch cfg.Hardware {
	case config.HARDWARE_SIM:
		sim = gpio.NewSim()
		var levels map[uint8]bool
		levels, err = cfg.Levels()
		if err != nil {
			return
		}
		maps.Copy(sim.Levels, levels)
		if len(cfg.Sim.Inputs) != 0 {
			err = sim.LoadInputs(cfg.Sim.Inputs, nil)
			if err != nil {
				return
			}
		}
		adapter = sim
	case config.HARDWARE_PERIPH:
		adapter, err = periph.New()
	case config.HARDWARE_NULL:
		adapter = gpio.Null{}
	default:
		err = &config.ErrKey{Key: cfg.Hardware, Err: ErrHardware}
	}

	return
}

// New creates a machine from a configuration.
func New(cfg config.Config) (mach *Machine, err error) {
	adapter, sim, err := NewAdapter(cfg)
	if err != nil {
		return
	}

	mach = NewWithAdapter(cfg, adapter)
	mach.Sim = sim

	return
}

// NewWithAdapter creates a machine over an existing hardware backend.
func NewWithAdapter(cfg config.Config, adapter gpio.Adapter) (mach *Machine) {
	bus := gpio.NewBus(adapter)

	mach = &Machine{
		Cpu:    cpu.NewCpu(bus),
		Bus:    bus,
		Config: cfg,
		Extra:  map[string]string{},
	}

	return
}

// Defines returns an iterator over all of the defines visible to $(...).
func (mach *Machine) Defines() iter.Seq2[string, string] {
	return internal.ConcatSeq2(
		cpu.Defines(),
		gpio.Defines(),
		mach.Config.DefineStrings(),
		maps.All(mach.Extra),
	)
}

func (mach *Machine) logger() *slog.Logger {
	if mach.Logger != nil {
		return mach.Logger
	}
	return slog.Default()
}

// Load installs a script, expanding it first if so configured.
func (mach *Machine) Load(src script.Source) (err error) {
	if mach.Config.Expand {
		var expanded script.Source
		expanded, err = src.Expand(mach.Defines())
		if err != nil {
			err = &ErrScript{Name: src.String(), Err: err}
			return
		}
		src = expanded
		if mach.Verbose {
			mach.logger().Debug("machine: expand", "source", src.String(), "text", src.Text)
		}
	}

	mach.source = src
	mach.Cpu.Load(src.Text)

	return
}

// Reset rewinds the loaded script and clears interpreter state. Pin
// levels are left as they are; the input model restarts at tick 0.
func (mach *Machine) Reset() {
	mach.Cpu.Reset()
	if mach.Sim != nil {
		mach.Sim.ResetTicks()
	}
}

// Tick performs a single step of the machine.
func (mach *Machine) Tick() (done bool, err error) {
	mach.Cpu.Verbose = mach.Verbose
	mach.Cpu.Logger = mach.Logger
	mach.Bus.Verbose = mach.Verbose
	mach.Bus.Logger = mach.Logger

	done, err = mach.Cpu.Step()
	if err != nil {
		err = &ErrScript{Name: mach.source.String(), Err: err}
	}

	return
}

// Run loads a script and runs it to the end, or to the first fault.
func (mach *Machine) Run(src script.Source) (err error) {
	err = mach.Load(src)
	if err != nil {
		return
	}

	for {
		var done bool
		done, err = mach.Tick()
		if err != nil || done {
			break
		}
	}

	if mach.Verbose {
		mach.logger().Debug("machine: done", "source", mach.source.String(), "ticks", mach.Cpu.Ticks, "error", err)
	}

	return
}
