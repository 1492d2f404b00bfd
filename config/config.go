// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config loads angelio run configuration from CUE files.
package config

import (
	"errors"
	"iter"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/ezrec/angelio/logs"
	"github.com/ezrec/angelio/translate"
)

var f = translate.From

var (
	ErrLevelPin = errors.New(f("sim level key is not a pin number"))
)

const (
	HARDWARE_SIM    = "sim"    // Software simulator.
	HARDWARE_PERIPH = "periph" // Host GPIO through periph.io.
	HARDWARE_NULL   = "null"   // Discard all output, read low.
)

// Schema closes the accepted configuration and supplies its defaults.
// Every section is closed, so a misspelled key is an error.
const Schema = `
hardware: *"sim" | "periph" | "null"
expand:   *false | bool
defines: [string]: number
sim: close({
	inputs?: string
	levels: [string]: bool
})
log: close({
	level:   *"info" | "debug" | "warn" | "error"
	journal: *false | bool
})
`

// Config is the run configuration.
type Config struct {
	Hardware string             `json:"hardware"` // Hardware backend.
	Expand   bool               `json:"expand"`   // Expand $(...) in scripts.
	Defines  map[string]float64 `json:"defines"`  // Names usable in $(...).
	Sim      Sim                `json:"sim"`
	Log      Log                `json:"log"`
}

// Sim configures the software simulator.
type Sim struct {
	Inputs string          `json:"inputs,omitempty"` // Starlark input model file.
	Levels map[string]bool `json:"levels"`           // Initial pin levels.
}

// Log configures logging.
type Log struct {
	Level   string `json:"level"`
	Journal bool   `json:"journal"`
}

// File is one configuration source.
type File struct {
	Name string
	Data []byte
}

// Default returns the configuration used when no file is given.
func Default() (cfg Config) {
	cfg, err := Parse()
	if err != nil {
		panic(err)
	}
	return
}

// Load reads and merges configuration files.
func Load(paths ...string) (cfg Config, err error) {
	var files []File
	for _, path := range paths {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return
		}
		files = append(files, File{Name: path, Data: data})
	}

	return Parse(files...)
}

// Parse unifies configuration sources with the schema and decodes them.
func Parse(files ...File) (cfg Config, err error) {
	ctx := cuecontext.New()

	value := ctx.CompileString("close({"+Schema+"})", cue.Filename("schema.cue"))
	if err = value.Err(); err != nil {
		return
	}

	for _, file := range files {
		src := ctx.CompileBytes(file.Data, cue.Filename(file.Name))
		if err = src.Err(); err != nil {
			return
		}
		value = value.Unify(src)
	}

	if err = value.Validate(); err != nil {
		return
	}

	err = value.Decode(&cfg)
	if err != nil {
		return
	}

	_, err = cfg.Levels()

	return
}

// DefineStrings returns the defines as text, in name order.
func (cfg Config) DefineStrings() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range slices.Sorted(maps.Keys(cfg.Defines)) {
			text := strconv.FormatFloat(cfg.Defines[name], 'f', -1, 64)
			if !yield(name, text) {
				return
			}
		}
	}
}

// Levels returns the initial simulator pin levels by pin number.
func (cfg Config) Levels() (levels map[uint8]bool, err error) {
	levels = map[uint8]bool{}
	for key, level := range cfg.Sim.Levels {
		var pin uint64
		pin, err = strconv.ParseUint(key, 10, 8)
		if err != nil {
			err = &ErrKey{Key: key, Err: ErrLevelPin}
			levels = nil
			return
		}
		levels[uint8(pin)] = level
	}

	return
}

// LogLevel returns the configured log level.
func (cfg Config) LogLevel() (level slog.Level, err error) {
	return logs.ParseLevel(cfg.Log.Level)
}

// ErrKey reports a bad configuration key.
type ErrKey struct {
	Key string
	Err error
}

func (err *ErrKey) Error() string {
	return f("'%v' %v", err.Key, err.Err)
}

func (err *ErrKey) Unwrap() error {
	return err.Err
}
