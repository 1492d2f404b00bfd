// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"maps"
	"os"
	"strings"

	"github.com/ezrec/angelio/config"
	"github.com/ezrec/angelio/logs"
	"github.com/ezrec/angelio/machine"
	"github.com/ezrec/angelio/script"
)

type configList []string

func (cl *configList) String() string {
	return strings.Join(*cl, ",")
}

func (cl *configList) Set(path string) error {
	*cl = append(*cl, path)
	return nil
}

// overrides are the command line settings layered over the configuration.
type overrides struct {
	expand   bool
	hardware string
	inputs   string
	defines  map[string]string
}

// define records a name=value define.
func (ov *overrides) define(arg string) error {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || len(name) == 0 {
		return fmt.Errorf("expected name=value, got '%v'", arg)
	}
	if ov.defines == nil {
		ov.defines = map[string]string{}
	}
	ov.defines[name] = value
	return nil
}

// apply layers the overrides onto a configuration. Any define turns on
// expansion.
func (ov *overrides) apply(cfg *config.Config) {
	if ov.expand || len(ov.defines) != 0 {
		cfg.Expand = true
	}
	if len(ov.hardware) != 0 {
		cfg.Hardware = ov.hardware
	}
	if len(ov.inputs) != 0 {
		cfg.Sim.Inputs = ov.inputs
	}
}

func main() {
	var configs configList
	var ov overrides
	var text string
	var verbose bool

	flag.Var(&configs, "c", ".cue configuration file (repeatable)")
	flag.BoolVar(&ov.expand, "x", false, "Expand $(...) in the script")
	flag.Func("D", "Define name=value for $(...), implies -x (repeatable)", ov.define)
	flag.StringVar(&ov.hardware, "hw", "", "Hardware: sim, periph or null")
	flag.StringVar(&ov.inputs, "sim", "", ".star simulator input model")
	flag.StringVar(&text, "e", "", "Script text to run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	cfg, err := config.Load(configs...)
	if err != nil {
		log.Fatalf("%v: %v", configs.String(), err)
	}

	ov.apply(&cfg)

	level, err := cfg.LogLevel()
	if err != nil {
		log.Fatalf("%v: %v", configs.String(), err)
	}
	if verbose {
		level = slog.LevelDebug
	}
	logs.Level.Set(level)

	logger := logs.New(logs.Options{
		Writer:  os.Stderr,
		Journal: cfg.Log.Journal,
		Service: logs.IsService(),
	})
	slog.SetDefault(logger)

	var src script.Source
	switch {
	case len(text) != 0 && flag.NArg() == 0:
		src = script.FromString(text)
	case len(text) == 0 && flag.NArg() == 1 && flag.Arg(0) == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("stdin: %v", err)
		}
		src = script.Source{Name: "<stdin>", Text: string(data)}
	case len(text) == 0 && flag.NArg() == 1:
		src, err = script.FromFile(flag.Arg(0))
		if err != nil {
			log.Fatalf("%v", err)
		}
	default:
		log.Fatalf("%v: expected one script, or -e text: %v", os.Args[0], flag.Args())
	}

	mach, err := machine.New(cfg)
	if err != nil {
		log.Fatalf("%v: %v", cfg.Hardware, err)
	}
	mach.Verbose = verbose
	mach.Logger = logger
	mach.Output = os.Stdout
	maps.Copy(mach.Extra, ov.defines)

	err = mach.Run(src)
	if verbose {
		fmt.Fprint(os.Stderr, mach.Cpu.String())
	}
	if err != nil {
		logger.Error("angelio: run", "error", err)
		os.Exit(1)
	}
}
