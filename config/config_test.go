package config

import (
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal(HARDWARE_SIM, cfg.Hardware)
	assert.False(cfg.Expand)
	assert.Equal("info", cfg.Log.Level)
	assert.False(cfg.Log.Journal)
	assert.Empty(cfg.Defines)
	assert.Empty(cfg.Sim.Inputs)

	level, err := cfg.LogLevel()
	assert.NoError(err)
	assert.Equal(slog.LevelInfo, level)
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse(File{Name: "a.cue", Data: []byte(`
hardware: "null"
expand: true
defines: { SPEED: 3, GAIN: 0.5 }
sim: levels: { "4": true, "5": false }
log: level: "debug"
`)})
	assert.NoError(err)
	assert.Equal(HARDWARE_NULL, cfg.Hardware)
	assert.True(cfg.Expand)
	assert.Equal(map[string]float64{"SPEED": 3, "GAIN": 0.5}, cfg.Defines)
	assert.Equal("debug", cfg.Log.Level)

	levels, err := cfg.Levels()
	assert.NoError(err)
	assert.Equal(map[uint8]bool{4: true, 5: false}, levels)

	defines := maps.Collect(cfg.DefineStrings())
	assert.Equal(map[string]string{"SPEED": "3", "GAIN": "0.5"}, defines)

	var names []string
	for name := range cfg.DefineStrings() {
		names = append(names, name)
	}
	assert.Equal([]string{"GAIN", "SPEED"}, names)
}

func TestParse_Merge(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse(
		File{Name: "a.cue", Data: []byte(`defines: A: 1`)},
		File{Name: "b.cue", Data: []byte(`defines: B: 2`)},
	)
	assert.NoError(err)
	assert.Equal(map[string]float64{"A": 1, "B": 2}, cfg.Defines)

	_, err = Parse(
		File{Name: "a.cue", Data: []byte(`hardware: "null"`)},
		File{Name: "b.cue", Data: []byte(`hardware: "sim"`)},
	)
	assert.Error(err)
}

func TestParse_Errors(t *testing.T) {
	table := [](struct {
		name string
		text string
	}){
		{"syntax", `hardware: `},
		{"unknown field", `speed: 3`},
		{"unknown sim field", `sim: { inptus: "x.star" }`},
		{"unknown log field", `log: { levle: "debug" }`},
		{"bad level value", `sim: levels: { "4": 1 }`},
		{"bad hardware", `hardware: "gpiochip"`},
		{"bad level", `log: level: "loud"`},
		{"bad define", `defines: A: "x"`},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			_, err := Parse(File{Name: "bad.cue", Data: []byte(entry.text)})
			assert.Error(t, err)
		})
	}
}

func TestParse_LevelPin(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(File{Name: "a.cue", Data: []byte(`sim: levels: { "GPIO4": true }`)})
	assert.ErrorIs(err, ErrLevelPin)

	_, err = Parse(File{Name: "a.cue", Data: []byte(`sim: levels: { "256": true }`)})
	assert.ErrorIs(err, ErrLevelPin)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "angelio.cue")
	err := os.WriteFile(path, []byte(`sim: inputs: "inputs.star"`), 0o644)
	assert.NoError(err)

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal("inputs.star", cfg.Sim.Inputs)

	_, err = Load(filepath.Join(dir, "missing.cue"))
	assert.ErrorIs(err, os.ErrNotExist)
}
