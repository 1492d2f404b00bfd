// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script loads angelio control scripts and performs the optional
// compile-time $(...) expansion before they reach the interpreter.
package script

import (
	"os"
)

// Source is the text of a control script.
type Source struct {
	Name string // File name, or empty for in-memory text.
	Text string // Script text, without terminator.
}

// FromString wraps in-memory script text.
func FromString(text string) Source {
	return Source{Text: text}
}

// FromFile reads a script from the named file.
func FromFile(path string) (src Source, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	src = Source{
		Name: path,
		Text: string(data),
	}

	return
}

// String returns the name of the source, for diagnostics.
func (src Source) String() string {
	if len(src.Name) == 0 {
		return "<string>"
	}
	return src.Name
}
