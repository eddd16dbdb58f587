package console

import (
	"strings"
)

// Verbosity selects how much diagnostic output a Console writes.
type Verbosity int

//go:generate go tool stringer -linecomment -type=Verbosity
const (
	QUIET = Verbosity(0) // quiet
	TRACE = Verbosity(1) // trace
)

// ErrVerbosity is an unrecognized verbosity name.
type ErrVerbosity string

func (err ErrVerbosity) Error() string {
	return f("verbosity '%v' unknown, expected quiet or trace", string(err))
}

// ParseVerbosity parses a verbosity name, ignoring case.
func ParseVerbosity(name string) (v Verbosity, err error) {
	switch strings.ToLower(name) {
	case QUIET.String():
		v = QUIET
	case TRACE.String():
		v = TRACE
	default:
		err = ErrVerbosity(name)
	}

	return
}

// Set implements the flag value interface.
func (v *Verbosity) Set(name string) (err error) {
	parsed, err := ParseVerbosity(name)
	if err != nil {
		return
	}
	*v = parsed
	return
}

// Type implements the flag value interface.
func (v *Verbosity) Type() string {
	return "verbosity"
}
