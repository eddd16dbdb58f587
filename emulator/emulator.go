// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io"
	"iter"
	"maps"
	"strconv"

	"github.com/ezrec/containme/console"
	"github.com/ezrec/containme/internal"
	"github.com/ezrec/containme/vm"
)

const (
	DUMP_START = 0  // Default first memory cell dumped after a run.
	DUMP_COUNT = 16 // Default number of memory cells dumped after a run.
)

var _emulator_defines = map[string]string{
	"DUMP_START": strconv.Itoa(DUMP_START),
	"DUMP_COUNT": strconv.Itoa(DUMP_COUNT),
}

// Emulator state. Assembler + machine + console.
type Emulator struct {
	Verbose     bool              // If set, enables verbose assembler logging.
	Verbosity   console.Verbosity // Console diagnostic level.
	*vm.Machine                   // Reference to the machine simulation.
	Program     *vm.Program       // Reference to the currently loaded program.

	Assembler vm.Assembler     // Assembler used by Load.
	Console   *console.Console // Output collaborator.

	DumpStart int // First memory cell dumped after a run.
	DumpCount int // Number of memory cells dumped after a run.

	Runtime *ErrRuntime // Fault that ended the last run, with its source line.
}

// NewEmulator creates a new emulator writing its output to w.
func NewEmulator(w io.Writer) (emu *Emulator) {
	emu = &Emulator{
		Program:   &vm.Program{},
		Console:   console.NewConsole(w),
		DumpStart: DUMP_START,
		DumpCount: DUMP_COUNT,
	}
	emu.Machine = vm.NewMachine(emu.Console)

	return
}

// Defines returns an iterator over all of the defines and program labels.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	labels := func(yield func(string, string) bool) {
		for name, pc := range emu.Program.Labels() {
			if !yield(name, strconv.Itoa(pc)) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		vm.Defines(),
		labels,
	)
}

// Load assembles a program from an input stream.
// On error the previously loaded program is kept.
func (emu *Emulator) Load(input io.Reader) (err error) {
	emu.Assembler.Verbose = emu.Verbose

	prog, err := emu.Assembler.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Diag("Assembled %d instructions.", prog.Len())

	return
}

// Diag writes a diagnostic line to the console at the emulator Verbosity.
func (emu *Emulator) Diag(format string, args ...any) {
	emu.Console.Verbosity = emu.Verbosity
	emu.Console.Diag(format, args...)
}

// Reset the machine state.
func (emu *Emulator) Reset() {
	emu.Console.Verbosity = emu.Verbosity
	emu.Machine.Output = emu.Console
	emu.Machine.Reset()
	emu.Runtime = nil
}

// LineNo returns the source line number of the next instruction, or 0.
func (emu *Emulator) LineNo() int {
	inst, ok := emu.Program.Debug(emu.Machine.Pc)
	if !ok {
		return 0
	}

	return inst.LineNo
}

// Tick performs a single instruction cycle of the loaded program.
func (emu *Emulator) Tick() (done bool, err error) {
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	done, err = emu.Machine.Tick(emu.Program)

	return
}

// Run resets the machine and runs the loaded program to completion.
//
// A fault ends the run normally; it is reported on the console and left in
// Fault and Runtime. The returned error is only set if console output failed.
func (emu *Emulator) Run() (err error) {
	emu.Reset()

	emu.Diag("--- Executing Program ---")
	emu.Machine.Start()
	for done := false; !done; {
		var terr error
		done, terr = emu.Tick()
		if terr != nil {
			errors.As(terr, &emu.Runtime)
		}
	}
	if emu.Machine.Running {
		emu.Diag("--- Program Completed ---")
	} else {
		emu.Diag("--- Program Halted ---")
	}

	emu.Console.Dump(emu.Machine.Memory[:], emu.DumpStart, emu.DumpCount)
	emu.Diag("--- End Dump ---")

	return emu.Console.Err()
}
