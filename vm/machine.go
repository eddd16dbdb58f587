// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
)

const (
	MEMORY_SIZE = 256 // Number of memory cells.
)

// Output receives the observable effects of a run.
type Output interface {
	// Value is called with each value emitted by PRINT.
	Value(value int32)
	// Fault is called once when a run terminates on a fault.
	Fault(err *ErrFault)
	// Trace is called before each instruction is executed.
	Trace(pc int, inst *Instruction)
}

// Machine is the state of the stack machine.
type Machine struct {
	Output Output // Receives PRINT values, faults and traces. May be nil.

	Memory  [MEMORY_SIZE]int32 // Memory cells.
	Stack   Stack              // Data and return address stack.
	Pc      int                // Index of the next instruction.
	Zero    bool               // Set by CMP when both cells are equal.
	Running bool               // Cleared by HALT or a fault.

	Ticks int   // Instructions executed since reset.
	Fault error // Fault that terminated the last run, if any.
}

// NewMachine creates a new machine sending output to out.
func NewMachine(out Output) (m *Machine) {
	m = &Machine{
		Output: out,
	}

	return
}

// Reset clears memory, the stack and all flags.
func (m *Machine) Reset() {
	clear(m.Memory[:])
	m.Stack.Reset()
	m.Pc = 0
	m.Zero = false
	m.Running = false
	m.Ticks = 0
	m.Fault = nil
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	zero := "false"
	if m.Zero {
		zero = "true"
	}
	top := "-"
	if val, ok := m.Stack.Peek(); ok {
		top = fmt.Sprintf("%d", val)
	}

	text += fmt.Sprintf("% 7s: %d\n", "pc", m.Pc)
	text += fmt.Sprintf("% 7s: %v\n", "zero", zero)
	text += fmt.Sprintf("% 7s: %v (%d deep)\n", "stack", top, m.Stack.Len())
	text += fmt.Sprintf("% 7s: %d\n", "ticks", m.Ticks)

	return
}

// Start prepares the machine to run from the first instruction.
func (m *Machine) Start() {
	m.Running = true
	m.Pc = 0
	m.Fault = nil
}

// inBounds returns true if the program counter indexes prog.
func (m *Machine) inBounds(prog *Program) bool {
	return m.Pc >= 0 && m.Pc < prog.Len()
}

// Run executes prog from the first instruction until it halts, faults, or
// the program counter leaves the program.
//
// Faults are reported to Output and recorded in Fault; they are not returned.
func (m *Machine) Run(prog *Program) {
	m.Start()

	for done := false; !done; {
		done, _ = m.Tick(prog)
	}
}

// Tick executes a single instruction cycle.
// done is set once the machine is no longer able to execute.
func (m *Machine) Tick(prog *Program) (done bool, err error) {
	if !m.Running || !m.inBounds(prog) {
		done = true
		return
	}

	inst := &prog.Instructions[m.Pc]

	if m.Output != nil {
		m.Output.Trace(m.Pc, inst)
	}

	err = m.Execute(inst)
	if err != nil {
		fault := &ErrFault{Pc: m.Pc, Opcode: inst.Opcode, Err: err}
		m.Fault = fault
		m.Running = false
		if m.Output != nil {
			m.Output.Fault(fault)
		}
		err = fault
		done = true
		return
	}

	m.Pc++
	m.Ticks++

	done = !m.Running || !m.inBounds(prog)

	return
}
