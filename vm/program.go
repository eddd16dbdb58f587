package vm

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Instruction is a single decoded line of assembly.
type Instruction struct {
	LineNo int      // Source line number.
	Opcode string   // Upper case mnemonic, as written.
	Op     Op       // Decoded kind of Opcode.
	Args   []string // Arguments, with labels resolved.
}

// String returns the instruction in assembly syntax.
func (inst *Instruction) String() string {
	if len(inst.Args) == 0 {
		return inst.Opcode
	}
	return inst.Opcode + " " + strings.Join(inst.Args, " ")
}

// Program is an assembled instruction list.
type Program struct {
	Instructions []Instruction
	Label        map[string]int // Map of labels to instruction indexes.
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// Debug returns the instruction at a program counter.
func (prog *Program) Debug(pc int) (inst *Instruction, ok bool) {
	if pc < 0 || pc >= len(prog.Instructions) {
		return
	}

	return &prog.Instructions[pc], true
}

// Labels iterates the labels in instruction order, then by name.
func (prog *Program) Labels() iter.Seq2[string, int] {
	names := slices.SortedFunc(maps.Keys(prog.Label), func(a, b string) int {
		if c := cmp.Compare(prog.Label[a], prog.Label[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	return func(yield func(name string, pc int) bool) {
		for _, name := range names {
			if !yield(name, prog.Label[name]) {
				return
			}
		}
	}
}
