package vm

import (
	"errors"
	"fmt"
	"strconv"
)

// Execute executes a single decoded instruction.
//
// Jump targets are stored as target-1, as the program counter is advanced
// after every successful instruction.
func (m *Machine) Execute(inst *Instruction) (err error) {
	switch inst.Op {
	case OP_PRINT:
		var cell *int32
		cell, err = m.cell(inst, 0)
		if err != nil {
			return
		}
		if m.Output != nil {
			m.Output.Value(*cell)
		}
	case OP_LOAD:
		var dst, src *int32
		dst, src, err = m.cellPair(inst)
		if err != nil {
			return
		}
		*dst = *src
	case OP_LOADI:
		var dst *int32
		dst, err = m.cell(inst, 0)
		if err != nil {
			return
		}
		var val int32
		val, err = argValue(inst, 1)
		if err != nil {
			return
		}
		*dst = val
	case OP_ADD, OP_SUB, OP_MUL:
		var a, b *int32
		a, b, err = m.cellPair(inst)
		if err != nil {
			return
		}
		*a = doAlu(inst.Op, *a, *b)
	case OP_CMP:
		var a, b *int32
		a, b, err = m.cellPair(inst)
		if err != nil {
			return
		}
		m.Zero = *a == *b
	case OP_JUMP:
		err = m.jump(inst)
	case OP_JZE:
		if m.Zero {
			err = m.jump(inst)
		}
	case OP_JNE:
		if !m.Zero {
			err = m.jump(inst)
		}
	case OP_PUSH:
		var cell *int32
		cell, err = m.cell(inst, 0)
		if err != nil {
			return
		}
		m.Stack.Push(*cell)
	case OP_PUSHI:
		var val int32
		val, err = argValue(inst, 0)
		if err != nil {
			return
		}
		m.Stack.Push(val)
	case OP_POP:
		if m.Stack.Empty() {
			err = ErrStackUnderflow
			return
		}
		var cell *int32
		cell, err = m.cell(inst, 0)
		if err != nil {
			return
		}
		*cell, _ = m.Stack.Pop()
	case OP_CALL:
		var target int32
		target, err = argValue(inst, 0)
		if err != nil {
			return
		}
		m.Stack.Push(int32(m.Pc + 1))
		m.Pc = int(target) - 1
	case OP_RET:
		ret, ok := m.Stack.Pop()
		if !ok {
			err = ErrStackUnderflow
			return
		}
		m.Pc = int(ret) - 1
	case OP_HALT:
		m.Running = false
	default:
		err = fmt.Errorf("%w '%v'", ErrInstructionUnknown, inst.Opcode)
	}

	return
}

// jump sets the program counter so the next cycle lands on argument 0.
func (m *Machine) jump(inst *Instruction) (err error) {
	target, err := argValue(inst, 0)
	if err != nil {
		return
	}
	m.Pc = int(target) - 1
	return
}

// cell returns the memory cell addressed by argument n.
func (m *Machine) cell(inst *Instruction, n int) (cell *int32, err error) {
	addr, err := argValue(inst, n)
	if err != nil {
		return
	}
	if addr < 0 || int(addr) >= len(m.Memory) {
		err = fmt.Errorf("%w: %w", ErrInvalidAccess, ErrAddress(addr))
		return
	}
	cell = &m.Memory[addr]
	return
}

// cellPair returns the memory cells addressed by arguments 0 and 1.
func (m *Machine) cellPair(inst *Instruction) (a, b *int32, err error) {
	a, err = m.cell(inst, 0)
	if err != nil {
		return
	}
	b, err = m.cell(inst, 1)
	return
}

// argValue parses argument n as a decimal 32-bit integer.
func argValue(inst *Instruction, n int) (value int32, err error) {
	if n >= len(inst.Args) {
		err = fmt.Errorf("%w: %w", ErrInvalidAccess, ErrArgumentMissing)
		return
	}

	word := inst.Args[n]
	v64, err := strconv.ParseInt(word, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			err = fmt.Errorf("%w: %w", ErrInvalidAccess, ErrNumberRange(word))
		} else {
			err = fmt.Errorf("%w: %w", ErrNumberFormat, ErrParseNumber(word))
		}
		return
	}

	value = int32(v64)
	return
}

// doAlu performs the requested arithmetic, wrapping on overflow.
func doAlu(op Op, a, b int32) (out int32) {
	switch op {
	case OP_ADD:
		out = a + b
	case OP_SUB:
		out = a - b
	case OP_MUL:
		out = a * b
	}

	return
}
