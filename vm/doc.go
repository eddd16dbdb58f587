// Package vm implements the assembler and executor for the containme stack
// machine.
//
// The machine has no registers. It consists of a fixed 256-cell memory of
// signed 32-bit integers, an unbounded stack shared by data pushes and call
// return addresses, a program counter indexing the instruction list, and a
// single zero flag written by CMP and read by the conditional jumps.
//
// The assembler is two pass: the first pass collects labels and equates, the
// second decodes each line and resolves label references on jump and call
// instructions. Numeric arguments are only parsed when an instruction
// executes, so malformed operands surface as execution faults.
package vm
