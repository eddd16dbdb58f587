// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package console is the line oriented output side of a containme run.
//
// PRINT values and fatal errors are always written. Per-cycle traces,
// banners, and memory dumps are only written at TRACE verbosity.
package console

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/containme/translate"
	"github.com/ezrec/containme/vm"
)

var f = translate.From

var _ vm.Output = (*Console)(nil)

// Console writes machine output to a Writer.
type Console struct {
	Writer    io.Writer // Destination of all output lines.
	Verbosity Verbosity // Gates diagnostic output.

	err error
}

// NewConsole creates a quiet console writing to w.
func NewConsole(w io.Writer) (c *Console) {
	c = &Console{
		Writer: w,
	}

	return
}

// Err returns the first error encountered writing output.
func (c *Console) Err() error {
	return c.err
}

func (c *Console) println(text string) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintln(c.Writer, text)
}

// Tracing returns true if diagnostic output is enabled.
func (c *Console) Tracing() bool {
	return c.Verbosity >= TRACE
}

// Value writes a PRINTed value.
func (c *Console) Value(value int32) {
	c.println(fmt.Sprintf("%d", value))
}

// Fault writes the fatal error line for a run.
func (c *Console) Fault(err *vm.ErrFault) {
	c.println(err.Error())
}

// Trace writes the instruction about to execute.
func (c *Console) Trace(pc int, inst *vm.Instruction) {
	if !c.Tracing() {
		return
	}
	c.println(fmt.Sprintf("PC:%d > %v", pc, inst))
}

// Diag writes a translated diagnostic line.
func (c *Console) Diag(format string, args ...any) {
	if !c.Tracing() {
		return
	}
	c.println(f(format, args...))
}

// Dump writes a table of the non-zero memory cells in [start, start+count).
func (c *Console) Dump(memory []int32, start, count int) {
	if !c.Tracing() {
		return
	}

	start = max(start, 0)
	end := min(start+count, len(memory))

	c.println(f("--- Memory Dump (Non-zero) ---"))

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{f("Address"), f("Value")})
	for addr := start; addr < end; addr++ {
		if memory[addr] != 0 {
			tw.AppendRow(table.Row{addr, memory[addr]})
		}
	}

	c.println(tw.Render())
}
