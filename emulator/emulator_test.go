package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/containme/console"
	"github.com/ezrec/containme/vm"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(&bytes.Buffer{})

	assert.False(emu.Verbose)
	assert.Equal(console.QUIET, emu.Verbosity)
	assert.NotNil(emu.Machine)
	assert.Equal(0, emu.Program.Len())
	assert.Equal(DUMP_COUNT, emu.DumpCount)
}

func doRun(t *testing.T, emu *Emulator, program []string) string {
	out := &bytes.Buffer{}
	emu.Console.Writer = out

	err := emu.Load(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Run()
	assert.NoError(t, err)

	return out.String()
}

func TestEmulatorQuiet(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)
	output := doRun(t, emu, []string{
		"# sum 1..4",
		"LOADI 0 0 # total",
		"LOADI 1 4",
		"LOADI 2 1",
		"LOADI 3 0",
		"loop: ADD 0 1",
		"SUB 1 2",
		"CMP 1 3",
		"JNE loop",
		"PRINT 0",
	})

	assert.Equal("10\n", output)
	assert.Nil(emu.Fault)
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)
	output := doRun(t, emu, []string{
		"PRINT 0",
		"PRINT 256",
		"PRINT 0",
	})

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if assert.Len(lines, 2) {
		assert.Equal("0", lines[0])
		assert.True(strings.HasPrefix(lines[1], "fatal error at 1: PRINT: "), lines[1])
	}
	assert.True(errors.Is(emu.Fault, vm.ErrAddressInvalid))
	assert.False(emu.Running)

	if assert.NotNil(emu.Runtime) {
		assert.Equal(2, emu.Runtime.LineNo)
		assert.True(errors.Is(emu.Runtime, vm.ErrAddressInvalid))
	}

	// A clean run clears the earlier fault.
	doRun(t, emu, []string{"PRINT 0"})
	assert.Nil(emu.Runtime)
	assert.Nil(emu.Fault)
}

func TestEmulatorTrace(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)
	emu.Verbosity = console.TRACE
	output := doRun(t, emu, []string{
		"LOADI 0 5",
		"PRINT 0",
		"HALT",
	})

	lines := strings.Split(output, "\n")
	assert.Equal("Assembled 3 instructions.", lines[0])
	assert.Equal("--- Executing Program ---", lines[1])
	assert.Equal("PC:0 > LOADI 0 5", lines[2])
	assert.Equal("PC:1 > PRINT 0", lines[3])
	assert.Equal("5", lines[4])
	assert.Equal("PC:2 > HALT", lines[5])
	assert.Equal("--- Program Halted ---", lines[6])
	assert.Equal("--- Memory Dump (Non-zero) ---", lines[7])
	assert.Contains(output, "--- End Dump ---")
}

func TestEmulatorDiag(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	emu := NewEmulator(out)

	emu.Diag("hidden")
	assert.Empty(out.String())

	// Verbosity applies before anything is loaded.
	emu.Verbosity = console.TRACE
	emu.Diag("shown %d", 3)
	assert.Equal("shown 3\n", out.String())
}

func TestEmulatorCompleted(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)
	emu.Verbosity = console.TRACE
	output := doRun(t, emu, []string{"PUSHI 1"})

	assert.Contains(output, "--- Program Completed ---")
	assert.True(emu.Running)
}

func TestEmulatorLoadError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(&bytes.Buffer{})
	err := emu.Load(strings.NewReader("LOADI 0 1\nPRINT 0"))
	assert.NoError(err)

	err = emu.Load(strings.NewReader("a: HALT\na: HALT"))
	assert.True(errors.Is(err, vm.ErrLabelDuplicate))

	// The earlier program is still loaded.
	assert.Equal(2, emu.Program.Len())
}

func TestEmulatorPredefine(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)
	assert.NoError(emu.Assembler.Predefine("COUNT", "3"))
	output := doRun(t, emu, []string{"LOADI 0 $(COUNT * COUNT)", "PRINT 0"})

	assert.Equal("9\n", output)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(&bytes.Buffer{})
	err := emu.Load(strings.NewReader("LOADI 0 1\n\n# next\nPOP 0"))
	assert.NoError(err)

	emu.Reset()
	emu.Start()
	assert.Equal(1, emu.LineNo())

	done, err := emu.Tick()
	assert.False(done)
	assert.NoError(err)
	assert.Equal(4, emu.LineNo())

	done, err = emu.Tick()
	assert.True(done)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(4, runtime.LineNo)
	}
	assert.True(errors.Is(err, vm.ErrStackUnderflow))
	assert.Equal(4, emu.LineNo())

	emu.Reset()
	assert.Equal(0, emu.Pc)
	assert.Equal(int32(0), emu.Memory[0])
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(&bytes.Buffer{})
	err := emu.Load(strings.NewReader("start: PUSHI 1\nend: HALT"))
	assert.NoError(err)

	defines := map[string]string{}
	for k, v := range emu.Defines() {
		defines[k] = v
	}

	assert.Equal("256", defines["MEMORY_SIZE"])
	assert.Equal("16", defines["DUMP_COUNT"])
	assert.Equal("0", defines["start"])
	assert.Equal("1", defines["end"])
}
