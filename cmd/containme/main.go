// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/containme/console"
	"github.com/ezrec/containme/emulator"
	"github.com/ezrec/containme/translate"
	"github.com/ezrec/containme/vm"
)

const (
	EXIT_ERROR = 1 // Load or assembly failure.
	EXIT_FAULT = 2 // Program faulted, with --fail-on-fault.
)

// options are the command line settings of a run.
type options struct {
	verbose     bool
	verbosity   console.Verbosity
	strict      bool
	failOnFault bool
	defines     []string
	dump        string
	lang        string
}

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}

	var fault *vm.ErrFault
	if errors.As(err, &fault) {
		os.Exit(EXIT_FAULT)
	}
	os.Exit(EXIT_ERROR)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "containme [flags] program.asm",
		Short: "Assemble and run a containme stack machine program",
		Long: `Containme assembles a line oriented stack machine program and runs it
against a 256 cell memory.

Each PRINT writes one value per line. A fatal execution error writes one
line naming the faulting instruction index and ends the run. With
--verbosity trace every executed instruction is listed and a table of the
non-zero memory cells is written when the run ends.
`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, opts, args[0])
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%v: %v\n", args[0], err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log assembler activity")
	flags.VarP(&opts.verbosity, "verbosity", "t", "Output verbosity: quiet or trace")
	flags.BoolVar(&opts.strict, "strict", false, "Reject unknown opcodes and jump targets at assembly")
	flags.BoolVar(&opts.failOnFault, "fail-on-fault", false, "Exit with status 2 if the program faults")
	flags.StringArrayVarP(&opts.defines, "define", "D", nil, "Predefine an equate as NAME=VALUE")
	flags.StringVar(&opts.lang, "lang", "", "Message language tag, such as en-US (default is the host locale)")
	flags.StringVar(&opts.dump, "dump", fmt.Sprintf("%d:%d", emulator.DUMP_START, emulator.DUMP_COUNT), "Memory cells START:COUNT to dump when tracing")

	return cmd
}

// parseDump parses a START:COUNT memory range.
func parseDump(text string) (start, count int, err error) {
	first, second, ok := strings.Cut(text, ":")
	if !ok {
		err = fmt.Errorf("dump range '%v' is not START:COUNT", text)
		return
	}
	start, err = strconv.Atoi(first)
	if err != nil {
		return
	}
	count, err = strconv.Atoi(second)
	return
}

func run(cmd *cobra.Command, opts *options, path string) (err error) {
	if len(opts.lang) != 0 {
		translate.Use(opts.lang)
	}

	emu := emulator.NewEmulator(cmd.OutOrStdout())
	emu.Verbose = opts.verbose
	emu.Verbosity = opts.verbosity
	emu.Assembler.Strict = opts.strict

	emu.DumpStart, emu.DumpCount, err = parseDump(opts.dump)
	if err != nil {
		return
	}

	for _, define := range opts.defines {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("define '%v' is not NAME=VALUE", define)
		}
		err = emu.Assembler.Predefine(name, value)
		if err != nil {
			return
		}
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	emu.Diag("--- Welcome to ContainMe! v3.0 ---")

	err = emu.Load(inf)
	if err != nil {
		return
	}

	err = emu.Run()
	if err != nil {
		return
	}

	if opts.failOnFault && emu.Runtime != nil {
		err = emu.Runtime
	}

	return
}
