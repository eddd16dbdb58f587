// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/containme/internal"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
}

// Defines returns an iterator over the system equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(sysEquate)
}

var reExpression = regexp.MustCompile(`\$\([^\$]*\)`)

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Assembler is a two pass assembler for the containme stack machine.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	Strict  bool // If set, rejects unknown opcodes and jump targets.

	predefine map[string]string
	Label     map[string]int    // Map of labels to instruction indexes.
	Equate    map[string]string // Map of equates.
}

// source is a line that survived the first pass.
type source struct {
	lineNo int
	text   string
}

// Predefine defines a new equate or redefines an existing equate.
// The name must be an identifier.
func (asm *Assembler) Predefine(equ string, value string) (err error) {
	if !reIdentifier.MatchString(equ) {
		err = fmt.Errorf("%w: '%v' is not an identifier", ErrEquateSyntax, equ)
		return
	}

	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}

	return
}

// Parse reads lines from an input stream and assembles them.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	return asm.Assemble(lines)
}

// Assemble translates source lines into a Program.
// No partial program is returned on error.
func (asm *Assembler) Assemble(lines []string) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// First pass: labels and equates.
	var clean []source
	for n, text := range lines {
		line = text
		lineno = n + 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text = strings.TrimSpace(text)
		if len(text) == 0 || text[0] == '#' {
			continue
		}

		label, rest, ok := strings.Cut(text, ":")
		if ok {
			label = strings.TrimSpace(label)
			_, ok = asm.Label[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[label] = len(clean)
			text = strings.TrimSpace(rest)
		}

		if len(text) == 0 {
			continue
		}

		words := strings.Fields(text)
		if words[0] == ".equ" {
			err = asm.equate(text, lineno)
			if err != nil {
				return
			}
			continue
		}

		clean = append(clean, source{lineNo: lineno, text: text})
	}

	// Second pass: decode and resolve labels.
	prog = &Program{
		Instructions: make([]Instruction, 0, len(clean)),
		Label:        maps.Clone(asm.Label),
	}
	for _, src := range clean {
		lineno = src.lineNo
		line = lines[lineno-1]

		var inst Instruction
		inst, err = asm.decode(src.text, lineno)
		if err != nil {
			return
		}
		prog.Instructions = append(prog.Instructions, inst)
	}

	if asm.Verbose {
		log.Printf("Assembled %d instructions.", len(prog.Instructions))
	}

	return
}

// equate handles a '.equ NAME VALUE' directive.
// Expressions in VALUE see the equates and labels defined before it.
func (asm *Assembler) equate(text string, lineno int) (err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	text, err = asm.expand(text)
	if err != nil {
		return
	}

	words := strings.Fields(text)
	if len(words) != 3 {
		err = ErrEquateSyntax
		return
	}
	if !reIdentifier.MatchString(words[1]) {
		err = fmt.Errorf("%w: '%v' is not an identifier", ErrEquateSyntax, words[1])
		return
	}
	_, ok := asm.Equate[words[1]]
	if ok {
		err = ErrEquateDuplicate
		return
	}
	asm.Equate[words[1]] = words[2]

	return
}

// decode parses a single clean line as an instruction.
func (asm *Assembler) decode(text string, lineno int) (inst Instruction, err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	text, err = asm.expand(text)
	if err != nil {
		return
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		err = ErrInstructionInvalid
		return
	}

	inst.LineNo = lineno
	inst.Opcode = strings.ToUpper(words[0])
	inst.Op = OpOf(inst.Opcode)

	for _, word := range words[1:] {
		word = strings.TrimSuffix(word, ",")
		if ip, ok := asm.Label[word]; ok && inst.Op.IsTransfer() {
			word = strconv.Itoa(ip)
		} else if equate, ok := asm.Equate[word]; ok {
			word = equate
		}
		inst.Args = append(inst.Args, word)
	}

	if asm.Strict {
		err = asm.check(&inst)
	}

	return
}

// check rejects instructions that are certain to fault when executed.
func (asm *Assembler) check(inst *Instruction) (err error) {
	if inst.Op == OP_UNKNOWN {
		return ErrInstructionInvalid
	}

	if !inst.Op.IsTransfer() {
		return
	}

	for _, arg := range inst.Args {
		_, perr := strconv.ParseInt(arg, 10, 32)
		if perr != nil {
			return fmt.Errorf("%w: %v", ErrTargetInvalid, arg)
		}
	}

	return
}

// expand replaces $(...) expressions with their decimal value.
func (asm *Assembler) expand(text string) (out string, err error) {
	out = reExpression.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return strconv.FormatInt(value, 10)
	})

	return
}

// symbols yields every equate and label name with its value.
func (asm *Assembler) symbols() iter.Seq2[string, string] {
	labels := func(yield func(string, string) bool) {
		for name, ip := range asm.Label {
			if !yield(name, strconv.Itoa(ip)) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(maps.All(asm.Equate), labels)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.symbols() {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}
