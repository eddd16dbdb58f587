// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"errors"

	"github.com/ezrec/containme/translate"
)

var f = translate.From

var (
	// Execution faults
	ErrInvalidAccess      = errors.New(f("invalid memory address or argument count"))
	ErrAddressInvalid     = errors.New(f("address invalid"))
	ErrArgumentMissing    = errors.New(f("argument missing"))
	ErrNumberFormat       = errors.New(f("invalid number format in arguments"))
	ErrStackUnderflow     = errors.New(f("stack underflow"))
	ErrInstructionUnknown = errors.New(f("unknown instruction"))

	// Assembler errors
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrTargetInvalid      = errors.New(f("target invalid"))
)

// ErrAddress is a memory address outside of the machine memory.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %d out of range", int(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrAddressInvalid
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrNumberRange string

func (err ErrNumberRange) Error() string {
	return f("'%v' is out of range", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembly error in the program source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrFault is a fatal execution error, raised by the instruction at Pc.
type ErrFault struct {
	Pc     int
	Opcode string
	Err    error
}

func (err *ErrFault) Error() string {
	return f("fatal error at %d: %v: %v", err.Pc, err.Opcode, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
