package vm

// Op is a decoded instruction kind.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_UNKNOWN = Op(0)  // ?
	OP_PRINT   = Op(1)  // PRINT
	OP_LOAD    = Op(2)  // LOAD
	OP_LOADI   = Op(3)  // LOADI
	OP_ADD     = Op(4)  // ADD
	OP_SUB     = Op(5)  // SUB
	OP_MUL     = Op(6)  // MUL
	OP_CMP     = Op(7)  // CMP
	OP_JUMP    = Op(8)  // JUMP
	OP_JZE     = Op(9)  // JZE
	OP_JNE     = Op(10) // JNE
	OP_PUSH    = Op(11) // PUSH
	OP_PUSHI   = Op(12) // PUSHI
	OP_POP     = Op(13) // POP
	OP_CALL    = Op(14) // CALL
	OP_RET     = Op(15) // RET
	OP_HALT    = Op(16) // HALT
)

// opMap maps upper case mnemonics to their Op.
var opMap = func() map[string]Op {
	ops := make(map[string]Op, int(OP_HALT))
	for op := OP_PRINT; op <= OP_HALT; op++ {
		ops[op.String()] = op
	}
	return ops
}()

// OpOf returns the Op for an upper case mnemonic, or OP_UNKNOWN.
func OpOf(mnemonic string) Op {
	op, ok := opMap[mnemonic]
	if !ok {
		return OP_UNKNOWN
	}
	return op
}

// IsTransfer returns true for the control transfer instructions whose
// arguments may name a label.
func (op Op) IsTransfer() bool {
	switch op {
	case OP_JUMP, OP_CALL, OP_JZE, OP_JNE:
		return true
	}
	return false
}
